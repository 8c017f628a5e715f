// Package health runs a collection of named health checks concurrently, each
// under its own timeout, and folds the outcomes into one Result.
//
// # Core Concepts
//
// A Check is a named probe: Execute returns nil when the component is
// healthy. Each run of a check produces a ComponentResult whose status is
// ComponentHealthy, ComponentUnhealthy or ComponentTimedOut. The overall
// Status is unhealthy when any component failed or timed out.
//
// # Basic Usage
//
//	checks := []health.Check{
//	    health.NewCheckFunc("db", db.PingContext),
//	    health.NewCheckFunc("cache", func(ctx context.Context) error {
//	        return rdb.Ping(ctx).Err()
//	    }),
//	}
//
//	res, err := health.ExecuteChecks(ctx, checks, health.Options{
//	    Timeout:        3 * time.Second,
//	    IncludeDetails: true,
//	})
//
// # Filtering
//
// Options.Include and Options.Exclude select checks by name. An empty
// include list admits everything; a name in both lists is excluded.
//
// # Details
//
// Options.IncludeDetails controls whether Result.Components and the
// per-component metadata, error detail and diagnostic trace are populated.
// Deciding who may see details is the caller's job; see package auth.
//
// # Abandoned Checks
//
// A check that outlives its timeout is cancelled through its context and
// abandoned. Go cannot stop a goroutine that ignores its context, so such a
// check keeps running in the background until it returns; its outcome is
// discarded.
package health
