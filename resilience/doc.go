// Package resilience provides the execution guards used around health checks
// and the health endpoint.
//
//   - Timeout: runs an operation on its own goroutine and stops waiting for it
//     once its budget is spent. Panics are recovered into *PanicError and the
//     deadline is reported as *TimeoutError.
//
//   - RateLimiter: a token bucket (golang.org/x/time/rate) that keeps callers
//     from running every check on every request of a flood.
//
// # Usage
//
//	err := resilience.ExecuteWithTimeout(ctx, 3*time.Second, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
//	if errors.Is(err, resilience.ErrTimeout) {
//	    // the ping is still running somewhere; its result will be ignored
//	}
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 5, Burst: 10})
//	if !rl.Allow() {
//	    // reject
//	}
package resilience
