// Package checks provides concrete health.Check implementations for the
// dependencies a service commonly relies on.
//
// Every check is built with functional options and satisfies health.Check,
// so it can be handed straight to health.ExecuteChecks or a health.Registry:
//
//	db, _ := sql.Open("postgres", dsn)
//	c, err := checks.NewSQL("db", db, checks.WithTimeout(2*time.Second))
//
// The available checks are:
//
//   - Memory: runtime heap usage against a critical threshold
//   - HTTP: GET a URL and expect a 2xx (or a configured) status
//   - TCP: dial host:port
//   - DNS: resolve a name against a specific server
//   - Redis: PING through a go-redis client
//   - SQL: PingContext (and optionally a probe query) on a *sql.DB
//   - Ping: anything with Ping(ctx) error, such as a pgxpool.Pool
//
// Build turns declarative config.CheckConfig entries into a ready Set,
// opening and later closing any clients the checks need.
//
// A check's own timeout (WithTimeout) bounds its client. The engine's
// per-invocation timeout still applies on top of it.
package checks
