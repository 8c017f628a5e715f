// Package observe provides observability primitives for health check execution.
//
// It is a pure instrumentation library: tracing spans named
// health.check.<name>, check and report metrics, and a zap-backed
// structured logger. The health engine wraps each check dispatch with a
// Middleware; nothing here runs checks itself.
package observe
