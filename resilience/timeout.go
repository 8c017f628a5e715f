package resilience

import (
	"context"
	"errors"
	"runtime/debug"
	"time"
)

// DefaultTimeout is applied when TimeoutConfig.Timeout is not positive.
const DefaultTimeout = 10 * time.Second

// TimeoutConfig configures the timeout wrapper.
type TimeoutConfig struct {
	// Timeout is the maximum duration for the operation.
	// Default: 10 seconds
	Timeout time.Duration
}

// Timeout wraps operations with a timeout.
//
// The operation runs on its own goroutine. When the deadline passes first,
// Execute returns immediately and the goroutine is abandoned: its context is
// cancelled, but Go offers no way to stop it, so a slow operation keeps
// running until it returns on its own. Its late result is dropped.
type Timeout struct {
	config TimeoutConfig
}

// NewTimeout creates a new timeout wrapper.
func NewTimeout(config TimeoutConfig) *Timeout {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &Timeout{config: config}
}

// Execute runs the operation with a timeout.
//
// Return values:
//   - the operation's own error (nil on success) when it finishes in time;
//   - a *TimeoutError when the deadline passes first;
//   - context.Cause of ctx when the caller's context ends first;
//   - a *PanicError when the operation panics.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	timeoutErr := &TimeoutError{Timeout: t.config.Timeout}
	opCtx, cancel := context.WithTimeoutCause(ctx, t.config.Timeout, timeoutErr)
	defer cancel()

	// Buffered so an abandoned operation can still send and exit.
	done := make(chan error, 1)

	go func() {
		defer func() {
			if v := recover(); v != nil {
				done <- &PanicError{Value: v, Stack: debug.Stack()}
			}
		}()
		done <- op(opCtx)
	}()

	select {
	case err := <-done:
		// An operation that honours its context may return before we observe
		// Done; report why the context ended rather than the bare ctx error.
		if err != nil && opCtx.Err() != nil && isContextErr(err) {
			return context.Cause(opCtx)
		}
		return err
	case <-opCtx.Done():
		return context.Cause(opCtx)
	}
}

// Config returns the timeout configuration.
func (t *Timeout) Config() TimeoutConfig {
	return t.config
}

// ExecuteWithTimeout is a convenience function to run an operation with timeout.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	t := NewTimeout(TimeoutConfig{Timeout: timeout})
	return t.Execute(ctx, op)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
