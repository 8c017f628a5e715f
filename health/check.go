package health

import (
	"context"
	"maps"
)

// Check is a named probe of one component's health.
//
// Contract:
//   - Name must be non-empty and unique within one invocation. Uniqueness is
//     the caller's responsibility.
//   - Execute returns nil when the component is healthy. It should honour ctx
//     cancellation; a check that ignores it is abandoned at its timeout.
//   - Metadata is static and side-effect free. It may return nil.
//   - Concurrency: Execute may be called concurrently by overlapping
//     invocations and must guard its own resources.
type Check interface {
	// Name returns the name of this check.
	Name() string

	// Execute performs the probe.
	Execute(ctx context.Context) error

	// Metadata returns static key/value tags, such as the probed URL.
	Metadata() map[string]string
}

// CheckSource supplies the check collection for an invocation.
type CheckSource interface {
	Checks() []Check
}

// Checks is a fixed check collection.
type Checks []Check

// Checks returns the collection itself.
func (c Checks) Checks() []Check {
	return c
}

// CheckOption configures a CheckFunc.
type CheckOption func(*CheckFunc)

// WithMetadata attaches static metadata to a CheckFunc.
func WithMetadata(metadata map[string]string) CheckOption {
	return func(f *CheckFunc) {
		f.metadata = maps.Clone(metadata)
	}
}

// CheckFunc is an adapter to allow ordinary functions to be used as Checks.
type CheckFunc struct {
	name     string
	fn       func(context.Context) error
	metadata map[string]string
}

// NewCheckFunc creates a new CheckFunc.
func NewCheckFunc(name string, fn func(context.Context) error, opts ...CheckOption) *CheckFunc {
	f := &CheckFunc{name: name, fn: fn}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the name of this check.
func (f *CheckFunc) Name() string {
	return f.name
}

// Execute performs the health check.
func (f *CheckFunc) Execute(ctx context.Context) error {
	return f.fn(ctx)
}

// Metadata returns the metadata given at construction.
func (f *CheckFunc) Metadata() map[string]string {
	return f.metadata
}

var _ Check = (*CheckFunc)(nil)
