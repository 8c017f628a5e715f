package health

import "time"

// ComponentResult is the outcome of running one check once.
//
// Metadata, ErrorDetail and DiagnosticTrace are only populated when the
// invocation asked for details; ErrorDetail and DiagnosticTrace additionally
// require a failed status.
type ComponentResult struct {
	Name    string
	Status  ComponentStatus
	Elapsed time.Duration

	// Metadata is a copy of the check's static metadata.
	Metadata map[string]string

	// ErrorDetail is a one-line description of the failure.
	ErrorDetail string

	// DiagnosticTrace is a longer, possibly large description: the error
	// chain with concrete types, or the goroutine stack for a panic.
	DiagnosticTrace string
}

// Result is the aggregate outcome of one ExecuteChecks invocation.
type Result struct {
	Status  Status
	Elapsed time.Duration
	Version string
	BuildID string

	// Components holds one entry per executed check, sorted by name, or is
	// nil when details were not requested. Order carries no meaning.
	Components []ComponentResult
}

// Component returns the component result with the given name.
func (r Result) Component(name string) (ComponentResult, bool) {
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return ComponentResult{}, false
}
