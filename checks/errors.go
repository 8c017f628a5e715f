package checks

import "errors"

var (
	// ErrInvalidCheck indicates a check was constructed with bad arguments.
	ErrInvalidCheck = errors.New("checks: invalid check")

	// ErrUnexpectedStatus indicates an HTTP probe got the wrong status code.
	ErrUnexpectedStatus = errors.New("checks: unexpected status")

	// ErrNoAnswer indicates a DNS query resolved without a usable record.
	ErrNoAnswer = errors.New("checks: no answer")

	// ErrMemoryCritical indicates memory usage reached the critical threshold.
	ErrMemoryCritical = errors.New("checks: memory usage critical")
)
