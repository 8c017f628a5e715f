package health

import "errors"

var (
	// ErrInvalidOptions indicates ExecuteChecks was called with options or a
	// check collection that violate its contract. No check was run.
	ErrInvalidOptions = errors.New("health: invalid options")

	// ErrCheckFailed indicates a composite check saw a failing component.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrInvalidCheck indicates a registry was given a nil or unnamed check.
	ErrInvalidCheck = errors.New("health: invalid check")

	// ErrCheckNotFound indicates a check was not found in a registry.
	ErrCheckNotFound = errors.New("health: check not found")
)
