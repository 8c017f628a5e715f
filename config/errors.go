package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation problem.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnknownCheckType indicates a check type healthd cannot build.
	ErrUnknownCheckType = errors.New("config: unknown check type")
)
