package secret

import "errors"

var (
	// ErrMissingEnv indicates a ${VAR} reference to an unset variable.
	ErrMissingEnv = errors.New("secret: missing required environment variables")

	// ErrProviderNotRegistered indicates a reference to an unknown provider.
	ErrProviderNotRegistered = errors.New("secret: provider not registered")

	// ErrInvalidRef indicates a malformed secret reference.
	ErrInvalidRef = errors.New("secret: invalid reference")

	// ErrEmptySecret indicates a provider resolved a reference to "" in
	// strict mode.
	ErrEmptySecret = errors.New("secret: empty value")

	// ErrNotFound indicates the referenced secret does not exist.
	ErrNotFound = errors.New("secret: not found")
)
