// Package secret resolves secret references inside configuration values.
//
// It supports:
//   - Strict environment expansion (see ExpandEnvStrict)
//   - Pluggable secret providers (see Provider and Registry), with built-in
//     "env" and "file" providers
//   - Resolving references in configuration values (see Resolver)
//
// References use the prefix "secretref:":
//   - Full value:  secretref:file:/run/secrets/postgres_dsn
//   - Inline use:  redis://:secretref:env:REDIS_PASSWORD@cache:6379/0
package secret
