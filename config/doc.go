// Package config loads the healthd YAML configuration.
//
// Every string that can carry a credential (check targets and options,
// JWT signing keys, API keys) is passed through a secret.Resolver, so a
// file can say "${REDIS_URL}" or "secretref:file:/run/secrets/dsn".
package config
