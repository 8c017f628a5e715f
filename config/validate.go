package config

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/healthjson/auth"
)

// Validate reports every problem in the configuration, joined. Each
// problem wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if c.Health.DefaultTimeout.Duration <= 0 {
		add("health.default_timeout must be positive")
	}
	if c.Health.MaxConcurrency < 0 {
		add("health.max_concurrency must not be negative")
	}
	if c.Health.Cache.TTL.Duration < 0 {
		add("health.cache.ttl must not be negative")
	}
	if _, err := auth.ParseShowDetails(c.Health.ShowDetails); err != nil {
		add("health.show_details: %v", err)
	}
	if c.Server.RateLimit.Rate < 0 {
		add("server.rate_limit.rate must not be negative")
	}
	if c.Server.RateLimit.Enabled() && c.Server.RateLimit.Burst < 1 {
		add("server.rate_limit.burst must be at least 1")
	}

	if c.Auth.JWT != nil && c.Auth.JWT.SigningKey == "" {
		add("auth.jwt.signing_key is required")
	}
	for i, k := range c.Auth.APIKeys {
		if k.Key == "" || k.Principal == "" {
			add("auth.api_keys[%d] needs key and principal", i)
		}
	}

	seen := make(map[string]bool, len(c.Checks))
	for i, ch := range c.Checks {
		switch {
		case ch.Name == "":
			add("checks[%d].name is required", i)
		case seen[ch.Name]:
			add("checks[%d]: duplicate name %q", i, ch.Name)
		}
		seen[ch.Name] = true

		if !knownCheckTypes[ch.Type] {
			errs = append(errs, fmt.Errorf("%w: %w: checks[%d] %q", ErrInvalidConfig, ErrUnknownCheckType, i, ch.Type))
		} else if ch.Type != CheckMemory && ch.Target == "" {
			add("checks[%d] (%s) needs a target", i, ch.Type)
		}
		if ch.Timeout.Duration < 0 {
			add("checks[%d].timeout must not be negative", i)
		}
	}

	obs := c.ObserveConfig()
	if err := obs.Validate(); err != nil {
		add("telemetry: %v", err)
	}

	return errors.Join(errs...)
}
