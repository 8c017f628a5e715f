package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/healthjson/observe"
	"github.com/jonwraymond/healthjson/resilience"
	"github.com/jonwraymond/healthjson/secret"
)

// Check types understood by healthd.
const (
	CheckMemory   = "memory"
	CheckHTTP     = "http"
	CheckTCP      = "tcp"
	CheckDNS      = "dns"
	CheckRedis    = "redis"
	CheckSQL      = "sql"
	CheckPostgres = "postgres"
)

var knownCheckTypes = map[string]bool{
	CheckMemory:   true,
	CheckHTTP:     true,
	CheckTCP:      true,
	CheckDNS:      true,
	CheckRedis:    true,
	CheckSQL:      true,
	CheckPostgres: true,
}

// Config is the root configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Server    ServerConfig    `yaml:"server"`
	Health    HealthConfig    `yaml:"health"`
	Auth      AuthConfig      `yaml:"auth"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Checks    []CheckConfig   `yaml:"checks"`
}

// ServiceConfig identifies the service reporting its health.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	BuildID string `yaml:"build_id"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string          `yaml:"addr"`
	Path            string          `yaml:"path"`
	LivenessPath    string          `yaml:"liveness_path"`
	ShutdownTimeout Duration        `yaml:"shutdown_timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig limits health report requests. A zero Rate disables it.
type RateLimitConfig struct {
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

// Enabled reports whether rate limiting is configured.
func (r RateLimitConfig) Enabled() bool {
	return r.Rate > 0
}

// HealthConfig configures check execution and detail gating.
type HealthConfig struct {
	DefaultTimeout Duration `yaml:"default_timeout"`
	MaxConcurrency int      `yaml:"max_concurrency"`
	ShowDetails    string   `yaml:"show_details"`
	Roles          []string `yaml:"roles"`

	Cache ReportCacheConfig `yaml:"cache"`
}

// ReportCacheConfig caches health reports. A zero TTL disables it.
type ReportCacheConfig struct {
	TTL Duration `yaml:"ttl"`

	// Unhealthy also caches unhealthy reports.
	Unhealthy bool `yaml:"unhealthy"`

	// Redis is a redis:// URL for a shared cache. Empty keeps reports in
	// process.
	Redis string `yaml:"redis"`
}

// AuthConfig configures caller authentication.
type AuthConfig struct {
	JWT          *JWTConfig     `yaml:"jwt"`
	APIKeyHeader string         `yaml:"api_key_header"`
	APIKeys      []APIKeyConfig `yaml:"api_keys"`
}

// JWTConfig configures bearer token validation.
type JWTConfig struct {
	Issuer     string `yaml:"issuer"`
	Audience   string `yaml:"audience"`
	SigningKey string `yaml:"signing_key"`
	RolesClaim string `yaml:"roles_claim"`
}

// APIKeyConfig declares one accepted API key.
type APIKeyConfig struct {
	ID        string   `yaml:"id"`
	Key       string   `yaml:"key"`
	Principal string   `yaml:"principal"`
	Roles     []string `yaml:"roles"`
}

// TelemetryConfig configures tracing, metrics and logging.
type TelemetryConfig struct {
	Tracing struct {
		Enabled   bool    `yaml:"enabled"`
		Exporter  string  `yaml:"exporter"`
		SamplePct float64 `yaml:"sample_pct"`
	} `yaml:"tracing"`
	Metrics struct {
		Enabled  bool   `yaml:"enabled"`
		Exporter string `yaml:"exporter"`
	} `yaml:"metrics"`
	Logging struct {
		Enabled bool   `yaml:"enabled"`
		Level   string `yaml:"level"`
	} `yaml:"logging"`
}

// CheckConfig declares one health check.
type CheckConfig struct {
	Name     string            `yaml:"name"`
	Type     string            `yaml:"type"`
	Target   string            `yaml:"target"`
	Timeout  Duration          `yaml:"timeout"`
	Metadata map[string]string `yaml:"metadata"`
	Options  map[string]string `yaml:"options"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.Telemetry.Logging.Enabled = true
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "healthd"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Path == "" {
		c.Server.Path = "/health"
	}
	if c.Server.LivenessPath == "" {
		c.Server.LivenessPath = "/healthz"
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Server.RateLimit.Enabled() && c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = 1
	}
	if c.Health.DefaultTimeout.Duration == 0 {
		c.Health.DefaultTimeout.Duration = resilience.DefaultTimeout
	}
	if c.Health.ShowDetails == "" {
		c.Health.ShowDetails = "when_authorized"
	}
	if c.Telemetry.Logging.Level == "" {
		c.Telemetry.Logging.Level = "info"
	}
}

// Parse decodes YAML from r, applies defaults, resolves secrets through
// resolver and validates the result. Unknown keys are rejected.
func Parse(ctx context.Context, r io.Reader, resolver *secret.Resolver) (*Config, error) {
	cfg := &Config{}
	cfg.Telemetry.Logging.Enabled = true

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.resolveSecrets(ctx, resolver); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(ctx context.Context, path string, resolver *secret.Resolver) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(ctx, bytes.NewReader(data), resolver)
}

func (c *Config) resolveSecrets(ctx context.Context, r *secret.Resolver) error {
	var errs []error
	resolve := func(field string, v *string) {
		out, err := r.ResolveValue(ctx, *v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", field, err))
			return
		}
		*v = out
	}

	if c.Auth.JWT != nil {
		resolve("auth.jwt.signing_key", &c.Auth.JWT.SigningKey)
	}
	resolve("health.cache.redis", &c.Health.Cache.Redis)
	for i := range c.Auth.APIKeys {
		resolve(fmt.Sprintf("auth.api_keys[%d].key", i), &c.Auth.APIKeys[i].Key)
	}
	for i := range c.Checks {
		ch := &c.Checks[i]
		resolve(fmt.Sprintf("checks[%s].target", ch.Name), &ch.Target)
		opts, err := r.ResolveMap(ctx, ch.Options)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: checks[%s].options: %w", ch.Name, err))
			continue
		}
		ch.Options = opts
	}
	return errors.Join(errs...)
}

// ObserveConfig converts the telemetry section for observe.NewObserver.
func (c *Config) ObserveConfig() observe.Config {
	t := c.Telemetry
	return observe.Config{
		ServiceName: c.Service.Name,
		Version:     c.Service.Version,
		Tracing: observe.TracingConfig{
			Enabled:   t.Tracing.Enabled,
			Exporter:  t.Tracing.Exporter,
			SamplePct: t.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  t.Metrics.Enabled,
			Exporter: t.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: t.Logging.Enabled,
			Level:   t.Logging.Level,
		},
	}
}
