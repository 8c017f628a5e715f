package main

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/healthjson/auth"
	"github.com/jonwraymond/healthjson/cache"
	"github.com/jonwraymond/healthjson/checks"
	"github.com/jonwraymond/healthjson/config"
	"github.com/jonwraymond/healthjson/endpoint"
	"github.com/jonwraymond/healthjson/health"
	"github.com/jonwraymond/healthjson/observe"
	"github.com/jonwraymond/healthjson/resilience"
)

const metricsPath = "/metrics"

// app holds everything healthd builds from its configuration.
type app struct {
	cfg     *config.Config
	obs     observe.Observer
	logger  observe.Logger
	checks  *checks.Set
	closers []io.Closer
	handler http.Handler
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	obs, err := observe.NewObserver(ctx, cfg.ObserveConfig())
	if err != nil {
		return nil, err
	}
	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}

	set, err := checks.Build(ctx, cfg.Checks)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, err
	}

	show, err := auth.ParseShowDetails(cfg.Health.ShowDetails)
	if err != nil {
		_ = set.Close()
		_ = obs.Shutdown(ctx)
		return nil, err
	}

	opts := []endpoint.Option{
		endpoint.WithEngine(health.NewEngine(
			health.WithMaxConcurrency(cfg.Health.MaxConcurrency),
			health.WithInstrumentation(mw),
		)),
		endpoint.WithAuthorizer(auth.NewDetailsAuthorizer(show, cfg.Health.Roles...)),
		endpoint.WithLogger(obs.Logger()),
		endpoint.WithDefaultTimeout(cfg.Health.DefaultTimeout.Duration),
		endpoint.WithBuildInfo(cfg.Service.Version, cfg.Service.BuildID),
	}
	var closers []io.Closer
	if cc := cfg.Health.Cache; cc.TTL.Duration > 0 {
		store, closer, err := newReportStore(cc)
		if err != nil {
			_ = set.Close()
			_ = obs.Shutdown(ctx)
			return nil, err
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		mw, err := cache.NewMiddleware(store, cache.NewDefaultKeyer(cfg.Service.Name), cache.Policy{
			TTL:            cc.TTL.Duration,
			CacheUnhealthy: cc.Unhealthy,
		})
		if err != nil {
			_ = set.Close()
			_ = obs.Shutdown(ctx)
			return nil, err
		}
		opts = append(opts, endpoint.WithReportCache(mw))
	}
	if rl := cfg.Server.RateLimit; rl.Enabled() {
		opts = append(opts, endpoint.WithRateLimiter(resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Rate:  rl.Rate,
			Burst: rl.Burst,
		})))
	}

	handler := auth.Middleware(newAuthenticator(cfg.Auth), obs.Logger())(endpoint.NewHandler(set, opts...))

	obs.Logger().Info(ctx, "health checks configured",
		observe.F("checks", len(set.Checks())),
		observe.F("show_details", string(show)),
		observe.F("max_concurrency", cfg.Health.MaxConcurrency),
	)

	return &app{
		cfg:     cfg,
		obs:     obs,
		logger:  obs.Logger(),
		checks:  set,
		closers: closers,
		handler: handler,
	}, nil
}

// newReportStore picks the report cache backend: Redis when a URL is
// configured, memory otherwise.
func newReportStore(cfg config.ReportCacheConfig) (cache.Cache, io.Closer, error) {
	if cfg.Redis == "" {
		return cache.NewMemoryCache(), nil, nil
	}
	opts, err := redis.ParseURL(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	return cache.NewRedisCache(client), client, nil
}

// newAuthenticator combines the configured authenticators. It returns nil
// when none is configured, leaving every caller anonymous.
func newAuthenticator(cfg config.AuthConfig) auth.Authenticator {
	var authns []auth.Authenticator
	if cfg.JWT != nil {
		authns = append(authns, auth.NewJWTAuthenticator(auth.JWTConfig{
			Issuer:     cfg.JWT.Issuer,
			Audience:   cfg.JWT.Audience,
			RolesClaim: cfg.JWT.RolesClaim,
		}, auth.NewStaticKeyProvider([]byte(cfg.JWT.SigningKey))))
	}
	if len(cfg.APIKeys) > 0 {
		store := auth.NewMemoryAPIKeyStore()
		for _, k := range cfg.APIKeys {
			store.Add(auth.APIKey{
				ID:        k.ID,
				KeyHash:   auth.HashAPIKey(k.Key),
				Principal: k.Principal,
				Roles:     k.Roles,
			})
		}
		authns = append(authns, auth.NewAPIKeyAuthenticator(cfg.APIKeyHeader, store))
	}

	switch len(authns) {
	case 0:
		return nil
	case 1:
		return authns[0]
	default:
		return auth.NewCompositeAuthenticator(authns...)
	}
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	endpoint.RegisterHandlersAt(mux, a.cfg.Server.Path, a.cfg.Server.LivenessPath, a.handler)
	if a.cfg.Telemetry.Metrics.Enabled && a.cfg.Telemetry.Metrics.Exporter == "prometheus" {
		mux.Handle(metricsPath, promhttp.Handler())
	}
	return mux
}

// close releases check and cache clients and flushes telemetry.
func (a *app) close(ctx context.Context) error {
	errs := []error{a.checks.Close()}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	errs = append(errs, a.obs.Shutdown(ctx))
	return errors.Join(errs...)
}
