package endpoint

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonwraymond/healthjson/auth"
	"github.com/jonwraymond/healthjson/cache"
	"github.com/jonwraymond/healthjson/health"
	"github.com/jonwraymond/healthjson/observe"
	"github.com/jonwraymond/healthjson/resilience"
)

// Default routes used by RegisterHandlers.
const (
	DefaultPath         = "/health"
	DefaultLivenessPath = "/healthz"
)

// Option configures a Handler.
type Option func(*Handler)

// WithEngine sets the engine that runs the checks.
func WithEngine(e *health.Engine) Option {
	return func(h *Handler) {
		if e != nil {
			h.engine = e
		}
	}
}

// WithAuthorizer sets the authorizer deciding whether details are shown.
// Without one, details are never shown.
func WithAuthorizer(a auth.Authorizer) Option {
	return func(h *Handler) {
		h.authz = a
	}
}

// WithRateLimiter rejects requests over the limiter's rate with 429.
func WithRateLimiter(rl *resilience.RateLimiter) Option {
	return func(h *Handler) {
		h.limiter = rl
	}
}

// WithReportCache serves repeated requests from mw within its TTL.
func WithReportCache(mw *cache.Middleware) Option {
	return func(h *Handler) {
		h.cache = mw
	}
}

// WithLogger sets the logger.
func WithLogger(l observe.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithDefaultTimeout sets the per-check timeout used when the request has
// no timeoutMs.
func WithDefaultTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.defaultTimeout = d
		}
	}
}

// WithBuildInfo sets the version and build ID echoed in every report.
func WithBuildInfo(version, buildID string) Option {
	return func(h *Handler) {
		h.version = version
		h.buildID = buildID
	}
}

// Handler serves health reports for the checks of a source.
type Handler struct {
	source         health.CheckSource
	engine         *health.Engine
	authz          auth.Authorizer
	limiter        *resilience.RateLimiter
	cache          *cache.Middleware
	logger         observe.Logger
	defaultTimeout time.Duration
	version        string
	buildID        string
}

// NewHandler creates a Handler. The source is read on every request, so a
// health.Registry picks up registrations without rebuilding the handler.
func NewHandler(source health.CheckSource, opts ...Option) *Handler {
	h := &Handler{
		source:         source,
		engine:         health.NewEngine(),
		logger:         observe.NopLogger(),
		defaultTimeout: resilience.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Options builds the execution options for q as seen by the caller in r.
func (h *Handler) Options(r *http.Request, q Query) health.Options {
	timeout := q.Timeout
	if timeout == 0 {
		timeout = h.defaultTimeout
	}
	return health.Options{
		Include:        q.Include,
		Exclude:        q.Exclude,
		Timeout:        timeout,
		IncludeDetails: q.Detailed && auth.CanViewDetails(r.Context(), h.authz),
		Version:        h.version,
		BuildID:        h.buildID,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.limiter != nil && !h.limiter.Allow() {
		h.logger.Warn(ctx, "health request rate limited",
			observe.F("remote_addr", r.RemoteAddr),
		)
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, resilience.ErrRateLimitExceeded.Error())
		return
	}

	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := h.Options(r, q)
	var checks []health.Check
	if h.source != nil {
		checks = h.source.Checks()
	}

	var (
		result health.Result
		cached bool
	)
	if h.cache != nil {
		result, cached, err = h.cache.Execute(ctx, checks, opts, h.engine.ExecuteChecks)
	} else {
		result, err = h.engine.ExecuteChecks(ctx, checks, opts)
	}
	if err != nil {
		h.logger.Error(ctx, "health report failed", observe.F("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "health report failed")
		return
	}

	code := result.Status.HTTPStatus()
	h.logger.Debug(ctx, "health report served",
		observe.F("status", result.Status.String()),
		observe.F("http_status", code),
		observe.F("details", opts.IncludeDetails),
		observe.F("cached", cached),
		observe.F("principal", auth.PrincipalFromContext(ctx)),
	)

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(NewResponse(result))
}

// LivenessHandler returns an HTTP handler for liveness probes. It runs no
// checks.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// RegisterHandlers registers h at DefaultPath and the liveness handler at
// DefaultLivenessPath.
func RegisterHandlers(mux *http.ServeMux, h http.Handler) {
	RegisterHandlersAt(mux, DefaultPath, DefaultLivenessPath, h)
}

// RegisterHandlersAt registers h at path and the liveness handler at
// livenessPath. An empty livenessPath skips it.
func RegisterHandlersAt(mux *http.ServeMux, path, livenessPath string, h http.Handler) {
	mux.Handle(path, h)
	if livenessPath != "" {
		mux.Handle(livenessPath, LivenessHandler())
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
