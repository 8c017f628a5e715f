package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonwraymond/healthjson/auth"
	"github.com/jonwraymond/healthjson/cache"
	"github.com/jonwraymond/healthjson/config"
	"github.com/jonwraymond/healthjson/endpoint"
	"github.com/jonwraymond/healthjson/secret"
)

const testConfig = `
service:
  name: healthd-test
  version: "1.0.0"
  build_id: b1
health:
  default_timeout: 500
  show_details: when_authorized
  roles: [ops]
auth:
  api_keys:
    - id: k1
      key: ${HEALTHD_TEST_KEY}
      principal: monitor
      roles: [ops]
telemetry:
  logging:
    enabled: false
checks:
  - name: memory
    type: memory
    options:
      critical_threshold: "1"
  - name: upstream
    type: http
    target: %s
`

func newTestApp(t *testing.T, upstreamStatus int) *app {
	t.Helper()
	t.Setenv("HEALTHD_TEST_KEY", "s3cret")

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(upstreamStatus)
	}))
	t.Cleanup(upstream.Close)

	resolver, err := secret.NewDefaultResolver()
	if err != nil {
		t.Fatalf("NewDefaultResolver() error = %v", err)
	}
	ctx := context.Background()
	cfg, err := config.Parse(ctx, strings.NewReader(fmt.Sprintf(testConfig, upstream.URL)), resolver)
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	t.Cleanup(func() {
		if err := a.close(context.Background()); err != nil {
			t.Errorf("close() error = %v", err)
		}
	})
	return a
}

func get(t *testing.T, h http.Handler, target, apiKey string) (*httptest.ResponseRecorder, endpoint.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if apiKey != "" {
		req.Header.Set(auth.DefaultAPIKeyHeader, apiKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp endpoint.Response
	if strings.HasPrefix(target, "/health?") || target == "/health" {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
	return rec, resp
}

func TestApp_Healthy(t *testing.T) {
	routes := newTestApp(t, http.StatusOK).routes()

	rec, resp := get(t, routes, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if resp.Status != endpoint.StatusHealthy {
		t.Errorf("Status = %s, want HEALTHY", resp.Status)
	}
	if resp.Version != "1.0.0" || resp.BuildID != "b1" {
		t.Errorf("version/buildId = %q/%q, want 1.0.0/b1", resp.Version, resp.BuildID)
	}
}

func TestApp_DetailsRequireAPIKey(t *testing.T) {
	routes := newTestApp(t, http.StatusInternalServerError).routes()

	rec, anon := get(t, routes, "/health?level=detailed", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if anon.Components != nil {
		t.Errorf("anonymous Components = %v, want nil", anon.Components)
	}

	_, authed := get(t, routes, "/health?level=detailed", "s3cret")
	if len(authed.Components) != 2 {
		t.Fatalf("Components = %v, want 2", authed.Components)
	}
	for _, c := range authed.Components {
		switch c.Name {
		case "memory":
			if c.Status != endpoint.StatusHealthy {
				t.Errorf("memory status = %s, want HEALTHY", c.Status)
			}
		case "upstream":
			if c.Status != endpoint.StatusUnhealthy || !strings.Contains(c.ErrorDetails, "500") {
				t.Errorf("upstream = %+v, want UNHEALTHY mentioning 500", c)
			}
			if c.Metadata["kind"] != config.CheckHTTP {
				t.Errorf("upstream kind = %q, want http", c.Metadata["kind"])
			}
		default:
			t.Errorf("unexpected component %q", c.Name)
		}
	}
}

func TestApp_Routes(t *testing.T) {
	routes := newTestApp(t, http.StatusOK).routes()

	rec, _ := get(t, routes, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("/healthz = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}

	rec, _ = get(t, routes, metricsPath, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("%s status = %d, want 404 without prometheus", metricsPath, rec.Code)
	}
}

func TestNewAuthenticator(t *testing.T) {
	if got := newAuthenticator(config.AuthConfig{}); got != nil {
		t.Errorf("newAuthenticator(empty) = %T, want nil", got)
	}

	jwtOnly := newAuthenticator(config.AuthConfig{JWT: &config.JWTConfig{SigningKey: "k"}})
	if _, ok := jwtOnly.(*auth.JWTAuthenticator); !ok {
		t.Errorf("newAuthenticator(jwt) = %T, want *auth.JWTAuthenticator", jwtOnly)
	}

	both := newAuthenticator(config.AuthConfig{
		JWT:     &config.JWTConfig{SigningKey: "k"},
		APIKeys: []config.APIKeyConfig{{ID: "k1", Key: "x", Principal: "p"}},
	})
	if _, ok := both.(*auth.CompositeAuthenticator); !ok {
		t.Errorf("newAuthenticator(jwt+keys) = %T, want *auth.CompositeAuthenticator", both)
	}
}

func TestNewReportStore(t *testing.T) {
	store, closer, err := newReportStore(config.ReportCacheConfig{})
	if err != nil || closer != nil {
		t.Fatalf("newReportStore(memory) = %v, %v", closer, err)
	}
	if _, ok := store.(*cache.MemoryCache); !ok {
		t.Errorf("store = %T, want *cache.MemoryCache", store)
	}

	store, closer, err = newReportStore(config.ReportCacheConfig{Redis: "redis://127.0.0.1:6379/2"})
	if err != nil {
		t.Fatalf("newReportStore(redis) error = %v", err)
	}
	defer closer.Close()
	if _, ok := store.(*cache.RedisCache); !ok {
		t.Errorf("store = %T, want *cache.RedisCache", store)
	}

	if _, _, err := newReportStore(config.ReportCacheConfig{Redis: "mysql://nope"}); err == nil {
		t.Error("newReportStore(bad url) error = nil, want error")
	}
}
