package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/healthjson/health"
)

// countingRun tracks calls and returns a configured report.
type countingRun struct {
	calls  int
	status health.Status
	err    error
}

func (r *countingRun) run(_ context.Context, checks []health.Check, opts health.Options) (health.Result, error) {
	r.calls++
	if r.err != nil {
		return health.Result{}, r.err
	}
	return health.Result{Status: r.status, Elapsed: 3 * time.Millisecond, Version: opts.Version}, nil
}

func testChecks() []health.Check {
	return []health.Check{health.NewCheckFunc("db", func(context.Context) error { return nil })}
}

func newTestMiddleware(t *testing.T, policy Policy) *Middleware {
	t.Helper()
	mw, err := NewMiddleware(NewMemoryCache(), nil, policy)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}
	return mw
}

func TestNewMiddleware_NilCache(t *testing.T) {
	if _, err := NewMiddleware(nil, nil, DefaultPolicy()); !errors.Is(err, ErrNilCache) {
		t.Errorf("NewMiddleware(nil) error = %v, want ErrNilCache", err)
	}
}

func TestMiddleware_CacheHit(t *testing.T) {
	mw := newTestMiddleware(t, Policy{TTL: time.Minute})
	r := &countingRun{status: health.StatusHealthy}
	opts := health.Options{Timeout: time.Second, Version: "1.0"}
	ctx := context.Background()

	first, hit, err := mw.Execute(ctx, testChecks(), opts, r.run)
	if err != nil || hit {
		t.Fatalf("first Execute() = hit %v, err %v, want miss", hit, err)
	}
	second, hit, err := mw.Execute(ctx, testChecks(), opts, r.run)
	if err != nil || !hit {
		t.Fatalf("second Execute() = hit %v, err %v, want hit", hit, err)
	}

	if r.calls != 1 {
		t.Errorf("run calls = %d, want 1", r.calls)
	}
	if second.Version != first.Version || second.Elapsed != first.Elapsed || second.Status != first.Status {
		t.Errorf("cached = %+v, want %+v", second, first)
	}
}

func TestMiddleware_DifferentOptionsMiss(t *testing.T) {
	mw := newTestMiddleware(t, Policy{TTL: time.Minute})
	r := &countingRun{status: health.StatusHealthy}
	ctx := context.Background()

	_, _, _ = mw.Execute(ctx, testChecks(), health.Options{Timeout: time.Second}, r.run)
	_, hit, _ := mw.Execute(ctx, testChecks(), health.Options{Timeout: time.Second, IncludeDetails: true}, r.run)

	if hit {
		t.Error("Execute() hit across detail levels, want miss")
	}
	if r.calls != 2 {
		t.Errorf("run calls = %d, want 2", r.calls)
	}
}

func TestMiddleware_UnhealthyNotCached(t *testing.T) {
	mw := newTestMiddleware(t, Policy{TTL: time.Minute})
	r := &countingRun{status: health.StatusUnhealthy}
	opts := health.Options{Timeout: time.Second}

	_, _, _ = mw.Execute(context.Background(), testChecks(), opts, r.run)
	_, hit, _ := mw.Execute(context.Background(), testChecks(), opts, r.run)

	if hit || r.calls != 2 {
		t.Errorf("hit = %v, calls = %d, want miss and 2 calls", hit, r.calls)
	}
}

func TestMiddleware_UnhealthyCachedWhenAllowed(t *testing.T) {
	mw := newTestMiddleware(t, Policy{TTL: time.Minute, CacheUnhealthy: true})
	r := &countingRun{status: health.StatusUnhealthy}
	opts := health.Options{Timeout: time.Second}

	_, _, _ = mw.Execute(context.Background(), testChecks(), opts, r.run)
	got, hit, _ := mw.Execute(context.Background(), testChecks(), opts, r.run)

	if !hit || r.calls != 1 {
		t.Errorf("hit = %v, calls = %d, want hit and 1 call", hit, r.calls)
	}
	if got.Status != health.StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", got.Status)
	}
}

func TestMiddleware_ErrorsNotCached(t *testing.T) {
	mw := newTestMiddleware(t, Policy{TTL: time.Minute, CacheUnhealthy: true})
	r := &countingRun{err: health.ErrInvalidOptions}
	opts := health.Options{Timeout: time.Second}

	for range 2 {
		if _, _, err := mw.Execute(context.Background(), testChecks(), opts, r.run); !errors.Is(err, health.ErrInvalidOptions) {
			t.Errorf("Execute() error = %v, want ErrInvalidOptions", err)
		}
	}
	if r.calls != 2 {
		t.Errorf("run calls = %d, want 2", r.calls)
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	mw := newTestMiddleware(t, NoCachePolicy())
	r := &countingRun{status: health.StatusHealthy}
	opts := health.Options{Timeout: time.Second}

	_, _, _ = mw.Execute(context.Background(), testChecks(), opts, r.run)
	_, hit, _ := mw.Execute(context.Background(), testChecks(), opts, r.run)

	if hit || r.calls != 2 {
		t.Errorf("hit = %v, calls = %d, want miss and 2 calls", hit, r.calls)
	}
}

func TestMiddleware_CorruptEntry(t *testing.T) {
	mem := NewMemoryCache()
	mw, _ := NewMiddleware(mem, nil, Policy{TTL: time.Minute})
	opts := health.Options{Timeout: time.Second}

	key, _ := NewDefaultKeyer("").Key([]string{"db"}, opts)
	_ = mem.Set(context.Background(), key, []byte("not json"), time.Minute)

	r := &countingRun{status: health.StatusHealthy}
	_, hit, err := mw.Execute(context.Background(), testChecks(), opts, r.run)
	if err != nil || hit {
		t.Errorf("Execute() = hit %v, err %v, want miss", hit, err)
	}
	if r.calls != 1 {
		t.Errorf("run calls = %d, want 1", r.calls)
	}
}
