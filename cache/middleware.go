package cache

import (
	"context"
	"encoding/json"

	"github.com/jonwraymond/healthjson/health"
)

// RunFunc produces a health report.
type RunFunc func(ctx context.Context, checks []health.Check, opts health.Options) (health.Result, error)

// Middleware serves reports from a Cache.
type Middleware struct {
	cache  Cache
	keyer  Keyer
	policy Policy
}

// NewMiddleware creates a report cache middleware. A nil keyer means
// NewDefaultKeyer("").
func NewMiddleware(cache Cache, keyer Keyer, policy Policy) (*Middleware, error) {
	if cache == nil {
		return nil, ErrNilCache
	}
	if keyer == nil {
		keyer = NewDefaultKeyer("")
	}
	return &Middleware{cache: cache, keyer: keyer, policy: policy}, nil
}

// Policy returns the caching policy.
func (m *Middleware) Policy() Policy {
	return m.policy
}

// Execute returns a cached report for checks and opts if there is one,
// otherwise it calls run and caches the outcome as the policy allows.
// hit reports whether the result came from the cache. Errors are never
// cached.
func (m *Middleware) Execute(ctx context.Context, checks []health.Check, opts health.Options, run RunFunc) (result health.Result, hit bool, err error) {
	if !m.policy.ShouldCache() {
		result, err = run(ctx, checks, opts)
		return result, false, err
	}

	key, err := m.keyer.Key(names(checks), opts)
	if err != nil {
		result, err = run(ctx, checks, opts)
		return result, false, err
	}

	if cached, ok := m.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, true, nil
		}
		_ = m.cache.Delete(ctx, key)
	}

	result, err = run(ctx, checks, opts)
	if err != nil {
		return result, false, err
	}

	if ttl := m.policy.EffectiveTTL(result.Status == health.StatusHealthy); ttl > 0 {
		if data, err := json.Marshal(result); err == nil {
			_ = m.cache.Set(ctx, key, data, ttl)
		}
	}
	return result, false, nil
}

func names(checks []health.Check) []string {
	out := make([]string, 0, len(checks))
	for _, c := range checks {
		if c != nil {
			out = append(out, c.Name())
		}
	}
	return out
}
