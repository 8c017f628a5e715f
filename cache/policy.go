package cache

import "time"

// Policy configures report caching.
type Policy struct {
	// TTL is how long a report is served from cache. Zero disables caching.
	TTL time.Duration

	// MaxTTL clamps TTL. Zero means no maximum.
	MaxTTL time.Duration

	// CacheUnhealthy also caches unhealthy reports. When false a failing
	// component is re-checked on every request.
	CacheUnhealthy bool
}

// DefaultPolicy caches healthy reports for one second, at most one minute.
func DefaultPolicy() Policy {
	return Policy{
		TTL:    time.Second,
		MaxTTL: time.Minute,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.TTL > 0
}

// EffectiveTTL returns the TTL for a report with the given health, or zero
// if it must not be cached.
func (p Policy) EffectiveTTL(healthy bool) time.Duration {
	if !healthy && !p.CacheUnhealthy {
		return 0
	}
	ttl := p.TTL
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}
