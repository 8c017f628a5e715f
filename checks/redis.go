package checks

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis checks a Redis server with PING.
type Redis struct {
	base
	client redis.UniversalClient
}

// NewRedis creates a Redis check around client. The caller owns the client.
func NewRedis(name string, client redis.UniversalClient, opts ...Option) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: redis %q: client must not be nil", ErrInvalidCheck, name)
	}
	_, b, err := newSettings("redis", name, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Redis{base: b, client: client}, nil
}

// Execute sends PING.
func (r *Redis) Execute(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
