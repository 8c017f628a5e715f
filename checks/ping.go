package checks

import (
	"context"
	"fmt"
)

// Pinger is anything that can verify its own connection, such as a
// pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks a Pinger.
type Ping struct {
	base
	pinger Pinger
}

// NewPing creates a check around p. The caller owns p.
func NewPing(name string, p Pinger, opts ...Option) (*Ping, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: ping %q: pinger must not be nil", ErrInvalidCheck, name)
	}
	_, b, err := newSettings("ping", name, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Ping{base: b, pinger: p}, nil
}

// Execute calls Ping.
func (p *Ping) Execute(ctx context.Context) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", p.name, err)
	}
	return nil
}
