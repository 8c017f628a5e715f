package checks

import (
	"context"
	"fmt"
	"net"
)

// TCP checks that a TCP connection to an address can be opened.
type TCP struct {
	base
	addr   string
	dialer net.Dialer
}

// NewTCP creates a TCP check for addr, given as host:port.
func NewTCP(name, addr string, opts ...Option) (*TCP, error) {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("%w: tcp %q: %w", ErrInvalidCheck, name, err)
	}
	s, b, err := newSettings("tcp", name, map[string]string{"address": addr}, opts)
	if err != nil {
		return nil, err
	}
	return &TCP{base: b, addr: addr, dialer: net.Dialer{Timeout: s.timeout}}, nil
}

// Execute dials and immediately closes the connection.
func (t *TCP) Execute(ctx context.Context) error {
	conn, err := t.dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return fmt.Errorf("tcp %s: %w", t.addr, err)
	}
	return conn.Close()
}
