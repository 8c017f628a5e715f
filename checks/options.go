package checks

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"time"
)

// Option configures a check.
//
// Options that do not apply to a given check type are ignored by it.
type Option func(*settings) error

type settings struct {
	metadata       map[string]string
	timeout        time.Duration
	httpClient     *http.Client
	expectedStatus int
	recordType     string
	query          string
}

// WithMetadata attaches static metadata to the check. The map is copied.
func WithMetadata(metadata map[string]string) Option {
	return func(s *settings) error {
		if s.metadata == nil {
			s.metadata = make(map[string]string, len(metadata))
		}
		maps.Copy(s.metadata, metadata)
		return nil
	}
}

// WithTimeout bounds the probe's own client. Zero leaves it to the caller's
// context.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) error {
		if d < 0 {
			return fmt.Errorf("timeout must not be negative, got %v", d)
		}
		s.timeout = d
		return nil
	}
}

// WithHTTPClient sets the client used by HTTP checks.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) error {
		if c == nil {
			return fmt.Errorf("http client must not be nil")
		}
		s.httpClient = c
		return nil
	}
}

// WithExpectedStatus makes an HTTP check require exactly code instead of
// any 2xx.
func WithExpectedStatus(code int) Option {
	return func(s *settings) error {
		if code < 100 || code > 599 {
			return fmt.Errorf("invalid status code %d", code)
		}
		s.expectedStatus = code
		return nil
	}
}

// WithRecordType sets the DNS record type to query: A (default) or AAAA.
func WithRecordType(t string) Option {
	return func(s *settings) error {
		if _, err := parseQType(t); err != nil {
			return err
		}
		s.recordType = t
		return nil
	}
}

// WithQuery makes a SQL check run q after a successful ping.
func WithQuery(q string) Option {
	return func(s *settings) error {
		s.query = q
		return nil
	}
}

// base holds what every check shares.
type base struct {
	name     string
	metadata map[string]string
	timeout  time.Duration
}

// newSettings applies opts and builds the shared part of a check. Metadata
// is kind, then tags, then caller metadata, later keys winning.
func newSettings(kind, name string, tags map[string]string, opts []Option) (*settings, base, error) {
	if name == "" {
		return nil, base{}, fmt.Errorf("%w: %s: name must not be empty", ErrInvalidCheck, kind)
	}
	s := &settings{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, base{}, fmt.Errorf("%w: %s %q: %w", ErrInvalidCheck, kind, name, err)
		}
	}
	md := map[string]string{"kind": kind}
	maps.Copy(md, tags)
	maps.Copy(md, s.metadata)
	return s, base{name: name, metadata: md, timeout: s.timeout}, nil
}

// Name returns the check name.
func (b base) Name() string {
	return b.name
}

// Metadata returns the check's static metadata.
func (b base) Metadata() map[string]string {
	return b.metadata
}

// Timeout returns the probe's own timeout, zero if unset.
func (b base) Timeout() time.Duration {
	return b.timeout
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}
