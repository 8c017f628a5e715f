package checks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/healthjson/config"
	"github.com/jonwraymond/healthjson/health"
)

var (
	_ health.Check = (*Memory)(nil)
	_ health.Check = (*HTTP)(nil)
	_ health.Check = (*TCP)(nil)
	_ health.Check = (*DNS)(nil)
	_ health.Check = (*Redis)(nil)
	_ health.Check = (*SQL)(nil)
	_ health.Check = (*Ping)(nil)
)

// DefaultSQLDriver is the database/sql driver used when a sql check does not
// name one.
const DefaultSQLDriver = "postgres"

// optionKeys lists the options each check type accepts.
var optionKeys = map[string][]string{
	config.CheckMemory:   {"critical_threshold", "max_alloc"},
	config.CheckHTTP:     {"expected_status"},
	config.CheckTCP:      nil,
	config.CheckDNS:      {"server", "record_type"},
	config.CheckRedis:    nil,
	config.CheckSQL:      {"driver", "query"},
	config.CheckPostgres: nil,
}

// Set is a built check collection together with the clients it opened.
type Set struct {
	checks  health.Checks
	closers []io.Closer
}

// Checks returns the built checks in declaration order.
func (s *Set) Checks() []health.Check {
	return s.checks
}

// Close releases every client the set opened.
func (s *Set) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Build creates one check per entry. Clients (Redis, SQL, Postgres pools)
// are opened lazily by their libraries and owned by the returned Set. On
// error anything already opened is closed.
func Build(ctx context.Context, cfgs []config.CheckConfig) (*Set, error) {
	set := &Set{}
	var errs []error
	for _, cc := range cfgs {
		c, closer, err := build(ctx, cc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set.checks = append(set.checks, c)
		if closer != nil {
			set.closers = append(set.closers, closer)
		}
	}
	if err := errors.Join(errs...); err != nil {
		_ = set.Close()
		return nil, err
	}
	return set, nil
}

func build(ctx context.Context, cc config.CheckConfig) (health.Check, io.Closer, error) {
	allowed, ok := optionKeys[cc.Type]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %w: check %q type %q", ErrInvalidCheck, config.ErrUnknownCheckType, cc.Name, cc.Type)
	}
	for k := range cc.Options {
		if !slices.Contains(allowed, k) {
			return nil, nil, fmt.Errorf("%w: check %q: unknown option %q for type %s", ErrInvalidCheck, cc.Name, k, cc.Type)
		}
	}

	opts := []Option{
		WithMetadata(map[string]string{"kind": cc.Type}),
		WithMetadata(cc.Metadata),
		WithTimeout(cc.Timeout.Duration),
	}

	switch cc.Type {
	case config.CheckMemory:
		var mc MemoryConfig
		if v, ok := cc.Options["critical_threshold"]; ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, optionError(cc, "critical_threshold", err)
			}
			mc.CriticalThreshold = f
		}
		if v, ok := cc.Options["max_alloc"]; ok {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, nil, optionError(cc, "max_alloc", err)
			}
			mc.MaxAlloc = n
		}
		c, err := NewMemory(cc.Name, mc, opts...)
		return c, nil, err

	case config.CheckHTTP:
		if v, ok := cc.Options["expected_status"]; ok {
			code, err := strconv.Atoi(v)
			if err != nil {
				return nil, nil, optionError(cc, "expected_status", err)
			}
			opts = append(opts, WithExpectedStatus(code))
		}
		c, err := NewHTTP(cc.Name, cc.Target, opts...)
		return c, nil, err

	case config.CheckTCP:
		c, err := NewTCP(cc.Name, cc.Target, opts...)
		return c, nil, err

	case config.CheckDNS:
		if v, ok := cc.Options["record_type"]; ok {
			opts = append(opts, WithRecordType(v))
		}
		c, err := NewDNS(cc.Name, cc.Options["server"], cc.Target, opts...)
		return c, nil, err

	case config.CheckRedis:
		ropts, err := redis.ParseURL(cc.Target)
		if err != nil {
			ropts = &redis.Options{Addr: cc.Target}
		}
		client := redis.NewClient(ropts)
		c, err := NewRedis(cc.Name, client, opts...)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return c, client, nil

	case config.CheckSQL:
		driver := cc.Options["driver"]
		if driver == "" {
			driver = DefaultSQLDriver
		}
		if q, ok := cc.Options["query"]; ok {
			opts = append(opts, WithQuery(q))
		}
		db, err := sql.Open(driver, cc.Target)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: check %q: %w", ErrInvalidCheck, cc.Name, err)
		}
		c, err := NewSQL(cc.Name, db, opts...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return c, db, nil

	case config.CheckPostgres:
		pool, err := pgxpool.New(ctx, cc.Target)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: check %q: %w", ErrInvalidCheck, cc.Name, err)
		}
		c, err := NewPing(cc.Name, pool, opts...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return c, closerFunc(func() error { pool.Close(); return nil }), nil
	}

	return nil, nil, fmt.Errorf("%w: %w: check %q type %q", ErrInvalidCheck, config.ErrUnknownCheckType, cc.Name, cc.Type)
}

func optionError(cc config.CheckConfig, key string, err error) error {
	return fmt.Errorf("%w: check %q option %s: %w", ErrInvalidCheck, cc.Name, key, err)
}
