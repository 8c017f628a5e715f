package checks

import (
	"context"
	"database/sql"
	"fmt"
)

// SQL checks a database/sql connection pool.
type SQL struct {
	base
	db    *sql.DB
	query string
}

// NewSQL creates a SQL check around db. The caller owns db.
func NewSQL(name string, db *sql.DB, opts ...Option) (*SQL, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: sql %q: db must not be nil", ErrInvalidCheck, name)
	}
	s, b, err := newSettings("sql", name, nil, opts)
	if err != nil {
		return nil, err
	}
	return &SQL{base: b, db: db, query: s.query}, nil
}

// Execute pings the database, then runs the probe query if one is set.
func (c *SQL) Execute(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sql ping: %w", err)
	}
	if c.query == "" {
		return nil
	}
	if _, err := c.db.ExecContext(ctx, c.query); err != nil {
		return fmt.Errorf("sql probe query: %w", err)
	}
	return nil
}
