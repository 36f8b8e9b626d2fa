package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quarry-data/quarry/lib/jitter"
	"github.com/quarry-data/quarry/lib/retry"
)

const (
	maxAttempts  = 3
	jitterBaseMs = 300
)

// Store is the scoped connection handle the IO protocols execute against.
// Implementations wrap [database/sql]; callers acquire one per operation and
// must not hold it across calls.
type Store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Begin() (*sql.Tx, error)
	IsRetryableError(err error) bool
}

type storeWrapper struct {
	*sql.DB
}

func (s *storeWrapper) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	retryCfg := retry.NewRetryConfig(retry.NewRetryConfigArgs{
		JitterBaseMs:   jitterBaseMs,
		JitterMaxMs:    jitter.DefaultMaxMs,
		MaxAttempts:    maxAttempts,
		IsRetryableErr: s.IsRetryableError,
	})

	return retry.WithRetries(retryCfg, func(_ int, _ error) (sql.Result, error) {
		return s.DB.ExecContext(ctx, query, args...)
	})
}

func (s *storeWrapper) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.DB.QueryContext(ctx, query, args...)
}

func (s *storeWrapper) Begin() (*sql.Tx, error) {
	return s.DB.Begin()
}

func (s *storeWrapper) IsRetryableError(err error) bool {
	return isRetryableError(err)
}

// Open dials and validates a connection through the named [database/sql] driver.
func Open(ctx context.Context, driverName, dsn string) (Store, error) {
	database, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to start a SQL client for driver %q: %w", driverName, err)
	}

	if err = database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to validate the DB connection for driver %q: %w", driverName, err)
	}

	return &storeWrapper{DB: database}, nil
}

// NewStore wraps an existing [sql.DB]. Used by tests and callers that manage
// their own pool.
func NewStore(database *sql.DB) Store {
	return &storeWrapper{DB: database}
}
