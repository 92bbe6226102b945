package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/cooooin/harmony/internal/db"
	"github.com/cooooin/harmony/internal/metrics"
	"github.com/cooooin/harmony/internal/models"
)

// store is the plumbing shared by every repository: each method runs as
// one transaction on one leased connection. Transient lock contention is
// retried with capped backoff; anything else is translated once and
// returned.
type store struct {
	pool  *db.Pool
	retry db.RetryPolicy
}

func (s *store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	attempts := s.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			metrics.BusyRetries.Inc()
			if err := s.retry.Wait(ctx, attempt-1); err != nil {
				return fmt.Errorf("aborted while backing off: %w", err)
			}
		}
		err := s.runTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !db.IsBusy(err) {
			return translate(err)
		}
		lastErr = err
	}
	return fmt.Errorf("still locked after %d attempts: %v: %w", attempts, lastErr, models.ErrUnavailable)
}

// runTx acquires a lease, runs fn inside a transaction and commits. The
// deferred pair guarantees the lease goes back even when fn panics, and a
// connection poisoned by a corruption error is discarded, not recycled.
func (s *store) runTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if db.IsCorrupt(err) {
			lease.Damage()
		}
		lease.Release()
	}()

	tx, err := lease.Conn().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

// translate maps raw driver failures onto the shared error kinds. Errors
// that already carry a kind, and plain sql errors handled by the caller,
// pass through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch {
		case se.ExtendedCode == sqlite3.ErrConstraintUnique,
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("already exists: %w", models.ErrConflict)
		case se.Code == sqlite3.ErrConstraint:
			return fmt.Errorf("constraint violated: %w", models.ErrInvalidInput)
		case se.Code == sqlite3.ErrCorrupt, se.Code == sqlite3.ErrNotADB:
			return fmt.Errorf("store corrupted: %w", models.ErrFatal)
		case se.Code == sqlite3.ErrIoErr, se.Code == sqlite3.ErrFull:
			return fmt.Errorf("store unavailable: %w", models.ErrUnavailable)
		}
	}
	return err
}

// staleOrMissing explains why a conditional update matched nothing: the
// row exists at another version (the caller lost the race) or it is gone.
// Must run inside the same transaction as the update it explains.
func staleOrMissing(ctx context.Context, tx *sql.Tx, entity string, existsQuery string, args ...any) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, existsQuery, args...).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s changed since last read: %w", entity, models.ErrConflict)
	}
	return fmt.Errorf("%s: %w", entity, models.ErrNotFound)
}

// rowScanner lets scan helpers take both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
