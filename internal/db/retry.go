package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// RetryPolicy bounds how often a transaction is re-run when SQLite
// reports lock contention. Delays double from BaseDelay up to MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Sleep replaces the real wait between attempts. Tests inject a fake
	// to keep retry paths deterministic. Nil means a ctx-aware timer.
	Sleep func(time.Duration)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    250 * time.Millisecond,
	}
}

// Backoff returns the delay before retry number attempt, counting from 0.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt > 16 {
		return p.MaxDelay
	}
	d := p.BaseDelay * time.Duration(1<<uint(attempt))
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	return d
}

// Wait sleeps the attempt's backoff, aborting early if ctx is done.
func (p RetryPolicy) Wait(ctx context.Context, attempt int) error {
	d := p.Backoff(attempt)
	if p.Sleep != nil {
		p.Sleep(d)
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsBusy reports whether err is transient lock contention, the class of
// failure a fresh attempt can succeed on.
func IsBusy(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}

// IsCorrupt reports failures that poison the connection itself rather
// than the statement. The holding lease must be discarded.
func IsCorrupt(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrCorrupt || se.Code == sqlite3.ErrNotADB
	}
	return errors.Is(err, driver.ErrBadConn)
}
