package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooooin/harmony/internal/db"
	"github.com/cooooin/harmony/internal/models"
)

// newContendedStore keeps SQLite's own lock wait short so busy errors
// surface fast enough to drive the retry loop in a test.
func newContendedStore(t *testing.T, attempts int) (*db.Pool, Repositories) {
	t.Helper()
	return newStoreWith(t,
		db.Config{MaxConns: 4, BusyTimeout: 25 * time.Millisecond},
		db.RetryPolicy{
			MaxAttempts: attempts,
			BaseDelay:   time.Millisecond,
			MaxDelay:    2 * time.Millisecond,
			Sleep:       func(time.Duration) {},
		})
}

// holdWriteLock opens a transaction and leaves a write pending on it, so
// every other writer sees the database as busy until release is called.
func holdWriteLock(t *testing.T, pool *db.Pool, owner int64) (release func()) {
	t.Helper()
	ctx := context.Background()
	lease, err := pool.Acquire(ctx)
	require.NoError(t, err)
	blocker, err := lease.Conn().BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = blocker.ExecContext(ctx,
		`INSERT INTO finance_object (owner, symbol) VALUES (?, 'HOLD')`, owner)
	require.NoError(t, err)
	return func() {
		_ = blocker.Rollback()
		lease.Release()
	}
}

func TestStore_BusyRetryExhaustionBecomesUnavailable(t *testing.T) {
	pool, repos := newContendedStore(t, 3)
	ctx := context.Background()
	ada := seedPerson(t, repos, "ada")

	release := holdWriteLock(t, pool, ada.ID)
	defer release()

	_, err := repos.Objects.Create(ctx, models.Object{Owner: ada.ID, Symbol: "USD"})
	require.ErrorIs(t, err, models.ErrUnavailable)
	assert.Contains(t, err.Error(), "attempts")
}

func TestStore_BusyRetryRecoversOnceLockReleases(t *testing.T) {
	pool, repos := newContendedStore(t, 20)
	ctx := context.Background()
	ada := seedPerson(t, repos, "ada")

	release := holdWriteLock(t, pool, ada.ID)
	go func() {
		time.Sleep(60 * time.Millisecond)
		release()
	}()

	o, err := repos.Objects.Create(ctx, models.Object{Owner: ada.ID, Symbol: "USD"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.Version)
}

func TestStore_ExhaustedPoolTimesOutInsteadOfHanging(t *testing.T) {
	pool, repos := newStoreWith(t,
		db.Config{MaxConns: 1, AcquireTimeout: 50 * time.Millisecond},
		db.DefaultRetryPolicy())
	ctx := context.Background()

	lease, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer lease.Release()

	start := time.Now()
	_, err = repos.Persons.GetByID(ctx, 1)
	require.ErrorIs(t, err, models.ErrPoolTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestStore_CanceledContextLeavesPoolIntact(t *testing.T) {
	pool, repos := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repos.Persons.GetByID(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, 4, pool.Available(), "aborted operation must hand its lease back")
}

func TestStore_PanicStillReleasesLease(t *testing.T) {
	pool, _ := newTestStore(t)
	s := &store{pool: pool, retry: db.DefaultRetryPolicy()}

	require.Panics(t, func() {
		_ = s.withTx(context.Background(), func(tx *sql.Tx) error { panic("boom") })
	})
	assert.Equal(t, 4, pool.Available())
}

func TestStore_RollsBackOnError(t *testing.T) {
	pool, repos := newTestStore(t)
	ctx := context.Background()
	ada := seedPerson(t, repos, "ada")

	errBoom := errors.New("synthetic failure")
	s := &store{pool: pool, retry: db.DefaultRetryPolicy()}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO finance_object (owner, symbol) VALUES (?, 'GHOST')`, ada.ID)
		require.NoError(t, err)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, total, err := repos.Objects.List(ctx, ada.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total, "failed transaction must leave no partial rows")
}
