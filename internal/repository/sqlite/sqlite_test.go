package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cooooin/harmony/internal/db"
	"github.com/cooooin/harmony/internal/models"
)

func newStoreWith(t *testing.T, cfg db.Config, retry db.RetryPolicy) (*db.Pool, Repositories) {
	t.Helper()
	if cfg.Path == "" {
		cfg.Path = filepath.Join(t.TempDir(), "harmony.db")
	}
	pool, err := db.NewPool(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, db.RunMigrations(context.Background(), pool))
	return pool, NewRepositories(pool, retry)
}

func newTestStore(t *testing.T) (*db.Pool, Repositories) {
	t.Helper()
	return newStoreWith(t, db.Config{MaxConns: 4}, db.RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	})
}

func seedPerson(t *testing.T, repos Repositories, nickname string) models.Person {
	t.Helper()
	p, err := repos.Persons.Create(context.Background(), nickname, "hash:"+nickname)
	require.NoError(t, err)
	return p
}

func seedObject(t *testing.T, repos Repositories, owner int64, symbol string) models.Object {
	t.Helper()
	o, err := repos.Objects.Create(context.Background(), models.Object{Owner: owner, Symbol: symbol})
	require.NoError(t, err)
	return o
}

func seedTrade(t *testing.T, repos Repositories, owner, base, quote int64) models.Trade {
	t.Helper()
	tr, err := repos.Trades.Create(context.Background(), models.Trade{
		Owner:         owner,
		BaseObjectID:  base,
		QuoteObjectID: quote,
	})
	require.NoError(t, err)
	return tr
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func boolPtr(b bool) *bool { return &b }
