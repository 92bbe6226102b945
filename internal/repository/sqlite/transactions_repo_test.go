package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooooin/harmony/internal/models"
	"github.com/cooooin/harmony/internal/repository"
)

func seedTradeTree(t *testing.T, repos Repositories) (models.Person, models.Trade) {
	t.Helper()
	p := seedPerson(t, repos, "ada")
	base := seedObject(t, repos, p.ID, "USD")
	quote := seedObject(t, repos, p.ID, "AAPL")
	return p, seedTrade(t, repos, p.ID, base.ID, quote.ID)
}

func mustQuantity(t *testing.T, s string) models.Quantity {
	t.Helper()
	q, err := models.NewQuantity(s)
	require.NoError(t, err)
	return q
}

func TestTransactionsRepo_StaleWriterLosesCleanly(t *testing.T) {
	_, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)

	created, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
		TradeID:       tr.ID,
		Quantity:      mustQuantity(t, "19.99"),
		IsBaseToQuote: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)
	assert.Equal(t, "19.99", created.Quantity.String())

	q2 := mustQuantity(t, "24.99")
	updated, err := repos.Transactions.Update(ctx, created.ID, tr.ID, p.ID,
		repository.TransactionChanges{Quantity: &q2}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "24.99", updated.Quantity.String())

	// A writer still holding version 1 must lose without touching the row.
	q3 := mustQuantity(t, "1.00")
	_, err = repos.Transactions.Update(ctx, created.ID, tr.ID, p.ID,
		repository.TransactionChanges{Quantity: &q3}, 1)
	require.ErrorIs(t, err, models.ErrConflict)

	got, err := repos.Transactions.Get(ctx, created.ID, tr.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, "24.99", got.Quantity.String())
}

func TestTransactionsRepo_QuantityStoredAsExactText(t *testing.T) {
	pool, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)

	created, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
		TradeID:       tr.ID,
		Quantity:      mustQuantity(t, "0.000000000000000001"),
		IsBaseToQuote: false,
	})
	require.NoError(t, err)

	lease, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer lease.Release()
	var typ, raw string
	require.NoError(t, lease.Conn().QueryRowContext(ctx,
		`SELECT typeof(quantity), quantity FROM finance_trade_transaction WHERE id = ?`,
		created.ID).Scan(&typ, &raw))
	assert.Equal(t, "text", typ)
	assert.Equal(t, "0.000000000000000001", raw)

	got, err := repos.Transactions.Get(ctx, created.ID, tr.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(created.Quantity))
}

func TestTransactionsRepo_OccurrenceRoundTripsUTC(t *testing.T) {
	_, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)

	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	local := time.Date(2026, 1, 15, 17, 30, 0, 0, shanghai)

	created, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
		TradeID:      tr.ID,
		Quantity:     mustQuantity(t, "1"),
		OccurrenceAt: local,
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, created.OccurrenceAt.Location())
	assert.True(t, created.OccurrenceAt.Equal(local), "same instant, expressed in UTC")

	got, err := repos.Transactions.Get(ctx, created.ID, tr.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, got.OccurrenceAt.Equal(local))
	assert.Equal(t, time.UTC, got.OccurrenceAt.Location())
}

func TestTransactionsRepo_OccurrenceDefaultsToNow(t *testing.T) {
	_, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)

	created, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
		TradeID:  tr.ID,
		Quantity: mustQuantity(t, "1"),
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), created.OccurrenceAt, 5*time.Second)
}

func TestTransactionsRepo_ForeignTradeIsInvisible(t *testing.T) {
	_, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)
	bob := seedPerson(t, repos, "bob")

	created, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
		TradeID:  tr.ID,
		Quantity: mustQuantity(t, "5"),
	})
	require.NoError(t, err)

	_, err = repos.Transactions.Create(ctx, bob.ID, models.Transaction{
		TradeID:  tr.ID,
		Quantity: mustQuantity(t, "5"),
	})
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = repos.Transactions.Get(ctx, created.ID, tr.ID, bob.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	_, _, err = repos.Transactions.List(ctx, tr.ID, bob.ID, 10, 0)
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = repos.Transactions.Delete(ctx, created.ID, tr.ID, bob.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestTransactionsRepo_UpdatePartial(t *testing.T) {
	_, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)

	created, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
		TradeID:       tr.ID,
		Quantity:      mustQuantity(t, "10"),
		IsBaseToQuote: true,
		Remark:        strPtr("opening"),
	})
	require.NoError(t, err)

	got, err := repos.Transactions.Update(ctx, created.ID, tr.ID, p.ID,
		repository.TransactionChanges{IsBaseToQuote: boolPtr(false)}, 1)
	require.NoError(t, err)
	assert.False(t, got.IsBaseToQuote)
	assert.Equal(t, "10", got.Quantity.String())
	require.NotNil(t, got.Remark)
	assert.Equal(t, "opening", *got.Remark)
	assert.True(t, got.OccurrenceAt.Equal(created.OccurrenceAt))
}

func TestTransactionsRepo_ListPaginates(t *testing.T) {
	_, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)

	for i := 1; i <= 3; i++ {
		_, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
			TradeID:  tr.ID,
			Quantity: mustQuantity(t, "1"),
		})
		require.NoError(t, err)
	}

	page, total, err := repos.Transactions.List(ctx, tr.ID, p.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	page, total, err = repos.Transactions.List(ctx, tr.ID, p.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

func TestTransactionsRepo_DeleteReturnsRow(t *testing.T) {
	_, repos := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTradeTree(t, repos)

	created, err := repos.Transactions.Create(ctx, p.ID, models.Transaction{
		TradeID:  tr.ID,
		Quantity: mustQuantity(t, "7.50"),
	})
	require.NoError(t, err)

	deleted, err := repos.Transactions.Delete(ctx, created.ID, tr.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "7.5", deleted.Quantity.String())

	_, err = repos.Transactions.Delete(ctx, created.ID, tr.ID, p.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}
