package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cooooin/harmony/internal/models"
	"github.com/cooooin/harmony/internal/repository"
)

type transactionsRepo struct{ *store }

const transactionCols = `id, trade_id, quantity, is_base_to_quote, alias, remark, occurrence_at, version, created_at, updated_at`

func scanTransaction(row rowScanner, t *models.Transaction) error {
	return row.Scan(&t.ID, &t.TradeID, &t.Quantity, &t.IsBaseToQuote, &t.Alias, &t.Remark,
		&t.OccurrenceAt, &t.Version, &t.CreatedAt, &t.UpdatedAt)
}

// tradeOwned gates every transaction operation on the parent trade
// belonging to the caller, inside the operation's own store transaction.
func tradeOwned(ctx context.Context, tx *sql.Tx, tradeID, owner int64) error {
	var ok bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM finance_trade WHERE id = ? AND owner = ?)`, tradeID, owner).Scan(&ok)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("trade %d: %w", tradeID, models.ErrNotFound)
	}
	return nil
}

func (r *transactionsRepo) Create(ctx context.Context, owner int64, t models.Transaction) (models.Transaction, error) {
	// Timestamps are stored in UTC; a zero occurrence means "now".
	var occurrence any
	if !t.OccurrenceAt.IsZero() {
		occurrence = t.OccurrenceAt.UTC()
	}

	var out models.Transaction
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tradeOwned(ctx, tx, t.TradeID, owner); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, `
INSERT INTO finance_trade_transaction (trade_id, quantity, is_base_to_quote, alias, remark, occurrence_at)
VALUES (?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
RETURNING `+transactionCols,
			t.TradeID, t.Quantity, t.IsBaseToQuote, t.Alias, t.Remark, occurrence)
		return scanTransaction(row, &out)
	})
	return out, err
}

func (r *transactionsRepo) Get(ctx context.Context, id, tradeID, owner int64) (models.Transaction, error) {
	var out models.Transaction
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tradeOwned(ctx, tx, tradeID, owner); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx,
			`SELECT `+transactionCols+` FROM finance_trade_transaction WHERE id = ? AND trade_id = ?`, id, tradeID)
		if err := scanTransaction(row, &out); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("transaction %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return out, err
}

func (r *transactionsRepo) List(ctx context.Context, tradeID, owner int64, limit, offset int) ([]models.Transaction, int64, error) {
	var (
		out   []models.Transaction
		total int64
	)
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		out = nil
		if err := tradeOwned(ctx, tx, tradeID, owner); err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM finance_trade_transaction WHERE trade_id = ?`, tradeID).Scan(&total); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, `
SELECT `+transactionCols+`
  FROM finance_trade_transaction
 WHERE trade_id = ?
 ORDER BY id
 LIMIT ? OFFSET ?`, tradeID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var t models.Transaction
			if err := scanTransaction(rows, &t); err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *transactionsRepo) Update(ctx context.Context, id, tradeID, owner int64, ch repository.TransactionChanges, expectedVersion int64) (models.Transaction, error) {
	var occurrence any
	if ch.OccurrenceAt != nil {
		occurrence = ch.OccurrenceAt.UTC()
	}

	var out models.Transaction
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tradeOwned(ctx, tx, tradeID, owner); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, `
UPDATE finance_trade_transaction
   SET quantity         = COALESCE(?, quantity),
       is_base_to_quote = COALESCE(?, is_base_to_quote),
       alias            = COALESCE(?, alias),
       remark           = COALESCE(?, remark),
       occurrence_at    = COALESCE(?, occurrence_at),
       version          = version + 1,
       updated_at       = CURRENT_TIMESTAMP
 WHERE id = ? AND trade_id = ? AND version = ?
RETURNING `+transactionCols,
			ch.Quantity, ch.IsBaseToQuote, ch.Alias, ch.Remark, occurrence, id, tradeID, expectedVersion)
		err := scanTransaction(row, &out)
		if errors.Is(err, sql.ErrNoRows) {
			return staleOrMissing(ctx, tx, "transaction",
				`SELECT EXISTS(SELECT 1 FROM finance_trade_transaction WHERE id = ? AND trade_id = ?)`, id, tradeID)
		}
		return err
	})
	return out, err
}

func (r *transactionsRepo) Delete(ctx context.Context, id, tradeID, owner int64) (models.Transaction, error) {
	var out models.Transaction
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := tradeOwned(ctx, tx, tradeID, owner); err != nil {
			return err
		}
		row := tx.QueryRowContext(ctx, `
DELETE FROM finance_trade_transaction
 WHERE id = ? AND trade_id = ?
RETURNING `+transactionCols, id, tradeID)
		if err := scanTransaction(row, &out); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("transaction %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return out, err
}
