package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cooooin/harmony/internal/models"
	"github.com/cooooin/harmony/internal/repository"
)

type tradesRepo struct{ *store }

const tradeCols = `id, owner, base_object_id, quote_object_id, alias, remark, version, created_at, updated_at`

func scanTrade(row rowScanner, t *models.Trade) error {
	return row.Scan(&t.ID, &t.Owner, &t.BaseObjectID, &t.QuoteObjectID, &t.Alias, &t.Remark, &t.Version, &t.CreatedAt, &t.UpdatedAt)
}

// ownsObject rejects trades built on someone else's objects. A bare
// foreign key cannot check ownership, only existence.
func ownsObject(ctx context.Context, tx *sql.Tx, objectID, owner int64) error {
	var ok bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM finance_object WHERE id = ? AND owner = ?)`, objectID, owner).Scan(&ok)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("object %d is not yours to trade: %w", objectID, models.ErrInvalidInput)
	}
	return nil
}

func (r *tradesRepo) Create(ctx context.Context, t models.Trade) (models.Trade, error) {
	var out models.Trade
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		for _, objectID := range []int64{t.BaseObjectID, t.QuoteObjectID} {
			if err := ownsObject(ctx, tx, objectID, t.Owner); err != nil {
				return err
			}
		}
		row := tx.QueryRowContext(ctx, `
INSERT INTO finance_trade (owner, base_object_id, quote_object_id, alias, remark)
VALUES (?, ?, ?, ?, ?)
RETURNING `+tradeCols,
			t.Owner, t.BaseObjectID, t.QuoteObjectID, t.Alias, t.Remark)
		return scanTrade(row, &out)
	})
	return out, err
}

func (r *tradesRepo) Get(ctx context.Context, id, owner int64) (models.Trade, error) {
	var out models.Trade
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+tradeCols+` FROM finance_trade WHERE id = ? AND owner = ?`, id, owner)
		if err := scanTrade(row, &out); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("trade %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return out, err
}

func (r *tradesRepo) List(ctx context.Context, owner int64, limit, offset int) ([]models.Trade, int64, error) {
	var (
		out   []models.Trade
		total int64
	)
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		out = nil
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM finance_trade WHERE owner = ?`, owner).Scan(&total); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, `
SELECT `+tradeCols+`
  FROM finance_trade
 WHERE owner = ?
 ORDER BY id
 LIMIT ? OFFSET ?`, owner, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var t models.Trade
			if err := scanTrade(rows, &t); err != nil {
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

func (r *tradesRepo) Update(ctx context.Context, id, owner int64, ch repository.TradeChanges, expectedVersion int64) (models.Trade, error) {
	var out models.Trade
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if ch.BaseObjectID != nil {
			if err := ownsObject(ctx, tx, *ch.BaseObjectID, owner); err != nil {
				return err
			}
		}
		if ch.QuoteObjectID != nil {
			if err := ownsObject(ctx, tx, *ch.QuoteObjectID, owner); err != nil {
				return err
			}
		}
		row := tx.QueryRowContext(ctx, `
UPDATE finance_trade
   SET base_object_id  = COALESCE(?, base_object_id),
       quote_object_id = COALESCE(?, quote_object_id),
       alias           = COALESCE(?, alias),
       remark          = COALESCE(?, remark),
       version         = version + 1,
       updated_at      = CURRENT_TIMESTAMP
 WHERE id = ? AND owner = ? AND version = ?
RETURNING `+tradeCols,
			ch.BaseObjectID, ch.QuoteObjectID, ch.Alias, ch.Remark, id, owner, expectedVersion)
		err := scanTrade(row, &out)
		if errors.Is(err, sql.ErrNoRows) {
			return staleOrMissing(ctx, tx, "trade",
				`SELECT EXISTS(SELECT 1 FROM finance_trade WHERE id = ? AND owner = ?)`, id, owner)
		}
		return err
	})
	return out, err
}

func (r *tradesRepo) Delete(ctx context.Context, id, owner int64) (models.Trade, error) {
	var out models.Trade
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
DELETE FROM finance_trade
 WHERE id = ? AND owner = ?
RETURNING `+tradeCols, id, owner)
		if err := scanTrade(row, &out); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("trade %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return out, err
}
