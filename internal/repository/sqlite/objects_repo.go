package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cooooin/harmony/internal/models"
	"github.com/cooooin/harmony/internal/repository"
)

type objectsRepo struct{ *store }

const objectCols = `id, owner, symbol, alias, remark, version, created_at, updated_at`

func scanObject(row rowScanner, o *models.Object) error {
	return row.Scan(&o.ID, &o.Owner, &o.Symbol, &o.Alias, &o.Remark, &o.Version, &o.CreatedAt, &o.UpdatedAt)
}

func (r *objectsRepo) Create(ctx context.Context, o models.Object) (models.Object, error) {
	var out models.Object
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
INSERT INTO finance_object (owner, symbol, alias, remark)
VALUES (?, ?, ?, ?)
RETURNING `+objectCols,
			o.Owner, o.Symbol, o.Alias, o.Remark)
		return scanObject(row, &out)
	})
	return out, err
}

func (r *objectsRepo) Get(ctx context.Context, id, owner int64) (models.Object, error) {
	var out models.Object
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+objectCols+` FROM finance_object WHERE id = ? AND owner = ?`, id, owner)
		if err := scanObject(row, &out); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("object %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return out, err
}

func (r *objectsRepo) List(ctx context.Context, owner int64, limit, offset int) ([]models.Object, int64, error) {
	var (
		out   []models.Object
		total int64
	)
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		out = nil
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM finance_object WHERE owner = ?`, owner).Scan(&total); err != nil {
			return err
		}
		rows, err := tx.QueryContext(ctx, `
SELECT `+objectCols+`
  FROM finance_object
 WHERE owner = ?
 ORDER BY id
 LIMIT ? OFFSET ?`, owner, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var o models.Object
			if err := scanObject(rows, &o); err != nil {
				return err
			}
			out = append(out, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *objectsRepo) Update(ctx context.Context, id, owner int64, ch repository.ObjectChanges, expectedVersion int64) (models.Object, error) {
	var out models.Object
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
UPDATE finance_object
   SET symbol     = COALESCE(?, symbol),
       alias      = COALESCE(?, alias),
       remark     = COALESCE(?, remark),
       version    = version + 1,
       updated_at = CURRENT_TIMESTAMP
 WHERE id = ? AND owner = ? AND version = ?
RETURNING `+objectCols,
			ch.Symbol, ch.Alias, ch.Remark, id, owner, expectedVersion)
		err := scanObject(row, &out)
		if errors.Is(err, sql.ErrNoRows) {
			return staleOrMissing(ctx, tx, "object",
				`SELECT EXISTS(SELECT 1 FROM finance_object WHERE id = ? AND owner = ?)`, id, owner)
		}
		return err
	})
	return out, err
}

func (r *objectsRepo) Delete(ctx context.Context, id, owner int64) (models.Object, error) {
	var out models.Object
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
DELETE FROM finance_object
 WHERE id = ? AND owner = ?
RETURNING `+objectCols, id, owner)
		if err := scanObject(row, &out); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("object %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return out, err
}
