package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cooooin/harmony/internal/models"
	"github.com/cooooin/harmony/internal/repository"
)

type personsRepo struct{ *store }

const personCols = `id, nickname, password_hash, version, created_at, updated_at`

func scanPerson(row rowScanner, p *models.Person) error {
	return row.Scan(&p.ID, &p.Nickname, &p.PasswordHash, &p.Version, &p.CreatedAt, &p.UpdatedAt)
}

func (r *personsRepo) Create(ctx context.Context, nickname, passwordHash string) (models.Person, error) {
	var p models.Person
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
INSERT INTO person (nickname, password_hash)
VALUES (?, ?)
RETURNING `+personCols, nickname, passwordHash)
		return scanPerson(row, &p)
	})
	if errors.Is(err, models.ErrConflict) {
		return models.Person{}, fmt.Errorf("nickname %q is taken: %w", nickname, models.ErrConflict)
	}
	return p, err
}

func (r *personsRepo) GetByID(ctx context.Context, id int64) (models.Person, error) {
	var p models.Person
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+personCols+` FROM person WHERE id = ?`, id)
		if err := scanPerson(row, &p); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("person %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return p, err
}

func (r *personsRepo) GetByNickname(ctx context.Context, nickname string) (models.Person, error) {
	var p models.Person
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+personCols+` FROM person WHERE nickname = ?`, nickname)
		if err := scanPerson(row, &p); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("person %q: %w", nickname, models.ErrNotFound)
			}
			return err
		}
		return nil
	})
	return p, err
}

func (r *personsRepo) Update(ctx context.Context, id int64, ch repository.PersonChanges, expectedVersion int64) (models.Person, error) {
	var p models.Person
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
UPDATE person
   SET nickname      = COALESCE(?, nickname),
       password_hash = COALESCE(?, password_hash),
       version       = version + 1,
       updated_at    = CURRENT_TIMESTAMP
 WHERE id = ? AND version = ?
RETURNING `+personCols,
			ch.Nickname, ch.PasswordHash, id, expectedVersion)
		err := scanPerson(row, &p)
		if errors.Is(err, sql.ErrNoRows) {
			return staleOrMissing(ctx, tx, "person",
				`SELECT EXISTS(SELECT 1 FROM person WHERE id = ?)`, id)
		}
		return err
	})
	return p, err
}
