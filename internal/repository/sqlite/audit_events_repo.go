package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/cooooin/harmony/internal/models"
)

type auditEventsRepo struct{ *store }

func (r *auditEventsRepo) Create(ctx context.Context, ev models.AuditEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO audit_event (id, entity_type, entity_id, action, actor)
VALUES (?, ?, ?, ?, ?)`,
			ev.ID, ev.EntityType, ev.EntityID, ev.Action, ev.Actor)
		return err
	})
}

func (r *auditEventsRepo) ListByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]models.AuditEvent, error) {
	var out []models.AuditEvent
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		out = nil
		rows, err := tx.QueryContext(ctx, `
SELECT id, entity_type, entity_id, action, actor, created_at
  FROM audit_event
 WHERE entity_type = ? AND entity_id = ?
 ORDER BY created_at DESC
 LIMIT ?`, entityType, entityID, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var ev models.AuditEvent
			if err := rows.Scan(&ev.ID, &ev.EntityType, &ev.EntityID, &ev.Action, &ev.Actor, &ev.CreatedAt); err != nil {
				return err
			}
			out = append(out, ev)
		}
		return rows.Err()
	})
	return out, err
}
