package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cooooin/harmony/internal/metrics"
	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
	"github.com/cooooin/harmony/internal/worker"
)

// Auditor writes audit events through the worker pool so the request path
// never waits on the audit table. A failed write is logged, not surfaced.
type Auditor struct {
	events repo.AuditEvents
	wp     *worker.Pool
	log    *slog.Logger
}

func NewAuditor(events repo.AuditEvents, wp *worker.Pool, log *slog.Logger) *Auditor {
	return &Auditor{events: events, wp: wp, log: log}
}

func (a *Auditor) Record(entityType string, entityID int64, action string, actor int64) {
	a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ev := models.AuditEvent{
			EntityType: entityType,
			EntityID:   entityID,
			Action:     action,
			Actor:      actor,
		}
		if err := a.events.Create(ctx, ev); err != nil {
			a.log.Error("audit write failed",
				"entity", entityType, "id", entityID, "action", action, "err", err)
		}
	})
}

func observe(entity, action string, err error) {
	if err != nil {
		metrics.OperationsFailed.WithLabelValues(entity, action).Inc()
		return
	}
	metrics.OperationsTotal.WithLabelValues(entity, action).Inc()
}
