package repository

import (
	"context"
	"time"

	"github.com/cooooin/harmony/internal/models"
)

// Update methods take the caller's last observed version. A stale version
// loses with models.ErrConflict and changes nothing; a missing row is
// models.ErrNotFound. Nil fields in a Changes struct keep current values.

type Persons interface {
	Create(ctx context.Context, nickname, passwordHash string) (models.Person, error)
	GetByID(ctx context.Context, id int64) (models.Person, error)
	GetByNickname(ctx context.Context, nickname string) (models.Person, error)
	Update(ctx context.Context, id int64, ch PersonChanges, expectedVersion int64) (models.Person, error)
}

type Objects interface {
	Create(ctx context.Context, o models.Object) (models.Object, error)
	Get(ctx context.Context, id, owner int64) (models.Object, error)
	List(ctx context.Context, owner int64, limit, offset int) ([]models.Object, int64, error)
	Update(ctx context.Context, id, owner int64, ch ObjectChanges, expectedVersion int64) (models.Object, error)
	Delete(ctx context.Context, id, owner int64) (models.Object, error)
}

type Trades interface {
	Create(ctx context.Context, t models.Trade) (models.Trade, error)
	Get(ctx context.Context, id, owner int64) (models.Trade, error)
	List(ctx context.Context, owner int64, limit, offset int) ([]models.Trade, int64, error)
	Update(ctx context.Context, id, owner int64, ch TradeChanges, expectedVersion int64) (models.Trade, error)
	Delete(ctx context.Context, id, owner int64) (models.Trade, error)
}

// Transactions are reached through their trade, so every method takes the
// owner and verifies the trade belongs to them inside the same store
// transaction as the operation itself.
type Transactions interface {
	Create(ctx context.Context, owner int64, t models.Transaction) (models.Transaction, error)
	Get(ctx context.Context, id, tradeID, owner int64) (models.Transaction, error)
	List(ctx context.Context, tradeID, owner int64, limit, offset int) ([]models.Transaction, int64, error)
	Update(ctx context.Context, id, tradeID, owner int64, ch TransactionChanges, expectedVersion int64) (models.Transaction, error)
	Delete(ctx context.Context, id, tradeID, owner int64) (models.Transaction, error)
}

type AuditEvents interface {
	Create(ctx context.Context, ev models.AuditEvent) error
	ListByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]models.AuditEvent, error)
}

type PersonChanges struct {
	Nickname     *string
	PasswordHash *string
}

type ObjectChanges struct {
	Symbol *string
	Alias  *string
	Remark *string
}

type TradeChanges struct {
	BaseObjectID  *int64
	QuoteObjectID *int64
	Alias         *string
	Remark        *string
}

type TransactionChanges struct {
	Quantity      *models.Quantity
	IsBaseToQuote *bool
	Alias         *string
	Remark        *string
	OccurrenceAt  *time.Time
}
