package services

import (
	"context"

	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
)

type TransactionService struct {
	txns    repo.Transactions
	auditor *Auditor
}

func NewTransactionService(txns repo.Transactions, auditor *Auditor) *TransactionService {
	return &TransactionService{txns: txns, auditor: auditor}
}

func (s *TransactionService) Create(ctx context.Context, owner int64, t models.Transaction) (models.Transaction, error) {
	out, err := s.txns.Create(ctx, owner, t)
	observe("transaction", "create", err)
	if err != nil {
		return models.Transaction{}, err
	}
	s.auditor.Record("transaction", out.ID, "create", owner)
	return out, nil
}

func (s *TransactionService) Get(ctx context.Context, id, tradeID, owner int64) (models.Transaction, error) {
	return s.txns.Get(ctx, id, tradeID, owner)
}

func (s *TransactionService) List(ctx context.Context, tradeID, owner int64, limit, offset int) ([]models.Transaction, int64, error) {
	return s.txns.List(ctx, tradeID, owner, limit, offset)
}

func (s *TransactionService) Update(ctx context.Context, id, tradeID, owner int64, ch repo.TransactionChanges, expectedVersion int64) (models.Transaction, error) {
	out, err := s.txns.Update(ctx, id, tradeID, owner, ch, expectedVersion)
	observe("transaction", "update", err)
	if err != nil {
		return models.Transaction{}, err
	}
	s.auditor.Record("transaction", id, "update", owner)
	return out, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, tradeID, owner int64) (models.Transaction, error) {
	out, err := s.txns.Delete(ctx, id, tradeID, owner)
	observe("transaction", "delete", err)
	if err != nil {
		return models.Transaction{}, err
	}
	s.auditor.Record("transaction", id, "delete", owner)
	return out, nil
}
