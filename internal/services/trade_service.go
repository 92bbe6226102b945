package services

import (
	"context"

	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
)

type TradeService struct {
	trades  repo.Trades
	auditor *Auditor
}

func NewTradeService(trades repo.Trades, auditor *Auditor) *TradeService {
	return &TradeService{trades: trades, auditor: auditor}
}

func (s *TradeService) Create(ctx context.Context, t models.Trade) (models.Trade, error) {
	out, err := s.trades.Create(ctx, t)
	observe("trade", "create", err)
	if err != nil {
		return models.Trade{}, err
	}
	s.auditor.Record("trade", out.ID, "create", out.Owner)
	return out, nil
}

func (s *TradeService) Get(ctx context.Context, id, owner int64) (models.Trade, error) {
	return s.trades.Get(ctx, id, owner)
}

func (s *TradeService) List(ctx context.Context, owner int64, limit, offset int) ([]models.Trade, int64, error) {
	return s.trades.List(ctx, owner, limit, offset)
}

func (s *TradeService) Update(ctx context.Context, id, owner int64, ch repo.TradeChanges, expectedVersion int64) (models.Trade, error) {
	out, err := s.trades.Update(ctx, id, owner, ch, expectedVersion)
	observe("trade", "update", err)
	if err != nil {
		return models.Trade{}, err
	}
	s.auditor.Record("trade", id, "update", owner)
	return out, nil
}

func (s *TradeService) Delete(ctx context.Context, id, owner int64) (models.Trade, error) {
	out, err := s.trades.Delete(ctx, id, owner)
	observe("trade", "delete", err)
	if err != nil {
		return models.Trade{}, err
	}
	s.auditor.Record("trade", id, "delete", owner)
	return out, nil
}
