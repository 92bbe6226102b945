package handlers

import (
	"errors"
	"net/http"

	"github.com/cooooin/harmony/internal/api/httpx"
	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
	"github.com/cooooin/harmony/internal/services"
)

type TradeHandler struct {
	Svc *services.TradeService
}

type createTradeReq struct {
	BaseObjectID  int64   `json:"base_object_id" validate:"required,min=1"`
	QuoteObjectID int64   `json:"quote_object_id" validate:"required,min=1"`
	Alias         *string `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark        *string `json:"remark" validate:"omitempty,min=1,max=4096"`
}

type updateTradeReq struct {
	BaseObjectID    *int64  `json:"base_object_id" validate:"omitempty,min=1"`
	QuoteObjectID   *int64  `json:"quote_object_id" validate:"omitempty,min=1"`
	Alias           *string `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark          *string `json:"remark" validate:"omitempty,min=1,max=4096"`
	ExpectedVersion int64   `json:"expected_version" validate:"required,min=1"`
}

type tradeListResp struct {
	Trades []models.Trade `json:"trades"`
	Total  int64          `json:"total"`
}

func (h *TradeHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	var req createTradeReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	t, err := h.Svc.Create(r.Context(), models.Trade{
		Owner:         owner,
		BaseObjectID:  req.BaseObjectID,
		QuoteObjectID: req.QuoteObjectID,
		Alias:         req.Alias,
		Remark:        req.Remark,
	})
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}

func (h *TradeHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	id, ok, err := filterID(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	if ok {
		t, err := h.Svc.Get(r.Context(), id, owner)
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusOK, tradeListResp{Trades: []models.Trade{}})
			return
		}
		if err != nil {
			httpx.WriteErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, tradeListResp{Trades: []models.Trade{t}, Total: 1})
		return
	}
	limit, offset, err := pageWindow(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	items, total, err := h.Svc.List(r.Context(), owner, limit, offset)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	if items == nil {
		items = []models.Trade{}
	}
	httpx.WriteJSON(w, http.StatusOK, tradeListResp{Trades: items, Total: total})
}

func (h *TradeHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	var req updateTradeReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	ch := repo.TradeChanges{
		BaseObjectID:  req.BaseObjectID,
		QuoteObjectID: req.QuoteObjectID,
		Alias:         req.Alias,
		Remark:        req.Remark,
	}
	t, err := h.Svc.Update(r.Context(), id, owner, ch, req.ExpectedVersion)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *TradeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	t, err := h.Svc.Delete(r.Context(), id, owner)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}
