package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cooooin/harmony/internal/api/httpx"
	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
	"github.com/cooooin/harmony/internal/services"
)

type TransactionHandler struct {
	Svc *services.TransactionService
}

type createTransactionReq struct {
	Quantity      string     `json:"quantity" validate:"required,decimal"`
	IsBaseToQuote *bool      `json:"is_base_to_quote" validate:"required"`
	Alias         *string    `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark        *string    `json:"remark" validate:"omitempty,min=1,max=4096"`
	OccurrenceAt  *time.Time `json:"occurrence_at"`
}

type updateTransactionReq struct {
	Quantity        *string    `json:"quantity" validate:"omitempty,decimal"`
	IsBaseToQuote   *bool      `json:"is_base_to_quote"`
	Alias           *string    `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark          *string    `json:"remark" validate:"omitempty,min=1,max=4096"`
	OccurrenceAt    *time.Time `json:"occurrence_at"`
	ExpectedVersion int64      `json:"expected_version" validate:"required,min=1"`
}

type transactionListResp struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	tradeID, err := pathID(r, "tradeID")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	var req createTransactionReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	q, err := models.NewQuantity(req.Quantity)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	t := models.Transaction{
		TradeID:       tradeID,
		Quantity:      q,
		IsBaseToQuote: *req.IsBaseToQuote,
		Alias:         req.Alias,
		Remark:        req.Remark,
	}
	if req.OccurrenceAt != nil {
		t.OccurrenceAt = req.OccurrenceAt.UTC()
	}
	out, err := h.Svc.Create(r.Context(), owner, t)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	tradeID, err := pathID(r, "tradeID")
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
		t, err := h.Svc.Get(r.Context(), id, tradeID, owner)
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusOK, transactionListResp{Transactions: []models.Transaction{}})
			return
		}
		if err != nil {
			httpx.WriteErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, transactionListResp{Transactions: []models.Transaction{t}, Total: 1})
		return
	}
	limit, offset, err := pageWindow(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	items, total, err := h.Svc.List(r.Context(), tradeID, owner, limit, offset)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	if items == nil {
		items = []models.Transaction{}
	}
	httpx.WriteJSON(w, http.StatusOK, transactionListResp{Transactions: items, Total: total})
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	tradeID, err := pathID(r, "tradeID")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	var req updateTransactionReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	ch := repo.TransactionChanges{
		IsBaseToQuote: req.IsBaseToQuote,
		Alias:         req.Alias,
		Remark:        req.Remark,
	}
	if req.Quantity != nil {
		q, err := models.NewQuantity(*req.Quantity)
		if err != nil {
			httpx.WriteErr(w, err)
			return
		}
		ch.Quantity = &q
	}
	if req.OccurrenceAt != nil {
		utc := req.OccurrenceAt.UTC()
		ch.OccurrenceAt = &utc
	}
	out, err := h.Svc.Update(r.Context(), id, tradeID, owner, ch, req.ExpectedVersion)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	tradeID, err := pathID(r, "tradeID")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	out, err := h.Svc.Delete(r.Context(), id, tradeID, owner)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
