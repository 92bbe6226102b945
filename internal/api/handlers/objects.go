package handlers

import (
	"errors"
	"net/http"

	"github.com/cooooin/harmony/internal/api/httpx"
	"github.com/cooooin/harmony/internal/models"
	repo "github.com/cooooin/harmony/internal/repository"
	"github.com/cooooin/harmony/internal/services"
)

type ObjectHandler struct {
	Svc *services.ObjectService
}

type createObjectReq struct {
	Symbol string  `json:"symbol" validate:"required,min=1,max=64"`
	Alias  *string `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark *string `json:"remark" validate:"omitempty,min=1,max=4096"`
}

type updateObjectReq struct {
	Symbol          *string `json:"symbol" validate:"omitempty,min=1,max=64"`
	Alias           *string `json:"alias" validate:"omitempty,min=1,max=4096"`
	Remark          *string `json:"remark" validate:"omitempty,min=1,max=4096"`
	ExpectedVersion int64   `json:"expected_version" validate:"required,min=1"`
}

type objectListResp struct {
	Objects []models.Object `json:"objects"`
	Total   int64           `json:"total"`
}

func (h *ObjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	var req createObjectReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	o, err := h.Svc.Create(r.Context(), models.Object{
		Owner:  owner,
		Symbol: req.Symbol,
		Alias:  req.Alias,
		Remark: req.Remark,
	})
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, o)
}

func (h *ObjectHandler) List(w http.ResponseWriter, r *http.Request) {
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
		o, err := h.Svc.Get(r.Context(), id, owner)
		if errors.Is(err, models.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusOK, objectListResp{Objects: []models.Object{}})
			return
		}
		if err != nil {
			httpx.WriteErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, objectListResp{Objects: []models.Object{o}, Total: 1})
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
		items = []models.Object{}
	}
	httpx.WriteJSON(w, http.StatusOK, objectListResp{Objects: items, Total: total})
}

func (h *ObjectHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req updateObjectReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	ch := repo.ObjectChanges{Symbol: req.Symbol, Alias: req.Alias, Remark: req.Remark}
	o, err := h.Svc.Update(r.Context(), id, owner, ch, req.ExpectedVersion)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

func (h *ObjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	o, err := h.Svc.Delete(r.Context(), id, owner)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}
