package handlers

import (
	"net/http"

	"github.com/cooooin/harmony/internal/api/httpx"
	"github.com/cooooin/harmony/internal/services"
)

type PersonHandler struct {
	Svc *services.PersonService
}

type credentialsReq struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type claimResp struct {
	Claim  string `json:"claim"`
	Expire int64  `json:"expire"`
}

func (h *PersonHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	_, claim, expiry, err := h.Svc.Register(r.Context(), req.Nickname, req.Password)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, claimResp{Claim: claim, Expire: expiry.UnixMilli()})
}

func (h *PersonHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	claim, expiry, err := h.Svc.Claim(r.Context(), req.Nickname, req.Password)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, claimResp{Claim: claim, Expire: expiry.UnixMilli()})
}

// Me answers with the caller's own profile.
func (h *PersonHandler) Me(w http.ResponseWriter, r *http.Request) {
	personID, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	p, err := h.Svc.Get(r.Context(), personID)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

type updatePersonReq struct {
	Nickname        *string `json:"nickname" validate:"omitempty,min=1,max=20"`
	Password        *string `json:"password" validate:"omitempty,min=8,max=72"`
	ExpectedVersion int64   `json:"expected_version" validate:"required,min=1"`
}

func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	personID, err := personFrom(r)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	var req updatePersonReq
	if err := decode(r, &req); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	p, err := h.Svc.Update(r.Context(), personID, req.Nickname, req.Password, req.ExpectedVersion)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
