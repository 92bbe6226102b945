package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cooooin/harmony/internal/api/validate"
	"github.com/cooooin/harmony/internal/models"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteErr maps a layered error onto the wire. Anything outside the known
// kinds is masked as a plain 500 so internals never reach the caller.
func WriteErr(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		WriteError(w, http.StatusBadRequest, "invalid_input", "validation failed", verrs)
	case errors.Is(err, models.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, models.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized", nil)
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, models.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, models.ErrPoolTimeout):
		w.Header().Set("Retry-After", "1")
		WriteError(w, http.StatusServiceUnavailable, "pool_timeout", "store is saturated, retry shortly", nil)
	case errors.Is(err, models.ErrUnavailable):
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "store is busy, retry shortly", nil)
	default:
		slog.Error("unhandled error", "err", err)
		WriteError(w, http.StatusInternalServerError, "internal", "internal error", nil)
	}
}
