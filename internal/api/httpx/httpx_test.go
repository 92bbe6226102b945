package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooooin/harmony/internal/api/validate"
	"github.com/cooooin/harmony/internal/models"
)

func writeAndDecode(t *testing.T, err error) (*httptest.ResponseRecorder, APIError) {
	t.Helper()
	rec := httptest.NewRecorder()
	WriteErr(rec, err)
	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestWriteErr_MapsEveryKind(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid input", fmt.Errorf("page must be positive: %w", models.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{"unauthorized", fmt.Errorf("bad credentials: %w", models.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{"not found", fmt.Errorf("person 7: %w", models.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("object changed since last read: %w", models.ErrConflict), http.StatusConflict, "conflict"},
		{"pool timeout", fmt.Errorf("acquire lease: %w", models.ErrPoolTimeout), http.StatusServiceUnavailable, "pool_timeout"},
		{"unavailable", fmt.Errorf("still locked: %w", models.ErrUnavailable), http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := writeAndDecode(t, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestWriteErr_NotFoundKeepsMessage(t *testing.T) {
	_, body := writeAndDecode(t, fmt.Errorf("person 7: %w", models.ErrNotFound))
	assert.Contains(t, body.Error, "person 7")
}

func TestWriteErr_UnauthorizedNeverExplainsItself(t *testing.T) {
	_, body := writeAndDecode(t, fmt.Errorf("signature mismatch on key v1: %w", models.ErrUnauthorized))
	assert.Equal(t, "unauthorized", body.Error)
	assert.NotContains(t, body.Error, "signature")
}

func TestWriteErr_PoolTimeoutAsksForRetry(t *testing.T) {
	rec, _ := writeAndDecode(t, models.ErrPoolTimeout)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestWriteErr_ValidationCarriesDetails(t *testing.T) {
	verrs := validate.Errs{
		{Field: "nickname", Msg: "is required"},
		{Field: "password", Msg: "must be at least 8 characters"},
	}
	rec := httptest.NewRecorder()
	WriteErr(rec, verrs)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code    string              `json:"code"`
		Details []validate.ErrField `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body.Code)
	require.Len(t, body.Details, 2)
	assert.Equal(t, "nickname", body.Details[0].Field)
}

func TestWriteErr_MasksUnknownErrors(t *testing.T) {
	rec, body := writeAndDecode(t, errors.New("pq: secret internal detail"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", body.Error)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestWriteJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusTeapot, map[string]int{"n": 1})
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}
