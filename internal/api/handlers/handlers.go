package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cooooin/harmony/internal/api/validate"
	"github.com/cooooin/harmony/internal/middleware"
	"github.com/cooooin/harmony/internal/models"
)

const (
	defaultPageSize = 256
	maxPageSize     = 1024
)

// decode unmarshals the body into dst and runs its declared rules.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("malformed json body: %w", models.ErrInvalidInput)
	}
	return validate.Struct(dst)
}

func personFrom(r *http.Request) (int64, error) {
	id, ok := middleware.PersonID(r.Context())
	if !ok {
		return 0, fmt.Errorf("no person on request: %w", models.ErrUnauthorized)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer: %w", name, models.ErrInvalidInput)
	}
	return id, nil
}

// pageWindow turns ?page / ?page_size into a limit and offset.
func pageWindow(r *http.Request) (limit, offset int, err error) {
	page, size := int64(1), int64(defaultPageSize)
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		page, err = strconv.ParseInt(v, 10, 64)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer: %w", models.ErrInvalidInput)
		}
	}
	if v := q.Get("page_size"); v != "" {
		size, err = strconv.ParseInt(v, 10, 64)
		if err != nil || size < 1 || size > maxPageSize {
			return 0, 0, fmt.Errorf("page_size must be between 1 and %d: %w", maxPageSize, models.ErrInvalidInput)
		}
	}
	return int(size), int((page - 1) * size), nil
}

// filterID reports the optional ?id= query that narrows a list to one row.
func filterID(r *http.Request) (int64, bool, error) {
	v := r.URL.Query().Get("id")
	if v == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 1 {
		return 0, false, fmt.Errorf("id must be a positive integer: %w", models.ErrInvalidInput)
	}
	return id, true, nil
}
