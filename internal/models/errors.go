package models

import "errors"

// Error kinds shared by the repository, service and API layers. Every
// error crossing a layer boundary wraps exactly one of these, so callers
// can branch with errors.Is without knowing where the error came from.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
	ErrPoolTimeout  = errors.New("pool timeout")
	ErrFatal        = errors.New("fatal")
)
