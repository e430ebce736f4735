// Package apperr holds the sentinel errors shared between the repositories
// and the HTTP handlers. Handlers translate them to status codes.
package apperr

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidToken   = errors.New("invalid token")
)
