package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrBadResponse indicates an upstream payload parsed as JSON but
	// failed shape validation.
	ErrBadResponse = errors.New("bad upstream response")
)
