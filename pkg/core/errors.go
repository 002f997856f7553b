package core

import "errors"

// Common errors.
var (
	ErrNotFound      = errors.New("note not found")
	ErrEmptyTitle    = errors.New("note title cannot be empty")
	ErrEmptyBody     = errors.New("note body cannot be empty")
	ErrMalformedPair = errors.New("malformed note pair")
	ErrReadOnly      = errors.New("store is in read-only mode")
	ErrUnknownCodec  = errors.New("unknown codec")
)
