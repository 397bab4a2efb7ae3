package commonModels

import "errors"

// Shared error taxonomy. Handlers map these to HTTP codes, everything else
// wraps them with %w and context.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrDecode            = errors.New("decode error")
	ErrMalformedDocument = errors.New("malformed document")
	ErrEncoding          = errors.New("encoding error")
)
