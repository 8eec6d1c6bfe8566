package catalog

import "errors"

var (
	ErrNotFound  = errors.New("product not found")
	ErrMalformed = errors.New("malformed product document")
)
