package orders

import "errors"

var (
	ErrNotFound = errors.New("order not found")
	ErrNoItems  = errors.New("order has no items")
)
