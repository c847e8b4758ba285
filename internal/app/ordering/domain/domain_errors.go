package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
