package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductNotActive  = errors.New("product is not active")
	ErrInsufficientStock = errors.New("insufficient stock")
)
