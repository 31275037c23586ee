package order

import (
	"errors"

	"storefront/internal/apperror"
)

var (
	ErrUnauthenticated = apperror.Auth("user not authenticated")

	ErrEmptyItems       = apperror.Validation("order must contain at least one item")
	ErrInvalidQuantity  = apperror.Validation("item quantity must be at least 1")
	ErrInvalidProductID = apperror.Validation("invalid product id")
	ErrProductInactive  = apperror.Validation("product is no longer available")

	ErrProductNotFound = apperror.NotFound("product not found")
	ErrOrderNotFound   = apperror.NotFound("order not found")
	ErrOrderNotPending = apperror.NotFound("order not found or no longer pending")
)

// ErrDuplicateOrderNo is returned by Insert when the order number is taken.
var ErrDuplicateOrderNo = errors.New("order number already exists")
