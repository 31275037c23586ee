package cart

import "storefront/internal/apperror"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = apperror.Auth("user not authenticated")

	// -- Validation & Input --
	ErrInvalidQuantity  = apperror.Validation("quantity must be at least 1")
	ErrProductIDMissing = apperror.Validation("product id is required")
	ErrQuantityTooLarge = apperror.Validation("quantity is too large")

	// -- Resource State --
	ErrCartNotFound     = apperror.NotFound("cart not found")
	ErrCartItemNotFound = apperror.NotFound("product is not in cart")
	ErrProductNotFound  = apperror.NotFound("product not found")
)
