package payment

import "storefront/internal/apperror"

var (
	ErrInvalidMethod  = apperror.Validation("invalid payment method")
	ErrInvalidAmount  = apperror.Validation("payment amount must not be negative")
	ErrMissingOrderID = apperror.Validation("order id is required")
)
