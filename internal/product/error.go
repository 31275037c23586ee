package product

import (
	"errors"

	"storefront/internal/apperror"
)

var (
	ErrProductNotFound = apperror.NotFound("product not found")
	ErrKeywordRequired = apperror.Validation("keyword is required")
	ErrInvalidCategory = apperror.Validation("invalid product category")
	ErrInvalidPrice    = apperror.Validation("price and stock must not be negative")

	ErrCacheMiss = errors.New("cache miss")
)
