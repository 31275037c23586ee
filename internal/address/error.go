package address

import "storefront/internal/apperror"

var (
	ErrUnauthenticated = apperror.Auth("unauthenticated")
	ErrAddressNotFound = apperror.NotFound("address not found")
	ErrOwnerNotFound   = apperror.NotFound("user not found")
	ErrMissingFields   = apperror.Validation("name, phone and address are required")
)
