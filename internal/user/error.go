package user

import "storefront/internal/apperror"

var (
	ErrRegisterFieldsRequired = apperror.Validation("email, password, username and captcha are required")
	ErrLoginFieldsRequired    = apperror.Validation("email, password and captcha are required")
	ErrInvalidEmail           = apperror.Validation("invalid email address")
	ErrTokenRequired          = apperror.Validation("verification token is required")
	ErrEmptyProfileUpdate     = apperror.Validation("nothing to update")
	ErrInvalidUsername        = apperror.Validation("username cannot be empty")

	ErrInvalidCaptcha = apperror.Captcha("captcha is incorrect or expired")

	ErrEmailExists = apperror.Conflict("email already registered")

	ErrUserNotFound = apperror.NotFound("user not found")

	ErrInvalidPassword = apperror.Auth("incorrect password")
	ErrInvalidToken    = apperror.Auth("invalid or expired token")
	ErrUnauthenticated = apperror.Auth("unauthenticated")
)
