package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks malformed or missing input. Wrap it with the reason:
//
//	fmt.Errorf("%w: businessName is required for owners", ErrValidation)
var ErrValidation = errors.New("validation failed")

var (
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
)

var (
	ErrMissingToken    = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid token")
	ErrAccountNotFound = errors.New("account not found")
)

var ErrForbidden = errors.New("access denied")

var (
	ErrAdminOnly           = fmt.Errorf("%w: admin only", ErrForbidden)
	ErrBusinessNotVerified = fmt.Errorf("%w: business not verified", ErrForbidden)
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrBusinessNotFound = errors.New("business not found")
)
