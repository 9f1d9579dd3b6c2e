package domain

import "errors"

// Sentinel errors shared across services. The API error handler maps each to
// its HTTP status; anything else is treated as internal.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("invalid payload")

	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrClientNotFound   = errors.New("client not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrRequestNotFound  = errors.New("service request not found")
	ErrServiceNotFound  = errors.New("service not found")
)
