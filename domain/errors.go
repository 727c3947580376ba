package domain

import "errors"

// Authentication errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotActive   = errors.New("account is not active")
)

// Token errors. Expired and invalid are distinct because the client's
// recovery path differs: expired means try a refresh, invalid means force
// a new login.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Validation errors
var (
	ErrWeakPassword  = errors.New("password does not meet strength policy")
	ErrEmptyPassword = errors.New("password must not be empty")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("insufficient role permissions")
)

// Role errors
var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleInUse    = errors.New("role is referenced by at least one account")
)
