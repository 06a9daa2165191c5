package service

import "errors"

// Errors returned by the auth and user services. Handlers map them to HTTP
// responses with errors.Is; anything else is an internal failure.
var (
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("admin access required")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrPendingApproval    = errors.New("account is pending approval")
	ErrNotFound           = errors.New("user not found")
	ErrSelfAction         = errors.New("cannot delete yourself")
	ErrLastAdmin          = errors.New("operation would remove the last admin")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)
