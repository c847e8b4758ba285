package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("admin role required")
	ErrCannotDeleteSelf   = errors.New("admins cannot delete their own account")
)
