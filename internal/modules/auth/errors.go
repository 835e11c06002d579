package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for a wrong password, an unknown
	// email, an unknown tenant slug and a deactivated tenant or account
	// alike, so a caller cannot enumerate which tenants or emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered for tenant")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWeakPassword       = errors.New("password too short")
)
