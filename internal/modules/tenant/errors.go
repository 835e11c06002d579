package tenant

import "errors"

var (
	ErrNotFound     = errors.New("tenant not found")
	ErrSlugTaken    = errors.New("slug already registered")
	ErrInvalidSlug  = errors.New("invalid slug")
	ErrValidation   = errors.New("validation error")
	ErrWeakPassword = errors.New("password too short")
)
