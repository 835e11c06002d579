package catalog

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrRoomLimitExceeded = errors.New("plan room limit reached")
	ErrInvalidHours      = errors.New("invalid business hours")
)
