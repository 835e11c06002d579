package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInterval = errors.New("start time must be before end time")
	// ErrNotFound covers a missing room/booking and one belonging to a
	// different tenant; callers cannot distinguish the two.
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("overlapping booking")
	ErrOutOfHours        = errors.New("interval outside business hours")
	ErrStatusTransition  = errors.New("invalid booking status transition")
	ErrPlanLimitExceeded = errors.New("monthly booking limit reached")
)

// ConflictError carries the interval of an already-confirmed booking that
// blocks the request. errors.Is(err, ErrConflict) matches it.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping booking %s - %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
