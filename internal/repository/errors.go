package repository

import "errors"

var (
	// ErrRoomNotFound covers both a missing room and a room owned by a
	// different tenant. Callers must not be able to tell the two apart.
	ErrRoomNotFound = errors.New("room not found for tenant")

	// ErrOverlap means a confirmed booking already occupies part of the
	// requested [start, end) interval on that room.
	ErrOverlap = errors.New("overlapping confirmed booking")
)
