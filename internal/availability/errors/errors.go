package errors

import "errors"

var (
	ErrNotFound = errors.New("slot not found")

	ErrInvalidID = errors.New("invalid slot ID format")

	// ErrSlotNotAvailable is returned by conditional booking writes when the
	// slot is no longer in the expected status.
	ErrSlotNotAvailable = errors.New("slot is not available")
)
