package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrStatusChanged means a conditional write found the booking in a
	// different status than the one it was read with.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
