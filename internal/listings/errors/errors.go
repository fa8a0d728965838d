package errors

import "errors"

var (
	ErrGuideNotFound = errors.New("guide not found")

	ErrBusinessNotFound = errors.New("business not found")

	ErrInvalidID = errors.New("invalid listing ID format")
)
