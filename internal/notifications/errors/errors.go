package errors

import "errors"

var (
	// ErrAlreadyDelivered means the notification for this event and user exists.
	ErrAlreadyDelivered = errors.New("notification already delivered")
)
