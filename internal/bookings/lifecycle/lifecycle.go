// Package lifecycle is the booking state machine:
//
//	pending -> confirmed -> completed
//	pending -> cancelled
//	confirmed -> cancelled
//
// completed and cancelled are terminal.
package lifecycle

import "tourism/pkg/model"

type edge struct {
	from   string
	action string
}

var transitions = map[edge]string{
	{model.BookingPending, model.ActionConfirm}:    model.BookingConfirmed,
	{model.BookingConfirmed, model.ActionComplete}: model.BookingCompleted,
	{model.BookingPending, model.ActionCancel}:     model.BookingCancelled,
	{model.BookingConfirmed, model.ActionCancel}:   model.BookingCancelled,
}

// Next returns the status reached by applying action to status.
func Next(status, action string) (string, bool) {
	next, ok := transitions[edge{status, action}]
	return next, ok
}

func IsTerminal(status string) bool {
	return status == model.BookingCompleted || status == model.BookingCancelled
}

func ValidAction(action string) bool {
	switch action {
	case model.ActionConfirm, model.ActionComplete, model.ActionCancel:
		return true
	}
	return false
}

// CanView reports whether actor is a party to the booking.
func CanView(actor model.Actor, b *model.Booking) bool {
	return actor.IsAdmin() || actor.ID == b.CustomerID || actor.ID == b.OwnerID
}

// CanPerform reports whether actor may apply action. The listing owner and
// admins drive the lifecycle, customers may only cancel their own bookings.
func CanPerform(actor model.Actor, b *model.Booking, action string) bool {
	if actor.IsAdmin() || actor.ID == b.OwnerID {
		return true
	}
	return action == model.ActionCancel && actor.ID == b.CustomerID
}
