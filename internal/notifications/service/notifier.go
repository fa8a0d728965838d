package service

import (
	"context"
	"errors"
	"fmt"

	notificationserrors "tourism/internal/notifications/errors"
	"tourism/internal/notifications/repository"
	"tourism/pkg/events"
	"tourism/pkg/kafka"
	"tourism/pkg/logger"
	"tourism/pkg/model"
)

// Notifier turns booking and review events into stored notifications.
type Notifier struct {
	repo repository.NotificationRepository
	log  *logger.Logger
}

func NewNotifier(repo repository.NotificationRepository, log *logger.Logger) *Notifier {
	return &Notifier{repo: repo, log: log}
}

// HandleBooking is the consumer handler for the booking events topic.
func (n *Notifier) HandleBooking(ctx context.Context, msg kafka.Message) error {
	var event events.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("malformed booking event", err)
	}
	if event.Type == "" {
		event.Type = msg.GetEventType()
	}
	if event.BookingID == "" || event.Type == "" {
		return kafka.NewPermanentError("booking event is missing booking_id or type", kafka.ErrInvalidMessage)
	}
	return n.deliver(ctx, msg.GetEventID(), bookingNotifications(event))
}

// HandleReview is the consumer handler for the review events topic.
func (n *Notifier) HandleReview(ctx context.Context, msg kafka.Message) error {
	var event events.ReviewEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("malformed review event", err)
	}
	if event.Type == "" {
		event.Type = msg.GetEventType()
	}
	if event.ReviewID == "" || event.Type == "" {
		return kafka.NewPermanentError("review event is missing review_id or type", kafka.ErrInvalidMessage)
	}
	return n.deliver(ctx, msg.GetEventID(), reviewNotifications(event))
}

func (n *Notifier) deliver(ctx context.Context, eventID string, notifications []model.Notification) error {
	for i := range notifications {
		notification := &notifications[i]
		notification.EventID = eventID

		err := n.repo.Create(ctx, notification)
		switch {
		case err == nil:
			n.log.Debug("Notification stored",
				"user_id", notification.UserID,
				"type", notification.Type,
				"reference_id", notification.ReferenceID,
			)
		case errors.Is(err, notificationserrors.ErrAlreadyDelivered):
			n.log.Debug("Notification already delivered",
				"event_id", eventID,
				"user_id", notification.UserID,
			)
		default:
			return kafka.NewTransientError("failed to store notification", err)
		}
	}
	return nil
}

func bookingNotifications(e events.BookingEvent) []model.Notification {
	when := e.Date
	if e.StartTime != "" {
		when = fmt.Sprintf("%s at %s", e.Date, e.StartTime)
	}

	forCustomer := func(title, message string) []model.Notification {
		return []model.Notification{{UserID: e.CustomerID, Type: e.Type, Title: title, Message: message, ReferenceID: e.BookingID}}
	}
	forOwner := func(title, message string) []model.Notification {
		return []model.Notification{{UserID: e.OwnerID, Type: e.Type, Title: title, Message: message, ReferenceID: e.BookingID}}
	}

	switch e.Type {
	case events.BookingCreated:
		return forOwner("New booking request", fmt.Sprintf("You have a new booking request for %s.", when))
	case events.BookingConfirmed:
		return forCustomer("Booking confirmed", fmt.Sprintf("Your booking for %s is confirmed.", when))
	case events.BookingCompleted:
		return forCustomer("Booking completed", "Your booking is completed. You can now leave a review.")
	case events.BookingCancelled:
		message := fmt.Sprintf("The booking for %s was cancelled.", when)
		if e.Reason != "" {
			message = fmt.Sprintf("%s Reason: %s", message, e.Reason)
		}
		if e.ActorID == e.CustomerID {
			return forOwner("Booking cancelled by customer", message)
		}
		return forCustomer("Booking cancelled", message)
	default:
		return nil
	}
}

func reviewNotifications(e events.ReviewEvent) []model.Notification {
	var out []model.Notification
	if e.OwnerID != "" {
		var title string
		switch e.Type {
		case events.ReviewCreated:
			title = "New review"
		case events.ReviewUpdated:
			title = "Review updated"
		case events.ReviewDeleted:
			title = "Review removed"
		case events.ReviewModerated:
			title = "Review moderated"
		default:
			return nil
		}
		out = append(out, model.Notification{
			UserID:      e.OwnerID,
			Type:        e.Type,
			Title:       title,
			Message:     fmt.Sprintf("Your average rating is now %.2f from %d reviews.", e.AverageRating, e.RatingCount),
			ReferenceID: e.ReviewID,
		})
	}
	if e.Type == events.ReviewModerated && e.AuthorID != "" {
		out = append(out, model.Notification{
			UserID:      e.AuthorID,
			Type:        e.Type,
			Title:       "Your review was moderated",
			Message:     fmt.Sprintf("Your review is now %s.", e.Status),
			ReferenceID: e.ReviewID,
		})
	}
	return out
}
