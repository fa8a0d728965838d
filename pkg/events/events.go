package events

import (
	"context"
	"time"
)

const (
	BookingCreated        = "booking.created"
	BookingConfirmed      = "booking.confirmed"
	BookingCompleted      = "booking.completed"
	BookingCancelled      = "booking.cancelled"
	BookingPaymentUpdated = "booking.payment_updated"

	ReviewCreated   = "review.created"
	ReviewUpdated   = "review.updated"
	ReviewDeleted   = "review.deleted"
	ReviewModerated = "review.moderated"

	SchemaVersion = "1"
)

// BookingEvent is published after a booking write commits.
type BookingEvent struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	TargetType     string    `json:"target_type"`
	TargetID       string    `json:"target_id"`
	OwnerID        string    `json:"owner_id"`
	CustomerID     string    `json:"customer_id"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time,omitempty"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	PaymentStatus  string    `json:"payment_status,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	ActorID        string    `json:"actor_id"`
	ActorRole      string    `json:"actor_role"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ReviewEvent is published after a review write and its rating recompute commit.
type ReviewEvent struct {
	Type          string    `json:"type"`
	ReviewID      string    `json:"review_id"`
	TargetType    string    `json:"target_type"`
	TargetID      string    `json:"target_id"`
	OwnerID       string    `json:"owner_id"`
	AuthorID      string    `json:"author_id"`
	Rating        int       `json:"rating"`
	Status        string    `json:"status"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int64     `json:"rating_count"`
	ActorID       string    `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers domain events. Failures are logged, never returned:
// the write they describe has already committed.
type Publisher interface {
	PublishBooking(ctx context.Context, event BookingEvent)
	PublishReview(ctx context.Context, event ReviewEvent)
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher is used when EVENTS_ENABLED is false.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishBooking(context.Context, BookingEvent) {}
func (nopPublisher) PublishReview(context.Context, ReviewEvent)   {}
func (nopPublisher) Close() error                                 { return nil }
