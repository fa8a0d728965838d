package service

import (
	"context"
	"errors"
	"io"
	"testing"

	notificationserrors "tourism/internal/notifications/errors"
	"tourism/pkg/events"
	"tourism/pkg/kafka"
	"tourism/pkg/logger"
	"tourism/pkg/model"
)

type mockNotificationRepository struct {
	stored    []model.Notification
	delivered map[string]bool
	err       error
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if m.err != nil {
		return m.err
	}
	key := n.EventID + "/" + n.UserID
	if m.delivered[key] {
		return notificationserrors.ErrAlreadyDelivered
	}
	if m.delivered == nil {
		m.delivered = map[string]bool{}
	}
	m.delivered[key] = true
	m.stored = append(m.stored, *n)
	return nil
}

func newNotifier(repo *mockNotificationRepository) *Notifier {
	return NewNotifier(repo, logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}))
}

func message(t *testing.T, eventID string, payload any) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().WithKey("k").WithValue(payload).WithEventID(eventID).Build()
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}
	return msg
}

func TestHandleBooking_Recipients(t *testing.T) {
	tests := []struct {
		name      string
		event     events.BookingEvent
		wantUser  string
		wantTitle string
	}{
		{"created notifies owner", events.BookingEvent{Type: events.BookingCreated, ActorID: "cust"}, "owner", "New booking request"},
		{"confirmed notifies customer", events.BookingEvent{Type: events.BookingConfirmed, ActorID: "owner"}, "cust", "Booking confirmed"},
		{"completed notifies customer", events.BookingEvent{Type: events.BookingCompleted, ActorID: "owner"}, "cust", "Booking completed"},
		{"cancel by customer notifies owner", events.BookingEvent{Type: events.BookingCancelled, ActorID: "cust"}, "owner", "Booking cancelled by customer"},
		{"cancel by owner notifies customer", events.BookingEvent{Type: events.BookingCancelled, ActorID: "owner"}, "cust", "Booking cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockNotificationRepository{}
			event := tt.event
			event.BookingID = "b1"
			event.CustomerID = "cust"
			event.OwnerID = "owner"
			event.Date = "2025-07-01"

			if err := newNotifier(repo).HandleBooking(context.Background(), message(t, "e1", event)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(repo.stored) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(repo.stored))
			}
			got := repo.stored[0]
			if got.UserID != tt.wantUser || got.Title != tt.wantTitle || got.ReferenceID != "b1" || got.EventID != "e1" {
				t.Errorf("unexpected notification: %+v", got)
			}
		})
	}
}

func TestHandleBooking_IgnoresPaymentUpdates(t *testing.T) {
	repo := &mockNotificationRepository{}
	event := events.BookingEvent{Type: events.BookingPaymentUpdated, BookingID: "b1", CustomerID: "cust", OwnerID: "owner"}

	if err := newNotifier(repo).HandleBooking(context.Background(), message(t, "e1", event)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.stored) != 0 {
		t.Errorf("expected no notification, got %d", len(repo.stored))
	}
}

func TestHandleBooking_RedeliveryIsIdempotent(t *testing.T) {
	repo := &mockNotificationRepository{}
	n := newNotifier(repo)
	msg := message(t, "e1", events.BookingEvent{Type: events.BookingConfirmed, BookingID: "b1", CustomerID: "cust"})

	for i := 0; i < 2; i++ {
		if err := n.HandleBooking(context.Background(), msg); err != nil {
			t.Fatalf("delivery %d failed: %v", i, err)
		}
	}
	if len(repo.stored) != 1 {
		t.Errorf("expected 1 stored notification, got %d", len(repo.stored))
	}
}

func TestHandlers_ErrorClassification(t *testing.T) {
	n := newNotifier(&mockNotificationRepository{})
	failing := newNotifier(&mockNotificationRepository{err: errors.New("server selection error")})
	ctx := context.Background()

	malformed := kafka.Message{Value: []byte("{not json"), Headers: map[string]string{}}
	if err := n.HandleBooking(ctx, malformed); kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Errorf("malformed booking event: expected permanent error, got %v", err)
	}
	if err := n.HandleReview(ctx, malformed); kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Errorf("malformed review event: expected permanent error, got %v", err)
	}

	missingID := message(t, "e1", events.BookingEvent{Type: events.BookingConfirmed})
	if err := n.HandleBooking(ctx, missingID); kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
		t.Errorf("missing booking id: expected permanent error, got %v", err)
	}

	valid := message(t, "e1", events.BookingEvent{Type: events.BookingConfirmed, BookingID: "b1", CustomerID: "cust"})
	if err := failing.HandleBooking(ctx, valid); kafka.ClassifyError(err) != kafka.ErrorTypeTransient {
		t.Errorf("storage failure: expected transient error, got %v", err)
	}
}

func TestHandleReview(t *testing.T) {
	repo := &mockNotificationRepository{}
	n := newNotifier(repo)
	ctx := context.Background()

	created := events.ReviewEvent{Type: events.ReviewCreated, ReviewID: "r1", OwnerID: "owner", AuthorID: "alice", AverageRating: 4, RatingCount: 1}
	if err := n.HandleReview(ctx, message(t, "e1", created)); err != nil {
		t.Fatal(err)
	}
	if len(repo.stored) != 1 || repo.stored[0].UserID != "owner" {
		t.Fatalf("expected owner notification, got %+v", repo.stored)
	}

	moderated := events.ReviewEvent{Type: events.ReviewModerated, ReviewID: "r1", OwnerID: "owner", AuthorID: "alice", Status: model.ReviewHidden}
	if err := n.HandleReview(ctx, message(t, "e2", moderated)); err != nil {
		t.Fatal(err)
	}
	if len(repo.stored) != 3 {
		t.Fatalf("expected owner and author notified on moderation, got %d", len(repo.stored))
	}
	if repo.stored[2].UserID != "alice" {
		t.Errorf("expected author notification last, got %+v", repo.stored[2])
	}
}
