package events

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"tourism/pkg/kafka"
	"tourism/pkg/logger"
)

type fakeProducer struct {
	messages []kafka.Message
	err      error
}

func (f *fakeProducer) Publish(_ context.Context, msg kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func TestKafkaPublisher_PublishBooking(t *testing.T) {
	fp := &fakeProducer{}
	p := &kafkaPublisher{producer: fp, source: "bookings", log: logger.New(logger.Config{Output: io.Discard})}

	ctx := logger.ContextWithRequestID(context.Background(), "req-9")
	p.PublishBooking(ctx, BookingEvent{
		Type:       BookingConfirmed,
		BookingID:  "b-1",
		Status:     "confirmed",
		OccurredAt: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	})

	if len(fp.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(fp.messages))
	}
	msg := fp.messages[0]
	if msg.Key != "b-1" || msg.GetEventType() != BookingConfirmed || msg.GetCorrelationID() != "req-9" {
		t.Errorf("message = key %q headers %v", msg.Key, msg.Headers)
	}

	var decoded BookingEvent
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if decoded.Status != "confirmed" {
		t.Errorf("decoded status = %q", decoded.Status)
	}
}

func TestKafkaPublisher_SwallowsErrors(t *testing.T) {
	fp := &fakeProducer{err: errors.New("broker down")}
	p := &kafkaPublisher{producer: fp, source: "reviews", log: logger.New(logger.Config{Output: io.Discard})}

	p.PublishReview(context.Background(), ReviewEvent{Type: ReviewCreated, TargetID: "g-1"})
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()
	p.PublishBooking(context.Background(), BookingEvent{})
	p.PublishReview(context.Background(), ReviewEvent{})
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
