package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "bookings"})

	log.Info("booking confirmed", "booking_id", "b1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "bookings" {
		t.Errorf("expected service=bookings, got %v", entry[SERVICE])
	}
	if entry["booking_id"] != "b1" {
		t.Errorf("expected booking_id=b1, got %v", entry["booking_id"])
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TEXT, Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestWithContext_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: JSON, Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-42")
	log.WithContext(ctx).Info("slot created")

	if !strings.Contains(buf.String(), `"request_id":"req-42"`) {
		t.Errorf("expected request_id in log line, got %q", buf.String())
	}
}

func TestWithContext_NoRequestIDReturnsSameLogger(t *testing.T) {
	log := New(Config{})
	if log.WithContext(context.Background()) != log {
		t.Error("expected the same logger when no request id is set")
	}
}
