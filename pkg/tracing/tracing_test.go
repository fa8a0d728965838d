package tracing

import (
	"context"
	"errors"
	"testing"
)

func TestSetup_WithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "test", "")
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestEnd_AcceptsNilAndError(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "op")
	End(span, nil)

	_, span = Tracer("test").Start(context.Background(), "op")
	End(span, errors.New("failed"))
}
