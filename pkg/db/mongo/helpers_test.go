package mongo

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeout_AddsDeadline(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if time.Until(deadline) > time.Second {
		t.Errorf("deadline too far in the future: %s", time.Until(deadline))
	}
}

func TestWithTimeout_KeepsShorterParentDeadline(t *testing.T) {
	parent, cancelParent := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelParent()

	ctx, cancel := WithTimeout(parent, 10*time.Second)
	defer cancel()

	deadline, _ := ctx.Deadline()
	if time.Until(deadline) > 50*time.Millisecond {
		t.Errorf("expected parent deadline to win, got %s", time.Until(deadline))
	}
}

func TestObjectIDs(t *testing.T) {
	ids, ok := ObjectIDs([]string{"507f1f77bcf86cd799439011", "507f191e810c19729de860ea"})
	if !ok || len(ids) != 2 {
		t.Fatalf("expected two ids, got %v (ok=%v)", ids, ok)
	}

	if _, ok := ObjectIDs([]string{"507f1f77bcf86cd799439011", "nope"}); ok {
		t.Error("expected malformed id to be rejected")
	}
}
