package common

import (
	"context"
	"testing"
)

func TestCallerContext_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Absent by default
	if cc := CallerContextFromContext(ctx); cc != nil {
		t.Error("Expected nil CallerContext from empty context")
	}
	if id := CorrelationIDFromContext(ctx); id != "" {
		t.Errorf("Expected empty correlation id, got %q", id)
	}

	ctx = WithCallerContext(ctx, &CallerContext{Key: "key-1", CorrelationID: "abc123"})

	got := CallerContextFromContext(ctx)
	if got == nil {
		t.Fatal("Expected non-nil CallerContext")
	}
	if got.Key != "key-1" {
		t.Errorf("Expected key-1, got %s", got.Key)
	}
	if id := CorrelationIDFromContext(ctx); id != "abc123" {
		t.Errorf("Expected abc123, got %s", id)
	}
}
