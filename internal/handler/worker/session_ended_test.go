package worker

import (
	"context"
	"testing"

	"github.com/streamhive/streams-ms-go/internal/mock"
	"github.com/streamhive/streams-ms-go/internal/task"
)

func TestSessionEndedHandler_ResetsCounter(t *testing.T) {
	counter := &mock.ViewerCounter{Counts: map[string]int64{"abc123": 9}}

	if err := SessionEndedHandler(context.Background(), task.SessionEndedPayload{StreamKey: "abc123"}, counter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counter.ResetCalls != 1 {
		t.Errorf("ResetCalls = %d; want 1", counter.ResetCalls)
	}
	if counter.Counts["abc123"] != 0 {
		t.Errorf("count = %d; want 0", counter.Counts["abc123"])
	}
}
