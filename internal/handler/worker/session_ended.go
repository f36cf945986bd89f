package worker

import (
	"context"
	"log"

	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/task"
)

// SessionEndedHandler handles the session-ended event. The counter reset here
// is a second pass: the API already reset it when the session ended, this one
// catches resets lost to a counter-store hiccup.
func SessionEndedHandler(ctx context.Context, p task.SessionEndedPayload, counter port.ViewerCounter) error {
	counter.Reset(ctx, p.StreamKey)

	log.Printf("✅  Session for stream %q ended, viewer counter cleared", p.StreamKey)
	return nil
}
