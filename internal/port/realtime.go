package port

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/db"
)

// RealtimePush delivers a best-effort push to a connected user. It is injected
// into the fanout consumer at construction time, never held as a process-wide
// singleton.
type RealtimePush interface {
	Send(ctx context.Context, userID db.UUID, payload any) error
}
