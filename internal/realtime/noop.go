package realtime

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type NoopPush struct{}

var _ port.RealtimePush = (*NoopPush)(nil)

func NewNoopPush() *NoopPush { return &NoopPush{} }

func (p *NoopPush) Send(ctx context.Context, userID db.UUID, payload any) error {
	return nil
}
