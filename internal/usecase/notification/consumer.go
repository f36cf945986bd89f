package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type consumerSrv struct {
	notifs  port.NotificationRepository
	push    port.RealtimePush
	newUUID port.UUIDGen
}

// NewFanoutConsumer constructs a port.FanoutConsumer implementation. The
// realtime push handle is an explicit dependency, never a process singleton.
func NewFanoutConsumer(notifs port.NotificationRepository, push port.RealtimePush, newUUID port.UUIDGen) port.FanoutConsumer {
	return &consumerSrv{notifs: notifs, push: push, newUUID: newUUID}
}

type pushPayload struct {
	Type     model.NotificationType `json:"type"`
	Message  string                 `json:"message"`
	EntityID *string                `json:"entity_id,omitempty"`
}

// ProcessFanoutJob persists one notification row per recipient and attempts a
// best-effort realtime push for each. One recipient failing never aborts the
// rest of the batch; the whole job only fails (and retries) when every
// recipient failed.
func (c *consumerSrv) ProcessFanoutJob(ctx context.Context, job model.FanoutJob) error {
	failures := 0
	for _, rid := range job.RecipientIDs {
		n := &model.Notification{
			ID:        c.newUUID(),
			OwnerID:   rid,
			ActorID:   job.ActorID,
			Type:      job.ActionType,
			Message:   job.Message,
			EntityID:  job.EntityID,
			CreatedAt: time.Now(),
		}
		if err := c.notifs.Create(ctx, n); err != nil {
			failures++
			log.Printf("could not persist %q notification for recipient #%s: %v", job.ActionType, rid, err)
			continue
		}

		payload := pushPayload{Type: job.ActionType, Message: job.Message}
		if job.EntityID != nil {
			id := job.EntityID.String()
			payload.EntityID = &id
		}
		if err := c.push.Send(ctx, rid, payload); err != nil {
			// recipient likely has no active connection; the inbox row stands
			log.Printf("realtime push to recipient #%s failed: %v", rid, err)
		}
	}

	if failures > 0 {
		log.Printf("%q fanout job finished with %d/%d failed recipient(s)", job.ActionType, failures, len(job.RecipientIDs))
	}
	if failures == len(job.RecipientIDs) && failures > 0 {
		return fmt.Errorf("all %d recipients of %q fanout job failed", failures, job.ActionType)
	}
	return nil
}
