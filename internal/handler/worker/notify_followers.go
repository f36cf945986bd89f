package worker

import (
	"context"
	"log"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// NotifyFollowersHandler handles one fanout batch.
func NotifyFollowersHandler(ctx context.Context, job model.FanoutJob, svc port.FanoutConsumer) error {
	if err := svc.ProcessFanoutJob(ctx, job); err != nil {
		log.Printf("❌  Failed to fan out %q notifications from user #%s: %v", job.ActionType, job.ActorID, err)
		return err
	}

	log.Printf("✅  Fanned out %q notifications to %d followers of user #%s", job.ActionType, len(job.RecipientIDs), job.ActorID)
	return nil
}
