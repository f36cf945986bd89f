package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// BatchSize is the fixed recipient batch size; the last batch may be smaller.
const BatchSize = 10

// DefaultFanoutRetry is the queue policy for fanout jobs.
var DefaultFanoutRetry = port.RetryPolicy{
	MaxAttempts: 5,
	Backoff:     port.BackoffExponential,
	BaseDelay:   30 * time.Second,
}

type producerSrv struct {
	followers  port.FollowerLookup
	users      port.UserDirectory
	dispatcher port.TaskDispatcher
}

// NewFanoutProducer constructs a port.FanoutProducer implementation.
func NewFanoutProducer(followers port.FollowerLookup, users port.UserDirectory, dispatcher port.TaskDispatcher) port.FanoutProducer {
	return &producerSrv{followers: followers, users: users, dispatcher: dispatcher}
}

// NotifyFollowers fetches the actor's follower list, partitions it into
// batches of BatchSize, and enqueues one job per batch carrying everything the
// consumer needs.
func (p *producerSrv) NotifyFollowers(ctx context.Context, in port.NotifyFollowersInput) error {
	if in.Template == nil {
		return fmt.Errorf("notification: nil message template for action %q", in.Action)
	}

	actorName, err := p.users.GetUsername(ctx, in.ActorID)
	if err != nil {
		return fmt.Errorf("could not resolve actor #%s: %w", in.ActorID, err)
	}

	followerIDs, err := p.followers.ListFollowerIDs(ctx, in.ActorID)
	if err != nil {
		return fmt.Errorf("could not list followers of #%s: %w", in.ActorID, err)
	}
	if len(followerIDs) == 0 {
		return nil
	}

	message := in.Template(actorName, in.EntityTitle)

	batches := 0
	for start := 0; start < len(followerIDs); start += BatchSize {
		end := start + BatchSize
		if end > len(followerIDs) {
			end = len(followerIDs)
		}
		job := model.FanoutJob{
			ActionType:   in.Action,
			ActorID:      in.ActorID,
			ActorName:    actorName,
			EntityID:     in.EntityID,
			EntityTitle:  in.EntityTitle,
			Message:      message,
			RecipientIDs: followerIDs[start:end],
		}
		if err := p.dispatcher.EnqueueNotifyFollowers(ctx, job, DefaultFanoutRetry); err != nil {
			return fmt.Errorf("could not enqueue fanout batch %d for #%s: %w", batches, in.ActorID, err)
		}
		batches++
	}

	log.Printf("enqueued %d %q fanout batch(es) for %d follower(s) of #%s", batches, in.Action, len(followerIDs), in.ActorID)
	return nil
}
