package task

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// CompletedRetention is how long finished jobs stay visible for observability
// before the queue purges them.
const CompletedRetention = 24 * time.Hour

// IngestRetry disables queue-level retry: the pipeline is not idempotent, so a
// retried run would duplicate durable objects and VOD rows.
var IngestRetry = port.RetryPolicy{MaxAttempts: 1}

// SessionEndedRetry gives the event a couple of delivery attempts.
var SessionEndedRetry = port.RetryPolicy{
	MaxAttempts: 3,
	Backoff:     port.BackoffExponential,
	BaseDelay:   10 * time.Second,
}

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueIngestRecording(ctx context.Context, streamKey, recordingPath, originalFilename string) error {
	t, err := NewIngestRecordingTask(streamKey, recordingPath, originalFilename)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, policyOptions(IngestRetry)...); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueNotifyFollowers(ctx context.Context, job model.FanoutJob, policy port.RetryPolicy) error {
	t, err := NewNotifyFollowersTask(job)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, policyOptions(policy)...); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueSessionEnded(ctx context.Context, streamKey string) error {
	t, err := NewSessionEndedTask(streamKey)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, policyOptions(SessionEndedRetry)...); err != nil {
		return err
	}
	return nil
}

// policyOptions maps an explicit retry policy onto queue options. Asynq counts
// retries, not attempts, hence the minus one.
func policyOptions(p port.RetryPolicy) []asynq.Option {
	maxRetry := p.MaxAttempts - 1
	if maxRetry < 0 {
		maxRetry = 0
	}
	return []asynq.Option{
		asynq.MaxRetry(maxRetry),
		asynq.Retention(CompletedRetention),
	}
}

// RetryDelay implements the backoff side of a RetryPolicy; it is installed as
// the worker server's delay function.
func RetryDelay(p port.RetryPolicy) func(n int, err error, t *asynq.Task) time.Duration {
	return func(n int, err error, t *asynq.Task) time.Duration {
		base := p.BaseDelay
		if base <= 0 {
			base = 30 * time.Second
		}
		if p.Backoff == port.BackoffFixed {
			return base
		}
		return base << uint(n)
	}
}
