package port

import (
	"context"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
)

type BackoffKind string

const (
	BackoffExponential BackoffKind = "exponential"
	BackoffFixed       BackoffKind = "fixed"
)

// RetryPolicy describes how the queue should retry a job. It is passed to the
// queue abstraction explicitly instead of being hard-coded at call sites.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffKind
	BaseDelay   time.Duration
}

// TaskDispatcher enqueues asynchronous work onto the job queue.
type TaskDispatcher interface {
	EnqueueIngestRecording(ctx context.Context, streamKey, recordingPath, originalFilename string) error
	EnqueueNotifyFollowers(ctx context.Context, job model.FanoutJob, policy RetryPolicy) error
	EnqueueSessionEnded(ctx context.Context, streamKey string) error
}
