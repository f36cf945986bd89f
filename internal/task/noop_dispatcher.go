package task

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueIngestRecording(ctx context.Context, streamKey, recordingPath, originalFilename string) error {
	return nil
}

func (d *NoopDispatcher) EnqueueNotifyFollowers(ctx context.Context, job model.FanoutJob, policy port.RetryPolicy) error {
	return nil
}

func (d *NoopDispatcher) EnqueueSessionEnded(ctx context.Context, streamKey string) error {
	return nil
}
