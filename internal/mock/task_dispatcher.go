package mock

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// TaskDispatcher implements port.TaskDispatcher for tests.
type TaskDispatcher struct {
	IngestErr error
	NotifyErr error
	EndedErr  error

	IngestCalls  int
	IngestKeys   []string
	NotifyJobs   []model.FanoutJob
	NotifyPolicy port.RetryPolicy
	EndedCalls   int
	EndedKeys    []string
}

var _ port.TaskDispatcher = (*TaskDispatcher)(nil)

func (m *TaskDispatcher) EnqueueIngestRecording(ctx context.Context, streamKey, recordingPath, originalFilename string) error {
	m.IngestCalls++
	if m.IngestErr != nil {
		return m.IngestErr
	}
	m.IngestKeys = append(m.IngestKeys, streamKey)
	return nil
}

func (m *TaskDispatcher) EnqueueNotifyFollowers(ctx context.Context, job model.FanoutJob, policy port.RetryPolicy) error {
	if m.NotifyErr != nil {
		return m.NotifyErr
	}
	m.NotifyJobs = append(m.NotifyJobs, job)
	m.NotifyPolicy = policy
	return nil
}

func (m *TaskDispatcher) EnqueueSessionEnded(ctx context.Context, streamKey string) error {
	m.EndedCalls++
	if m.EndedErr != nil {
		return m.EndedErr
	}
	m.EndedKeys = append(m.EndedKeys, streamKey)
	return nil
}
