package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
)

type mockFanoutConsumer struct {
	err  error
	jobs []model.FanoutJob
}

func (m *mockFanoutConsumer) ProcessFanoutJob(ctx context.Context, job model.FanoutJob) error {
	m.jobs = append(m.jobs, job)
	return m.err
}

func TestNotifyFollowersHandler_Success(t *testing.T) {
	svc := &mockFanoutConsumer{}
	job := model.FanoutJob{
		ActorID:      db.NewUUID(),
		ActionType:   model.NotificationStreamStarted,
		RecipientIDs: []db.UUID{db.NewUUID(), db.NewUUID()},
	}

	if err := NotifyFollowersHandler(context.Background(), job, svc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(svc.jobs) != 1 {
		t.Fatalf("service calls = %d; want 1", len(svc.jobs))
	}
	if len(svc.jobs[0].RecipientIDs) != 2 {
		t.Errorf("recipients = %d; want 2", len(svc.jobs[0].RecipientIDs))
	}
}

func TestNotifyFollowersHandler_ServiceError(t *testing.T) {
	svcErr := errors.New("svc fail")
	svc := &mockFanoutConsumer{err: svcErr}

	err := NotifyFollowersHandler(context.Background(), model.FanoutJob{ActorID: db.NewUUID()}, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
}
