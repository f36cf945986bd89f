package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/mock"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/task"
)

func TestIngestRecordingHandler_Success(t *testing.T) {
	svc := &mock.RecordingIngester{VODOut: &model.VOD{ID: db.NewUUID()}}

	p := task.IngestRecordingPayload{
		StreamKey:        "abc123",
		RecordingPath:    "/rec/abc123.flv",
		OriginalFilename: "abc123.flv",
	}
	if err := IngestRecordingHandler(context.Background(), p, svc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(svc.Inputs) != 1 {
		t.Fatalf("service calls = %d; want 1", len(svc.Inputs))
	}
	in := svc.Inputs[0]
	if in.StreamKey != "abc123" || in.RecordingPath != "/rec/abc123.flv" || in.OriginalFilename != "abc123.flv" {
		t.Errorf("input = %+v", in)
	}
}

func TestIngestRecordingHandler_ServiceError(t *testing.T) {
	svcErr := errors.New("svc fail")
	svc := &mock.RecordingIngester{Err: svcErr}

	err := IngestRecordingHandler(context.Background(), task.IngestRecordingPayload{StreamKey: "abc123"}, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
}
