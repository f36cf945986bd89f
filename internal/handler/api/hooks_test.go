package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/mock"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/usecase/session"
)

type mockStarter struct {
	out *model.StreamSession
	err error
	key string
}

func (m *mockStarter) GoLive(ctx context.Context, streamKey string) (*model.StreamSession, error) {
	m.key = streamKey
	return m.out, m.err
}

type mockEnder struct {
	out      *model.StreamSession
	err      error
	key      string
	reported *string
}

func (m *mockEnder) MarkEnded(ctx context.Context, streamKey string, reportedViewers *string) (*model.StreamSession, error) {
	m.key = streamKey
	m.reported = reportedViewers
	return m.out, m.err
}

func postHook(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/internal/hooks/x", bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestPublishHookHandler_Success(t *testing.T) {
	svc := &mockStarter{out: &model.StreamSession{ID: db.NewUUID(), Status: model.SessionStatusLive}}

	rr := postHook(t, PublishHookHandler(svc), map[string]string{"name": "abc123"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
	if svc.key != "abc123" {
		t.Errorf("stream key = %q; want %q", svc.key, "abc123")
	}
	var resp HookResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp.Code != 0 {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestPublishHookHandler_UnknownKey(t *testing.T) {
	svc := &mockStarter{err: session.ErrSessionNotFound}

	rr := postHook(t, PublishHookHandler(svc), map[string]string{"name": "nope"})

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", rr.Code)
	}
}

func TestPublishHookHandler_RetiredKey(t *testing.T) {
	svc := &mockStarter{err: session.ErrStreamKeyRetired}

	rr := postHook(t, PublishHookHandler(svc), map[string]string{"name": "abc123"})

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d; want 409", rr.Code)
	}
}

func TestPublishHookHandler_MissingName(t *testing.T) {
	svc := &mockStarter{}

	rr := postHook(t, PublishHookHandler(svc), map[string]string{})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rr.Code)
	}
	if svc.key != "" {
		t.Error("service should not be called without a stream name")
	}
}

func TestDoneHookHandler_PassesReportedViewers(t *testing.T) {
	svc := &mockEnder{out: &model.StreamSession{ViewerCount: 5}}

	rr := postHook(t, DoneHookHandler(svc), map[string]string{"name": "abc123", "viewers": "5"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
	if svc.reported == nil || *svc.reported != "5" {
		t.Errorf("reported = %v; want \"5\"", svc.reported)
	}
}

func TestRecordingHookHandler_Enqueues(t *testing.T) {
	dispatcher := &mock.TaskDispatcher{}

	rr := postHook(t, RecordingHookHandler(dispatcher), map[string]string{
		"name":     "abc123",
		"file":     "/rec/abc123.flv",
		"filename": "abc123.flv",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rr.Code)
	}
	if dispatcher.IngestCalls != 1 {
		t.Errorf("IngestCalls = %d; want 1", dispatcher.IngestCalls)
	}
}

func TestRecordingHookHandler_MissingFile(t *testing.T) {
	dispatcher := &mock.TaskDispatcher{}

	rr := postHook(t, RecordingHookHandler(dispatcher), map[string]string{"name": "abc123"})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rr.Code)
	}
	if dispatcher.IngestCalls != 0 {
		t.Error("expected no enqueue without a file")
	}
}

func TestViewerHooks_MoveCounter(t *testing.T) {
	counter := &mock.ViewerCounter{}

	rr := postHook(t, ViewerJoinHookHandler(counter), map[string]string{"name": "abc123"})
	if rr.Code != http.StatusOK {
		t.Fatalf("join status = %d; want 200", rr.Code)
	}
	if counter.Counts["abc123"] != 1 {
		t.Errorf("count after join = %d; want 1", counter.Counts["abc123"])
	}

	rr = postHook(t, ViewerLeaveHookHandler(counter), map[string]string{"name": "abc123"})
	if rr.Code != http.StatusOK {
		t.Fatalf("leave status = %d; want 200", rr.Code)
	}
	if counter.Counts["abc123"] != 0 {
		t.Errorf("count after leave = %d; want 0", counter.Counts["abc123"])
	}
}
