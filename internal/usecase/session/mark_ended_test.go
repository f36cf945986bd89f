package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/streamhive/streams-ms-go/internal/mock"
	"github.com/streamhive/streams-ms-go/internal/model"
)

func liveSession(streamKey string) *model.StreamSession {
	started := time.Now().Add(-time.Hour)
	return &model.StreamSession{
		StreamKey: streamKey,
		Status:    model.SessionStatusLive,
		StartTime: &started,
	}
}

func TestMarkEnded_UsesCounterValue(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: liveSession("abc123")}
	counter := &mock.ViewerCounter{Counts: map[string]int64{"abc123": 42}}
	dispatcher := &mock.TaskDispatcher{}
	svc := NewSessionEnder(repo, counter, dispatcher)

	sess, err := svc.MarkEnded(context.Background(), "abc123", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.Status != model.SessionStatusEnded {
		t.Errorf("Status = %q; want %q", sess.Status, model.SessionStatusEnded)
	}
	if sess.EndTime == nil {
		t.Error("expected EndTime to be stamped")
	}
	if sess.ViewerCount != 42 {
		t.Errorf("ViewerCount = %d; want 42", sess.ViewerCount)
	}
	if counter.ResetCalls != 1 {
		t.Error("expected terminal counter reset")
	}
	if dispatcher.EndedCalls != 1 {
		t.Error("expected session-ended event to be enqueued")
	}
}

func TestMarkEnded_ReportedCountWinsWhenHigher(t *testing.T) {
	// the counter store lost track; the media server reported more viewers
	repo := &mock.SessionRepository{SessionOut: liveSession("abc123")}
	counter := &mock.ViewerCounter{Counts: map[string]int64{"abc123": 1}}
	svc := NewSessionEnder(repo, counter, &mock.TaskDispatcher{})

	reported := "5"
	sess, err := svc.MarkEnded(context.Background(), "abc123", &reported)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ViewerCount != 5 {
		t.Errorf("ViewerCount = %d; want 5", sess.ViewerCount)
	}
}

func TestMarkEnded_CounterWinsWhenReportedLower(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: liveSession("abc123")}
	counter := &mock.ViewerCounter{Counts: map[string]int64{"abc123": 10}}
	svc := NewSessionEnder(repo, counter, &mock.TaskDispatcher{})

	reported := "3"
	sess, err := svc.MarkEnded(context.Background(), "abc123", &reported)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ViewerCount != 10 {
		t.Errorf("ViewerCount = %d; want 10", sess.ViewerCount)
	}
}

func TestMarkEnded_GarbageReportIgnored(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: liveSession("abc123")}
	counter := &mock.ViewerCounter{Counts: map[string]int64{"abc123": 2}}
	svc := NewSessionEnder(repo, counter, &mock.TaskDispatcher{})

	reported := "not-a-number"
	sess, err := svc.MarkEnded(context.Background(), "abc123", &reported)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ViewerCount != 2 {
		t.Errorf("ViewerCount = %d; want 2", sess.ViewerCount)
	}
}

func TestMarkEnded_NotFound(t *testing.T) {
	repo := &mock.SessionRepository{GetErr: sql.ErrNoRows}
	svc := NewSessionEnder(repo, &mock.ViewerCounter{}, &mock.TaskDispatcher{})

	_, err := svc.MarkEnded(context.Background(), "nope", nil)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMarkEnded_AlreadyRetired(t *testing.T) {
	ended := time.Now().Add(-time.Hour)
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		StreamKey:   "abc123",
		Status:      model.SessionStatusEnded,
		EndTime:     &ended,
		ViewerCount: 42,
	}}
	svc := NewSessionEnder(repo, &mock.ViewerCounter{}, &mock.TaskDispatcher{})

	_, err := svc.MarkEnded(context.Background(), "abc123", nil)
	if !errors.Is(err, ErrStreamKeyRetired) {
		t.Fatalf("expected ErrStreamKeyRetired, got %v", err)
	}
	if repo.UpdateCalls != 0 {
		t.Error("expected the frozen final state to stay untouched")
	}
}

func TestMarkEnded_UpdateError(t *testing.T) {
	repo := &mock.SessionRepository{
		SessionOut: liveSession("abc123"),
		UpdateErr:  errors.New("db fail"),
	}
	counter := &mock.ViewerCounter{}
	svc := NewSessionEnder(repo, counter, &mock.TaskDispatcher{})

	_, err := svc.MarkEnded(context.Background(), "abc123", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if counter.ResetCalls != 0 {
		t.Error("expected no counter reset when the update failed")
	}
}

func TestMarkEnded_EnqueueFailureIsNotFatal(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: liveSession("abc123")}
	dispatcher := &mock.TaskDispatcher{EndedErr: errors.New("queue down")}
	svc := NewSessionEnder(repo, &mock.ViewerCounter{}, dispatcher)

	sess, err := svc.MarkEnded(context.Background(), "abc123", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Status != model.SessionStatusEnded {
		t.Errorf("Status = %q; want %q", sess.Status, model.SessionStatusEnded)
	}
}
