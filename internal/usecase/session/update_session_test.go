package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/mock"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

func strPtr(s string) *string { return &s }

func TestUpdateSession_Metadata(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		ID:     db.NewUUID(),
		Status: model.SessionStatusEnded,
	}}
	svc := NewSessionUpdater(repo)

	catID := db.NewUUID()
	sess, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		Title:       strPtr("New title"),
		Description: strPtr("New description"),
		CategoryID:  &catID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.Title == nil || *sess.Title != "New title" {
		t.Errorf("Title = %v; want %q", sess.Title, "New title")
	}
	if sess.CategoryID == nil || *sess.CategoryID != catID {
		t.Errorf("CategoryID = %v; want %s", sess.CategoryID, catID)
	}
	if sess.Status != model.SessionStatusEnded {
		t.Error("expected status to stay untouched")
	}
	if repo.UpdateCalls != 1 {
		t.Errorf("UpdateCalls = %d; want 1", repo.UpdateCalls)
	}
}

func TestUpdateSession_NotFound(t *testing.T) {
	repo := &mock.SessionRepository{GetErr: sql.ErrNoRows}
	svc := NewSessionUpdater(repo)

	_, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUpdateSession_NotOwner(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		OwnerID: db.NewUUID(),
		Status:  model.SessionStatusEnded,
	}}
	svc := NewSessionUpdater(repo)

	_, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		ActorID: db.NewUUID(),
		Title:   strPtr("hijack"),
	})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if repo.UpdateCalls != 0 {
		t.Error("expected no update for a non-owner")
	}
}

func TestUpdateSession_ToLive_StampsStartTime(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		Status: model.SessionStatusEnded,
	}}
	svc := NewSessionUpdater(repo)

	sess, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		Status: strPtr("live"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Status != model.SessionStatusLive {
		t.Errorf("Status = %q; want %q", sess.Status, model.SessionStatusLive)
	}
	if sess.StartTime == nil {
		t.Error("expected StartTime to be stamped")
	}
}

func TestUpdateSession_ToLive_RetiredKey(t *testing.T) {
	ended := time.Now().Add(-time.Hour)
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		Status:  model.SessionStatusEnded,
		EndTime: &ended,
	}}
	svc := NewSessionUpdater(repo)

	_, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		Status: strPtr("live"),
	})
	if !errors.Is(err, ErrStreamKeyRetired) {
		t.Fatalf("expected ErrStreamKeyRetired, got %v", err)
	}
}

func TestUpdateSession_ToLive_CorruptRow(t *testing.T) {
	// live with an end time should be impossible; surface it instead of repairing
	ended := time.Now().Add(-time.Hour)
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		Status:  model.SessionStatusLive,
		EndTime: &ended,
	}}
	svc := NewSessionUpdater(repo)

	_, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		Status: strPtr("live"),
	})
	if !errors.Is(err, ErrBadState) {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
}

func TestUpdateSession_ToEnded_FromLive(t *testing.T) {
	started := time.Now().Add(-time.Hour)
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		Status:    model.SessionStatusLive,
		StartTime: &started,
	}}
	svc := NewSessionUpdater(repo)

	sess, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		Status: strPtr("ended"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Status != model.SessionStatusEnded {
		t.Errorf("Status = %q; want %q", sess.Status, model.SessionStatusEnded)
	}
	if sess.EndTime == nil {
		t.Error("expected EndTime to be stamped")
	}
}

func TestUpdateSession_ToEnded_NotLive(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		Status: model.SessionStatusEnded,
	}}
	svc := NewSessionUpdater(repo)

	_, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		Status: strPtr("ended"),
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateSession_UnknownStatus(t *testing.T) {
	repo := &mock.SessionRepository{SessionOut: &model.StreamSession{
		Status: model.SessionStatusEnded,
	}}
	svc := NewSessionUpdater(repo)

	_, err := svc.UpdateSession(context.Background(), port.UpdateSessionInput{
		Status: strPtr("paused"),
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
