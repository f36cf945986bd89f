package session

import (
	"context"
	"errors"
	"testing"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/mock"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

func TestCreateSession_Success(t *testing.T) {
	repo := &mock.SessionRepository{}
	mockID := db.NewUUID()
	svc := NewSessionCreator(repo, func() db.UUID { return mockID })

	ownerID := db.NewUUID()
	title := "Friday speedrun"
	sess, err := svc.CreateSession(context.Background(), port.CreateSessionInput{
		OwnerID: ownerID,
		Title:   &title,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.ID != mockID {
		t.Errorf("ID = %s; want %s", sess.ID, mockID)
	}
	if sess.OwnerID != ownerID {
		t.Errorf("OwnerID = %s; want %s", sess.OwnerID, ownerID)
	}
	if sess.Status != model.SessionStatusEnded {
		t.Errorf("Status = %q; want %q", sess.Status, model.SessionStatusEnded)
	}
	if sess.StartTime != nil || sess.EndTime != nil {
		t.Error("expected null start and end times on a fresh session")
	}
	if len(sess.StreamKey) != 32 {
		t.Errorf("StreamKey = %q; want 32 hex chars", sess.StreamKey)
	}
	if repo.CreatedSession != sess {
		t.Error("expected session to be persisted")
	}
}

func TestCreateSession_UniqueStreamKeys(t *testing.T) {
	repo := &mock.SessionRepository{}
	svc := NewSessionCreator(repo, db.NewUUID)

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		sess, err := svc.CreateSession(context.Background(), port.CreateSessionInput{OwnerID: db.NewUUID()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[sess.StreamKey]; dup {
			t.Fatalf("duplicate stream key issued: %q", sess.StreamKey)
		}
		seen[sess.StreamKey] = struct{}{}
	}
}

func TestCreateSession_RepoError(t *testing.T) {
	repo := &mock.SessionRepository{CreateErr: errors.New("db fail")}
	svc := NewSessionCreator(repo, db.NewUUID)

	_, err := svc.CreateSession(context.Background(), port.CreateSessionInput{OwnerID: db.NewUUID()})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
