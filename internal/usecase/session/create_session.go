package session

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"

	"github.com/google/uuid"
)

type sessionCreatorSrv struct {
	repo    port.SessionRepository
	newUUID port.UUIDGen
}

// NewSessionCreator constructs a port.SessionCreator implementation.
func NewSessionCreator(repo port.SessionRepository, newUUID port.UUIDGen) port.SessionCreator {
	return &sessionCreatorSrv{repo: repo, newUUID: newUUID}
}

// CreateSession provisions a session in the Ended state with a freshly issued
// stream key and null start/end times.
func (s *sessionCreatorSrv) CreateSession(ctx context.Context, in port.CreateSessionInput) (*model.StreamSession, error) {
	sess := &model.StreamSession{
		ID:          s.newUUID(),
		OwnerID:     in.OwnerID,
		StreamKey:   newStreamKey(),
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Status:      model.SessionStatusEnded,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}

	log.Printf("created session #%s for owner #%s", sess.ID, sess.OwnerID)
	return sess, nil
}

// newStreamKey issues an opaque, single-use-for-life credential.
func newStreamKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
