package session

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/usecase/notification"
)

type sessionStarterSrv struct {
	repo     port.SessionRepository
	counter  port.ViewerCounter
	producer port.FanoutProducer
}

// NewSessionStarter constructs a port.SessionStarter implementation.
func NewSessionStarter(repo port.SessionRepository, counter port.ViewerCounter, producer port.FanoutProducer) port.SessionStarter {
	return &sessionStarterSrv{repo: repo, counter: counter, producer: producer}
}

// GoLive transitions the session owning streamKey to live. A retired
// credential (end time already set) can never go live again.
func (s *sessionStarterSrv) GoLive(ctx context.Context, streamKey string) (*model.StreamSession, error) {
	sess, err := s.repo.GetByStreamKey(ctx, streamKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.Retired() {
		return nil, ErrStreamKeyRetired
	}

	wasLive := sess.Status == model.SessionStatusLive

	now := time.Now()
	if sess.StartTime == nil {
		sess.StartTime = &now
	}
	sess.Status = model.SessionStatusLive
	sess.EndTime = nil

	if _, err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	s.counter.Reset(ctx, streamKey)

	if !wasLive {
		title := ""
		if sess.Title != nil {
			title = *sess.Title
		}
		in := port.NotifyFollowersInput{
			ActorID:     sess.OwnerID,
			Action:      model.NotificationStreamStarted,
			EntityID:    &sess.ID,
			EntityTitle: title,
			Template:    notification.StreamStartedMessage,
		}
		if err := s.producer.NotifyFollowers(ctx, in); err != nil {
			log.Printf("stream_started fanout failed for session #%s: %v", sess.ID, err)
		}
	}

	log.Printf("session #%s is now live (key %q)", sess.ID, streamKey)
	return sess, nil
}
