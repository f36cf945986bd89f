package session

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type sessionEnderSrv struct {
	repo       port.SessionRepository
	counter    port.ViewerCounter
	dispatcher port.TaskDispatcher
}

// NewSessionEnder constructs a port.SessionEnder implementation.
func NewSessionEnder(repo port.SessionRepository, counter port.ViewerCounter, dispatcher port.TaskDispatcher) port.SessionEnder {
	return &sessionEnderSrv{repo: repo, counter: counter, dispatcher: dispatcher}
}

// MarkEnded transitions the session owning streamKey to ended, reconciling the
// final viewer count as max(live counter, externally reported count, 0).
func (s *sessionEnderSrv) MarkEnded(ctx context.Context, streamKey string, reportedViewers *string) (*model.StreamSession, error) {
	sess, err := s.repo.GetByStreamKey(ctx, streamKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.Retired() {
		// the credential already ended once; its final state is frozen
		return nil, ErrStreamKeyRetired
	}

	final := s.counter.Get(ctx, streamKey)
	if reportedViewers != nil {
		if reported, err := strconv.ParseInt(*reportedViewers, 10, 64); err == nil && reported > final {
			final = reported
		}
	}
	if final < 0 {
		final = 0
	}

	now := time.Now()
	sess.Status = model.SessionStatusEnded
	sess.EndTime = &now
	sess.ViewerCount = final

	if _, err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}

	// terminal cleanup; the key is never reused for this credential
	s.counter.Reset(ctx, streamKey)

	if err := s.dispatcher.EnqueueSessionEnded(ctx, streamKey); err != nil {
		log.Printf("session-ended event for key %q could not be enqueued: %v", streamKey, err)
	}

	log.Printf("session #%s ended with %d viewers", sess.ID, final)
	return sess, nil
}
