package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type sessionUpdaterSrv struct {
	repo port.SessionRepository
}

// NewSessionUpdater constructs a port.SessionUpdater implementation.
func NewSessionUpdater(repo port.SessionRepository) port.SessionUpdater {
	return &sessionUpdaterSrv{repo: repo}
}

// UpdateSession applies owner-driven edits. Title/description/category are
// free-form; status edits are constrained:
//   - "live" requires a null end time, and a live row that already carries an
//     end time is a data-integrity fault surfaced as ErrBadState;
//   - "ended" requires the session to currently be live and stamps the end time.
func (s *sessionUpdaterSrv) UpdateSession(ctx context.Context, in port.UpdateSessionInput) (*model.StreamSession, error) {
	sess, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var zero db.UUID
	if in.ActorID != zero && in.ActorID != sess.OwnerID {
		return nil, ErrNotOwner
	}

	if in.Title != nil {
		sess.Title = in.Title
	}
	if in.Description != nil {
		sess.Description = in.Description
	}
	if in.CategoryID != nil {
		sess.CategoryID = in.CategoryID
	}

	if in.Status != nil {
		switch model.SessionStatus(*in.Status) {
		case model.SessionStatusLive:
			if sess.Status == model.SessionStatusLive && sess.EndTime != nil {
				return nil, ErrBadState
			}
			if sess.EndTime != nil {
				return nil, ErrStreamKeyRetired
			}
			now := time.Now()
			if sess.StartTime == nil {
				sess.StartTime = &now
			}
			sess.Status = model.SessionStatusLive
		case model.SessionStatusEnded:
			if sess.Status != model.SessionStatusLive {
				return nil, ErrInvalidTransition
			}
			now := time.Now()
			sess.Status = model.SessionStatusEnded
			sess.EndTime = &now
		default:
			return nil, ErrInvalidTransition
		}
	}

	if _, err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
