package session

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type sessionGetterSrv struct {
	repo        port.SessionRepository
	refresher   port.URLRefresher
	thumbBucket string
}

// NewSessionGetter constructs a port.SessionGetter implementation.
func NewSessionGetter(repo port.SessionRepository, refresher port.URLRefresher, thumbBucket string) port.SessionGetter {
	return &sessionGetterSrv{repo: repo, refresher: refresher, thumbBucket: thumbBucket}
}

// GetSession returns the session, refreshing and persisting its thumbnail
// access URL first when it is close to expiry.
func (s *sessionGetterSrv) GetSession(ctx context.Context, id db.UUID) (*model.StreamSession, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if ref, ok := sess.ThumbnailRef(s.thumbBucket); ok {
		if w, changed := s.refresher.Refresh(ctx, ref, sess.ThumbnailWindow()); changed {
			sess.SetThumbnailWindow(w)
			if _, err := s.repo.Update(ctx, sess); err != nil {
				log.Printf("could not persist refreshed thumbnail URL for session #%s: %v", sess.ID, err)
			}
		}
	}

	return sess, nil
}
