package vod

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type vodGetterSrv struct {
	repo        port.VODRepository
	refresher   port.URLRefresher
	vodBucket   string
	thumbBucket string
}

// NewVODGetter constructs a port.VODGetter implementation.
func NewVODGetter(repo port.VODRepository, refresher port.URLRefresher, vodBucket, thumbBucket string) port.VODGetter {
	return &vodGetterSrv{repo: repo, refresher: refresher, vodBucket: vodBucket, thumbBucket: thumbBucket}
}

// GetVOD returns the VOD with fresh access URLs for the video and thumbnail,
// persisting any regenerated window before returning, and bumps the monotonic
// view count.
func (s *vodGetterSrv) GetVOD(ctx context.Context, id db.UUID) (*model.VOD, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVODNotFound
		}
		return nil, err
	}

	changed := false
	if w, ok := s.refresher.Refresh(ctx, v.VideoRef(s.vodBucket), v.VideoWindow()); ok {
		v.SetVideoWindow(w)
		changed = true
	}
	if ref, ok := v.ThumbnailRef(s.thumbBucket); ok {
		if w, ok := s.refresher.Refresh(ctx, ref, v.ThumbnailWindow()); ok {
			v.SetThumbnailWindow(w)
			changed = true
		}
	}
	if changed {
		if _, err := s.repo.Update(ctx, v); err != nil {
			log.Printf("could not persist refreshed URLs for vod #%s: %v", v.ID, err)
		}
	}

	if _, err := s.repo.IncrementViewCount(ctx, v.ID); err != nil {
		log.Printf("could not bump view count for vod #%s: %v", v.ID, err)
	} else {
		v.ViewCount++
	}

	return v, nil
}
