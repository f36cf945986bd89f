package model

import (
	"time"

	"github.com/streamhive/streams-ms-go/internal/db"
)

type SessionStatus string

const (
	SessionStatusEnded SessionStatus = "ended"
	SessionStatusLive  SessionStatus = "live"
)

// StreamSession is one broadcast session, identified by a single-use-for-life
// stream key. Once EndTime is set the key is retired for good.
type StreamSession struct {
	ID          db.UUID       `json:"id"`
	OwnerID     db.UUID       `json:"owner_id"`
	StreamKey   string        `json:"stream_key"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	CategoryID  *db.UUID      `json:"category_id"`
	Status      SessionStatus `json:"status"`
	StartTime   *time.Time    `json:"start_time"`
	EndTime     *time.Time    `json:"end_time"`
	ViewerCount int64         `json:"viewer_count"`

	ThumbnailKey          *string    `json:"thumbnail_key"`
	ThumbnailURL          *string    `json:"thumbnail_url"`
	ThumbnailURLExpiresAt *time.Time `json:"thumbnail_url_expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Retired reports whether the stream key may never go live again.
func (s *StreamSession) Retired() bool {
	return s.EndTime != nil
}

// ThumbnailRef returns the durable pointer to the session thumbnail, if any.
func (s *StreamSession) ThumbnailRef(bucket string) (ObjectReference, bool) {
	if s.ThumbnailKey == nil || *s.ThumbnailKey == "" {
		return ObjectReference{}, false
	}
	return ObjectReference{Bucket: bucket, Key: *s.ThumbnailKey}, true
}

// ThumbnailWindow returns the current access window for the thumbnail; zero if unset.
func (s *StreamSession) ThumbnailWindow() AccessWindow {
	if s.ThumbnailURL == nil || s.ThumbnailURLExpiresAt == nil {
		return AccessWindow{}
	}
	return AccessWindow{URL: *s.ThumbnailURL, ExpiresAt: *s.ThumbnailURLExpiresAt}
}

// SetThumbnailWindow replaces the stored access window.
func (s *StreamSession) SetThumbnailWindow(w AccessWindow) {
	s.ThumbnailURL = &w.URL
	s.ThumbnailURLExpiresAt = &w.ExpiresAt
}
