package model

import (
	"time"

	"github.com/streamhive/streams-ms-go/internal/db"
)

// VOD is a durable recording of a finished broadcast (or a manual upload when
// SessionID is nil). The row is only ever created after every upload succeeded.
type VOD struct {
	ID          db.UUID  `json:"id"`
	OwnerID     db.UUID  `json:"owner_id"`
	SessionID   *db.UUID `json:"session_id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *db.UUID `json:"category_id"`

	VideoKey          string     `json:"video_key"`
	VideoURL          *string    `json:"video_url"`
	VideoURLExpiresAt *time.Time `json:"video_url_expires_at"`

	ThumbnailKey          *string    `json:"thumbnail_key"`
	ThumbnailURL          *string    `json:"thumbnail_url"`
	ThumbnailURLExpiresAt *time.Time `json:"thumbnail_url_expires_at"`

	DurationSeconds float64 `json:"duration_seconds"`
	ViewCount       int64   `json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *VOD) VideoRef(bucket string) ObjectReference {
	return ObjectReference{Bucket: bucket, Key: v.VideoKey}
}

func (v *VOD) VideoWindow() AccessWindow {
	if v.VideoURL == nil || v.VideoURLExpiresAt == nil {
		return AccessWindow{}
	}
	return AccessWindow{URL: *v.VideoURL, ExpiresAt: *v.VideoURLExpiresAt}
}

func (v *VOD) SetVideoWindow(w AccessWindow) {
	v.VideoURL = &w.URL
	v.VideoURLExpiresAt = &w.ExpiresAt
}

func (v *VOD) ThumbnailRef(bucket string) (ObjectReference, bool) {
	if v.ThumbnailKey == nil || *v.ThumbnailKey == "" {
		return ObjectReference{}, false
	}
	return ObjectReference{Bucket: bucket, Key: *v.ThumbnailKey}, true
}

func (v *VOD) ThumbnailWindow() AccessWindow {
	if v.ThumbnailURL == nil || v.ThumbnailURLExpiresAt == nil {
		return AccessWindow{}
	}
	return AccessWindow{URL: *v.ThumbnailURL, ExpiresAt: *v.ThumbnailURLExpiresAt}
}

func (v *VOD) SetThumbnailWindow(w AccessWindow) {
	v.ThumbnailURL = &w.URL
	v.ThumbnailURLExpiresAt = &w.ExpiresAt
}
