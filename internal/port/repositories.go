package port

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
)

// SessionRepository defines persistence operations for stream sessions.
type SessionRepository interface {
	Create(ctx context.Context, sess *model.StreamSession) error
	GetByID(ctx context.Context, id db.UUID) (*model.StreamSession, error)
	GetByStreamKey(ctx context.Context, streamKey string) (*model.StreamSession, error)
	Update(ctx context.Context, sess *model.StreamSession) (db.UpdateResult, error)
}

// VODRepository defines persistence operations for VODs.
type VODRepository interface {
	Create(ctx context.Context, vod *model.VOD) error
	GetByID(ctx context.Context, id db.UUID) (*model.VOD, error)
	Update(ctx context.Context, vod *model.VOD) (db.UpdateResult, error)
	IncrementViewCount(ctx context.Context, id db.UUID) (db.UpdateResult, error)
}

// NotificationRepository persists notification inbox rows.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
}

// FollowerLookup resolves the follower set of a user. Both session/ingestion
// logic and notification logic depend on this neutral interface; notification
// logic never depends on session logic.
type FollowerLookup interface {
	ListFollowerIDs(ctx context.Context, ownerID db.UUID) ([]db.UUID, error)
}

// UserDirectory resolves display identity for actor snapshots.
type UserDirectory interface {
	GetUsername(ctx context.Context, id db.UUID) (string, error)
}
