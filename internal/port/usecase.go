package port

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
)

type UUIDGen func() db.UUID

// SessionCreator provisions a new session with a freshly issued stream key.
type SessionCreator interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (*model.StreamSession, error)
}
type CreateSessionInput struct {
	OwnerID     db.UUID
	Title       *string
	Description *string
	CategoryID  *db.UUID
}

// SessionStarter transitions a session to live on an ingest "publish" callback.
type SessionStarter interface {
	GoLive(ctx context.Context, streamKey string) (*model.StreamSession, error)
}

// SessionEnder transitions a session to ended and reconciles the viewer count.
// reportedViewers is the externally-observed count from the ingest server, if any.
type SessionEnder interface {
	MarkEnded(ctx context.Context, streamKey string, reportedViewers *string) (*model.StreamSession, error)
}

// SessionUpdater applies owner-driven edits to a session.
type SessionUpdater interface {
	UpdateSession(ctx context.Context, in UpdateSessionInput) (*model.StreamSession, error)
}
type UpdateSessionInput struct {
	ID          db.UUID
	ActorID     db.UUID // zero value skips the ownership check
	Title       *string
	Description *string
	CategoryID  *db.UUID
	Status      *string
}

// SessionGetter returns a session with a fresh thumbnail access URL.
type SessionGetter interface {
	GetSession(ctx context.Context, id db.UUID) (*model.StreamSession, error)
}

// RecordingIngester turns a finished raw recording into a persisted VOD.
type RecordingIngester interface {
	Ingest(ctx context.Context, in IngestInput) (*model.VOD, error)
}
type IngestInput struct {
	StreamKey        string
	RecordingPath    string
	OriginalFilename string
}

// VODGetter returns a VOD with fresh access URLs, bumping its view count.
type VODGetter interface {
	GetVOD(ctx context.Context, id db.UUID) (*model.VOD, error)
}

// MessageTemplate renders the notification message from denormalised snapshots.
type MessageTemplate func(actorName, entityTitle string) string

// FanoutProducer partitions an actor's followers into batches and enqueues one
// fanout job per batch.
type FanoutProducer interface {
	NotifyFollowers(ctx context.Context, in NotifyFollowersInput) error
}
type NotifyFollowersInput struct {
	ActorID     db.UUID
	Action      model.NotificationType
	EntityID    *db.UUID
	EntityTitle string
	Template    MessageTemplate
}

// FanoutConsumer processes one queued fanout job, recipient by recipient.
type FanoutConsumer interface {
	ProcessFanoutJob(ctx context.Context, job model.FanoutJob) error
}
