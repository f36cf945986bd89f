package model

import (
	"time"

	"github.com/streamhive/streams-ms-go/internal/db"
)

type NotificationType string

const (
	NotificationNewFollower   NotificationType = "new_follower"
	NotificationStreamStarted NotificationType = "stream_started"
	NotificationNewVOD        NotificationType = "new_vod"
)

// Notification is one persisted inbox row for one recipient.
type Notification struct {
	ID        db.UUID          `json:"id"`
	OwnerID   db.UUID          `json:"owner_id"`
	ActorID   db.UUID          `json:"actor_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	EntityID  *db.UUID         `json:"entity_id"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

/// FanoutJob is one queued unit of notification work: a batch of up to ten
// recipients plus a denormalised snapshot of the actor and entity, so the
// consumer never re-queries either.
type FanoutJob struct {
	ActionType   NotificationType `json:"action_type"`
	ActorID      db.UUID          `json:"actor_id"`
	ActorName    string           `json:"actor_name"`
	EntityID     *db.UUID         `json:"entity_id"`
	EntityTitle  string           `json:"entity_title"`
	Message      string           `json:"message"`
	RecipientIDs []db.UUID        `json:"recipient_ids"`
}
