package mariadb

import (
	"context"
	"database/sql"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type NotificationRepository struct {
	db *sql.DB
}

// compile-time check: *NotificationRepository must satisfy port.NotificationRepository
var _ port.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	const query = `
      INSERT INTO notifications
        (id, owner_id, actor_id, type, entity_id, message, is_read)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.OwnerID, n.ActorID,
		n.Type, n.EntityID, n.Message, n.Read,
	)
	if err != nil {
		return err
	}

	return nil
}
