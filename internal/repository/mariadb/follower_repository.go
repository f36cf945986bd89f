package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// FollowerRepository reads the social graph owned by the users service. It only
// ever queries, never writes: follows and users belong to another service.
type FollowerRepository struct {
	db *sql.DB
}

// compile-time checks
var (
	_ port.FollowerLookup = (*FollowerRepository)(nil)
	_ port.UserDirectory  = (*FollowerRepository)(nil)
)

func NewFollowerRepository(db *sql.DB) *FollowerRepository {
	return &FollowerRepository{db: db}
}

func (r *FollowerRepository) ListFollowerIDs(ctx context.Context, userID db.UUID) ([]db.UUID, error) {
	log.Printf("listing followers of user #%s...", userID)

	const query = `
      SELECT follower_id
      FROM follows
      WHERE followee_id = ?
      ORDER BY created_at ASC
    `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []db.UUID
	for rows.Next() {
		var id db.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *FollowerRepository) GetUsername(ctx context.Context, userID db.UUID) (string, error) {
	const query = `SELECT username FROM users WHERE id = ?`

	var username string
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&username); err != nil {
		return "", err
	}

	return username, nil
}
