package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type SessionRepository struct {
	db *sql.DB
}

// compile-time check: *SessionRepository must satisfy port.SessionRepository
var _ port.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, owner_id, stream_key, title, description, category_id, status, start_time, end_time, viewer_count, thumbnail_key, thumbnail_url, thumbnail_url_expires_at, created_at, updated_at`

func (r *SessionRepository) Create(ctx context.Context, sess *model.StreamSession) error {
	log.Printf("creating database record for session #%s...", sess.ID)

	const query = `
      INSERT INTO stream_sessions
        (id, owner_id, stream_key, title, description, category_id, status, start_time, end_time, viewer_count, thumbnail_key, thumbnail_url, thumbnail_url_expires_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		sess.ID, sess.OwnerID, sess.StreamKey,
		sess.Title, sess.Description, sess.CategoryID,
		sess.Status, sess.StartTime, sess.EndTime, sess.ViewerCount,
		sess.ThumbnailKey, sess.ThumbnailURL, sess.ThumbnailURLExpiresAt,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *SessionRepository) Update(ctx context.Context, sess *model.StreamSession) (db.UpdateResult, error) {
	log.Printf("updating database record for session #%s, with status %q...", sess.ID, sess.Status)

	const query = `
      UPDATE stream_sessions
      SET
        title                    = ?,
        description              = ?,
        category_id              = ?,
        status                   = ?,
        start_time               = ?,
        end_time                 = ?,
        viewer_count             = ?,
        thumbnail_key            = ?,
        thumbnail_url            = ?,
        thumbnail_url_expires_at = ?
      WHERE id = ?
    `
	res, err := r.db.ExecContext(ctx, query,
		sess.Title,
		sess.Description,
		sess.CategoryID,
		sess.Status,
		sess.StartTime,
		sess.EndTime,
		sess.ViewerCount,
		sess.ThumbnailKey,
		sess.ThumbnailURL,
		sess.ThumbnailURLExpiresAt,
		sess.ID, // WHERE clause
	)
	if err != nil {
		return db.UpdateResult{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return db.UpdateResult{}, err
	}
	return db.UpdateResult{RowsAffected: affected}, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id db.UUID) (*model.StreamSession, error) {
	log.Printf("fetching session #%s from the database...", id)

	const query = `
      SELECT ` + sessionColumns + `
      FROM stream_sessions
      WHERE id = ?
    `
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SessionRepository) GetByStreamKey(ctx context.Context, streamKey string) (*model.StreamSession, error) {
	log.Printf("fetching session for stream key %q from the database...", streamKey)

	const query = `
      SELECT ` + sessionColumns + `
      FROM stream_sessions
      WHERE stream_key = ?
    `
	return r.scanSession(r.db.QueryRowContext(ctx, query, streamKey))
}

func (r *SessionRepository) scanSession(row *sql.Row) (*model.StreamSession, error) {
	var sess model.StreamSession
	if err := row.Scan(
		&sess.ID, &sess.OwnerID, &sess.StreamKey,
		&sess.Title, &sess.Description, &sess.CategoryID,
		&sess.Status, &sess.StartTime, &sess.EndTime, &sess.ViewerCount,
		&sess.ThumbnailKey, &sess.ThumbnailURL, &sess.ThumbnailURLExpiresAt,
		&sess.CreatedAt, &sess.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &sess, nil
}
