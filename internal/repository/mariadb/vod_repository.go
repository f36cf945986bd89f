package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

type VODRepository struct {
	db *sql.DB
}

// compile-time check: *VODRepository must satisfy port.VODRepository
var _ port.VODRepository = (*VODRepository)(nil)

func NewVODRepository(db *sql.DB) *VODRepository {
	return &VODRepository{db: db}
}

func (r *VODRepository) Create(ctx context.Context, v *model.VOD) error {
	log.Printf("creating database record for VOD #%s...", v.ID)

	const query = `
      INSERT INTO vods
        (id, owner_id, session_id, title, description, category_id, video_key, video_url, video_url_expires_at, thumbnail_key, thumbnail_url, thumbnail_url_expires_at, duration_seconds, view_count)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.OwnerID, v.SessionID,
		v.Title, v.Description, v.CategoryID,
		v.VideoKey, v.VideoURL, v.VideoURLExpiresAt,
		v.ThumbnailKey, v.ThumbnailURL, v.ThumbnailURLExpiresAt,
		v.DurationSeconds, v.ViewCount,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VODRepository) Update(ctx context.Context, v *model.VOD) (db.UpdateResult, error) {
	log.Printf("updating database record for VOD #%s...", v.ID)

	const query = `
      UPDATE vods
      SET
        title                    = ?,
        description              = ?,
        category_id              = ?,
        video_url                = ?,
        video_url_expires_at     = ?,
        thumbnail_key            = ?,
        thumbnail_url            = ?,
        thumbnail_url_expires_at = ?
      WHERE id = ?
    `
	res, err := r.db.ExecContext(ctx, query,
		v.Title,
		v.Description,
		v.CategoryID,
		v.VideoURL,
		v.VideoURLExpiresAt,
		v.ThumbnailKey,
		v.ThumbnailURL,
		v.ThumbnailURLExpiresAt,
		v.ID, // WHERE clause
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

func (r *VODRepository) GetByID(ctx context.Context, id db.UUID) (*model.VOD, error) {
	log.Printf("fetching VOD #%s from the database...", id)

	const query = `
      SELECT id, owner_id, session_id, title, description, category_id, video_key, video_url, video_url_expires_at, thumbnail_key, thumbnail_url, thumbnail_url_expires_at, duration_seconds, view_count, created_at, updated_at
      FROM vods
      WHERE id = ?
    `
	var v model.VOD
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.OwnerID, &v.SessionID,
		&v.Title, &v.Description, &v.CategoryID,
		&v.VideoKey, &v.VideoURL, &v.VideoURLExpiresAt,
		&v.ThumbnailKey, &v.ThumbnailURL, &v.ThumbnailURLExpiresAt,
		&v.DurationSeconds, &v.ViewCount,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &v, nil
}

// IncrementViewCount bumps the counter in place so concurrent reads never lose
// an increment to a stale read-modify-write.
func (r *VODRepository) IncrementViewCount(ctx context.Context, id db.UUID) (db.UpdateResult, error) {
	const query = `UPDATE vods SET view_count = view_count + 1 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return db.UpdateResult{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return db.UpdateResult{}, err
	}
	return db.UpdateResult{RowsAffected: affected}, nil
}
