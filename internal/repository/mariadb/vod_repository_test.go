package mariadb

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
)

func TestVODRepository_Create_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVODRepository(sqlDB)

	sessionID := db.NewUUID()
	v := &model.VOD{
		ID:              db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")),
		OwnerID:         db.NewUUID(),
		SessionID:       &sessionID,
		Title:           "Friday speedrun",
		VideoKey:        "1700000000_abc123.mp4",
		DurationSeconds: 123.4,
	}

	mock.ExpectExec("INSERT INTO vods").
		WithArgs(
			v.ID,
			v.OwnerID,
			v.SessionID,
			v.Title,
			v.Description,
			v.CategoryID,
			v.VideoKey,
			v.VideoURL,
			v.VideoURLExpiresAt,
			v.ThumbnailKey,
			v.ThumbnailURL,
			v.ThumbnailURLExpiresAt,
			v.DurationSeconds,
			v.ViewCount,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), v); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVODRepository_Create_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVODRepository(sqlDB)

	v := &model.VOD{ID: db.NewUUID(), OwnerID: db.NewUUID(), VideoKey: "key.mp4"}

	mock.ExpectExec("INSERT INTO vods").
		WillReturnError(errors.New("db.Exec failed"))

	err = repo.Create(context.Background(), v)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVODRepository_GetByID_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVODRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	ownerID := db.NewUUID()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "session_id",
		"title", "description", "category_id",
		"video_key", "video_url", "video_url_expires_at",
		"thumbnail_key", "thumbnail_url", "thumbnail_url_expires_at",
		"duration_seconds", "view_count",
		"created_at", "updated_at",
	}).AddRow(
		mockID, ownerID, nil,
		"Friday speedrun", nil, nil,
		"1700000000_abc123.mp4", nil, nil,
		nil, nil, nil,
		123.4, 7,
		now, now,
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vods")).
		WithArgs(mockID).
		WillReturnRows(rows)

	v, err := repo.GetByID(context.Background(), mockID)
	if err != nil {
		t.Fatalf("GetByID() returned unexpected error: %v", err)
	}
	if v.DurationSeconds != 123.4 {
		t.Errorf("DurationSeconds = %v; want 123.4", v.DurationSeconds)
	}
	if v.ViewCount != 7 {
		t.Errorf("ViewCount = %d; want 7", v.ViewCount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestVODRepository_IncrementViewCount(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewVODRepository(sqlDB)

	mockID := db.NewUUID()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE vods SET view_count = view_count + 1 WHERE id = ?`)).
		WithArgs(mockID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := repo.IncrementViewCount(context.Background(), mockID)
	if err != nil {
		t.Errorf("IncrementViewCount() returned unexpected error: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Errorf("RowsAffected = %d; want 1", res.RowsAffected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
