package mock

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// SessionRepository implements port.SessionRepository for tests.
type SessionRepository struct {
	SessionOut *model.StreamSession

	GetErr    error
	CreateErr error
	UpdateErr error

	CreatedSession *model.StreamSession
	UpdatedSession *model.StreamSession
	UpdateCalls    int
	UpdateResult   db.UpdateResult
}

var _ port.SessionRepository = (*SessionRepository)(nil)

func (m *SessionRepository) Create(ctx context.Context, sess *model.StreamSession) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.CreatedSession = sess
	return nil
}

func (m *SessionRepository) GetByID(ctx context.Context, id db.UUID) (*model.StreamSession, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.SessionOut, nil
}

func (m *SessionRepository) GetByStreamKey(ctx context.Context, streamKey string) (*model.StreamSession, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.SessionOut, nil
}

func (m *SessionRepository) Update(ctx context.Context, sess *model.StreamSession) (db.UpdateResult, error) {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return db.UpdateResult{}, m.UpdateErr
	}
	m.UpdatedSession = sess
	if m.UpdateResult.RowsAffected == 0 {
		return db.UpdateResult{RowsAffected: 1}, nil
	}
	return m.UpdateResult, nil
}

// VODRepository implements port.VODRepository for tests.
type VODRepository struct {
	VODOut *model.VOD

	GetErr       error
	CreateErr    error
	UpdateErr    error
	IncrementErr error

	CreatedVOD     *model.VOD
	UpdatedVOD     *model.VOD
	CreateCalls    int
	UpdateCalls    int
	IncrementCalls int
}

var _ port.VODRepository = (*VODRepository)(nil)

func (m *VODRepository) Create(ctx context.Context, vod *model.VOD) error {
	m.CreateCalls++
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.CreatedVOD = vod
	return nil
}

func (m *VODRepository) GetByID(ctx context.Context, id db.UUID) (*model.VOD, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.VODOut, nil
}

func (m *VODRepository) Update(ctx context.Context, vod *model.VOD) (db.UpdateResult, error) {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return db.UpdateResult{}, m.UpdateErr
	}
	m.UpdatedVOD = vod
	return db.UpdateResult{RowsAffected: 1}, nil
}

func (m *VODRepository) IncrementViewCount(ctx context.Context, id db.UUID) (db.UpdateResult, error) {
	m.IncrementCalls++
	if m.IncrementErr != nil {
		return db.UpdateResult{}, m.IncrementErr
	}
	return db.UpdateResult{RowsAffected: 1}, nil
}

// NotificationRepository implements port.NotificationRepository for tests.
type NotificationRepository struct {
	CreateErr error
	// fail Create for these recipient IDs only
	FailFor map[db.UUID]error

	Created []*model.Notification
}

var _ port.NotificationRepository = (*NotificationRepository)(nil)

func (m *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if err, ok := m.FailFor[n.OwnerID]; ok {
		return err
	}
	m.Created = append(m.Created, n)
	return nil
}

// FollowerLookup implements port.FollowerLookup and port.UserDirectory for tests.
type FollowerLookup struct {
	FollowerIDs []db.UUID
	Username    string

	ListErr     error
	UsernameErr error
}

var (
	_ port.FollowerLookup = (*FollowerLookup)(nil)
	_ port.UserDirectory  = (*FollowerLookup)(nil)
)

func (m *FollowerLookup) ListFollowerIDs(ctx context.Context, ownerID db.UUID) ([]db.UUID, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.FollowerIDs, nil
}

func (m *FollowerLookup) GetUsername(ctx context.Context, id db.UUID) (string, error) {
	if m.UsernameErr != nil {
		return "", m.UsernameErr
	}
	if m.Username == "" {
		return "streamer", nil
	}
	return m.Username, nil
}
