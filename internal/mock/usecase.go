package mock

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// FanoutProducer implements port.FanoutProducer for tests.
type FanoutProducer struct {
	Err    error
	Inputs []port.NotifyFollowersInput
}

var _ port.FanoutProducer = (*FanoutProducer)(nil)

func (m *FanoutProducer) NotifyFollowers(ctx context.Context, in port.NotifyFollowersInput) error {
	if m.Err != nil {
		return m.Err
	}
	m.Inputs = append(m.Inputs, in)
	return nil
}

// URLRefresher implements port.URLRefresher for tests.
type URLRefresher struct {
	WindowOut model.AccessWindow
	Changed   bool

	Calls int
	Refs  []model.ObjectReference
}

var _ port.URLRefresher = (*URLRefresher)(nil)

func (m *URLRefresher) Refresh(ctx context.Context, ref model.ObjectReference, current model.AccessWindow) (model.AccessWindow, bool) {
	m.Calls++
	m.Refs = append(m.Refs, ref)
	if !m.Changed {
		return current, false
	}
	return m.WindowOut, true
}

// RealtimePush implements port.RealtimePush for tests.
type RealtimePush struct {
	Err error
	// fail Send for these recipients only
	FailFor map[db.UUID]error

	Sent []db.UUID
}

var _ port.RealtimePush = (*RealtimePush)(nil)

func (m *RealtimePush) Send(ctx context.Context, userID db.UUID, payload any) error {
	if m.Err != nil {
		return m.Err
	}
	if err, ok := m.FailFor[userID]; ok {
		return err
	}
	m.Sent = append(m.Sent, userID)
	return nil
}

// RecordingIngester implements port.RecordingIngester for tests.
type RecordingIngester struct {
	VODOut *model.VOD
	Err    error

	Inputs []port.IngestInput
}

var _ port.RecordingIngester = (*RecordingIngester)(nil)

func (m *RecordingIngester) Ingest(ctx context.Context, in port.IngestInput) (*model.VOD, error) {
	m.Inputs = append(m.Inputs, in)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.VODOut, nil
}
