package mock

import (
	"context"
	"io"
	"time"

	"github.com/streamhive/streams-ms-go/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	ExistsOut   bool
	URLOut      string

	// captured inputs
	Bucket    string
	ObjectKey string
	TTL       time.Duration
	SavedSize int64
	SavedOpts map[string]string

	// per-key bookkeeping
	SavedKeys   []string
	RemovedKeys []string

	// errors
	InitBucketErr           error
	GenerateDownloadLinkErr error
	StatErr                 error
	RemoveErr               error
	SaveErr                 error
	FileExistsErr           error

	// error hook: fail SaveFile for this key only
	SaveErrForKey string

	// call counters
	InitBucketCalled          bool
	GenerateDownloadLinkCalls int
	StatCalled                bool
	RemoveCalls               int
	SaveCalls                 int
	FileExistsCalled          bool
}

var _ port.Storage = (*Storage)(nil)

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalls++
	m.Bucket = bucket
	m.ObjectKey = fileKey
	m.SavedSize = fileSize
	m.SavedOpts = opts
	if m.SaveErrForKey != "" && m.SaveErrForKey == fileKey {
		return m.SaveErr
	}
	if m.SaveErrForKey == "" && m.SaveErr != nil {
		return m.SaveErr
	}
	m.SavedKeys = append(m.SavedKeys, fileKey)
	return nil
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateDownloadLinkCalls++
	m.Bucket = bucket
	m.ObjectKey = fileKey
	m.TTL = expiry
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	if m.URLOut != "" {
		return m.URLOut, nil
	}
	return "https://example.com/download", nil
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalls++
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return nil
}
