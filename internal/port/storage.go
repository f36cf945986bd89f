package port

import (
	"context"
	"io"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
)

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines durable object store operations.
type Storage interface {
	InitBucket(bucket string) error
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error)
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
}

// URLRefresher regenerates an access window for an object reference when the
// current one is unset or close to expiry. The second return value reports
// whether a new window was minted; on regeneration failure the current window
// is returned unchanged with false.
type URLRefresher interface {
	Refresh(ctx context.Context, ref model.ObjectReference, current model.AccessWindow) (model.AccessWindow, bool)
}
