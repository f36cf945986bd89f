package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/streamhive/streams-ms-go/internal/port"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return port.ErrObjectNotFound
	case "NoSuchBucket":
		return port.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return port.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", port.ErrInternal, err)
	}
}
