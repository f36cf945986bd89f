package storage

import (
	"context"
	"errors"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/streamhive/streams-ms-go/internal/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	client minioClient
	useSSL bool
}

// compile-time check: *MinioStorage must satisfy port.Storage
var _ port.Storage = (*MinioStorage)(nil)

func NewStorage(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStorage, error) {
	log.Println("initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, useSSL: useSSL}, nil
}

func (s *MinioStorage) InitBucket(bucket string) error {
	ok, err := s.client.BucketExists(context.Background(), bucket)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		log.Printf("bucket %q does not exist, creating it...", bucket)
		if err := s.client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	log.Printf("saving file %q into bucket %q...", fileKey, bucket)

	putOpts := minio.PutObjectOptions{}
	if ct := opts["Content-Type"]; ct != "" {
		putOpts.ContentType = ct
	}

	_, err := s.client.PutObject(ctx, bucket, fileKey, reader, fileSize, putOpts)
	if err != nil {
		return mapMinioErr(err)
	}
	return nil
}

func (s *MinioStorage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	log.Printf("generating a presigned download link for file %q in bucket %q...", fileKey, bucket)

	presignedURL, err := s.client.PresignedGetObject(ctx, bucket, fileKey, expiry, url.Values{})
	if err != nil {
		return "", mapMinioErr(err)
	}

	return presignedURL.String(), nil
}

func (s *MinioStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	log.Printf("checking if file %q exists in bucket %q...", fileKey, bucket)

	_, err := s.StatFile(ctx, bucket, fileKey)
	if errors.Is(err, port.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	log.Printf("getting stats on file %q in bucket %q...", fileKey, bucket)

	info, err := s.client.StatObject(ctx, bucket, fileKey, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (s *MinioStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	log.Printf("removing file %q from bucket %q...", fileKey, bucket)

	err := s.client.RemoveObject(ctx, bucket, fileKey, minio.RemoveObjectOptions{})
	return mapMinioErr(err)
}
