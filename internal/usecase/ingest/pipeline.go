package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/usecase/notification"
	"github.com/streamhive/streams-ms-go/internal/usecase/presign"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

type ingestSrv struct {
	sessions port.SessionRepository
	vods     port.VODRepository
	strg     port.Storage
	proc     port.MediaProcessor
	producer port.FanoutProducer
	newUUID  port.UUIDGen

	vodBucket   string
	thumbBucket string
	tmpDir      string
}

// NewRecordingIngester constructs a port.RecordingIngester implementation.
func NewRecordingIngester(
	sessions port.SessionRepository,
	vods port.VODRepository,
	strg port.Storage,
	proc port.MediaProcessor,
	producer port.FanoutProducer,
	newUUID port.UUIDGen,
	vodBucket, thumbBucket, tmpDir string,
) port.RecordingIngester {
	return &ingestSrv{
		sessions:    sessions,
		vods:        vods,
		strg:        strg,
		proc:        proc,
		producer:    producer,
		newUUID:     newUUID,
		vodBucket:   vodBucket,
		thumbBucket: thumbBucket,
		tmpDir:      tmpDir,
	}
}

// Ingest runs the recording-to-VOD pipeline: validate, transcode, probe,
// resolve thumbnail, upload, persist, notify, cleanup. The DB row is the last
// step, after every upload succeeded; a persist failure deletes the uploaded
// objects before propagating. Temp files are removed regardless of outcome.
func (s *ingestSrv) Ingest(ctx context.Context, in port.IngestInput) (*model.VOD, error) {
	log.Printf("ingesting recording %q for stream key %q...", in.RecordingPath, in.StreamKey)

	ledger := newCleanupLedger()
	defer ledger.cleanup()

	// 1. validate
	sess, err := s.validate(ctx, in, ledger)
	if err != nil {
		return nil, err
	}

	// 2. transcode to the canonical playback container
	videoPath := filepath.Join(s.tmpDir, fmt.Sprintf("%d_%s.mp4", timeNow().UnixNano(), in.StreamKey))
	if err := s.proc.Transcode(ctx, in.RecordingPath, videoPath); err != nil {
		return nil, fmt.Errorf("transcode of %q failed: %w", in.RecordingPath, err)
	}
	ledger.register(videoPath, true)

	// 3. probe duration
	duration, err := s.proc.ProbeDuration(ctx, videoPath)
	if err != nil {
		return nil, fmt.Errorf("duration probe of %q failed: %w", videoPath, err)
	}

	// 4. resolve thumbnail, first success wins; no thumbnail is not fatal
	thumb := s.resolveThumbnail(ctx, sess, videoPath, duration, ledger)

	// 5. upload video (+ freshly extracted thumbnail) to durable storage
	videoKey, videoWindow, err := s.uploadAssets(ctx, in, videoPath, thumb)
	if err != nil {
		return nil, err
	}

	// 6. persist; roll back uploaded objects if the row cannot be created
	v, err := s.persist(ctx, sess, in, videoKey, videoWindow, thumb, duration)
	if err != nil {
		return nil, err
	}

	// 7. notify followers; failures never roll back the VOD
	s.notify(ctx, sess, v)

	log.Printf("ingested recording %q into vod #%s (%.1fs)", in.RecordingPath, v.ID, duration)
	return v, nil
}

func (s *ingestSrv) validate(ctx context.Context, in port.IngestInput, ledger *cleanupLedger) (*model.StreamSession, error) {
	if _, err := os.Stat(in.RecordingPath); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrRecordingNotFound, in.RecordingPath)
	}
	// tracked for visibility; the caller owns the raw recording's lifecycle
	ledger.register(in.RecordingPath, false)

	sess, err := s.sessions.GetByStreamKey(ctx, in.StreamKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: stream key %q", ErrSessionNotFound, in.StreamKey)
		}
		return nil, err
	}
	if sess.OwnerID == (db.UUID{}) {
		return nil, fmt.Errorf("%w: session #%s", ErrSessionUnowned, sess.ID)
	}
	return sess, nil
}

// uploadAssets sends the transcoded video and, when freshly extracted, the
// thumbnail to durable storage as one logical operation: if the thumbnail
// upload fails after the video went up, the video object is deleted again.
func (s *ingestSrv) uploadAssets(ctx context.Context, in port.IngestInput, videoPath string, thumb *resolvedThumbnail) (string, model.AccessWindow, error) {
	videoKey := objectKey(in.OriginalFilename, ".mp4")
	if err := s.uploadFile(ctx, s.vodBucket, videoKey, videoPath, "video/mp4"); err != nil {
		return "", model.AccessWindow{}, fmt.Errorf("video upload failed: %w", err)
	}

	videoURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.vodBucket, videoKey, presign.DownloadURLTTL)
	if err != nil {
		s.rollbackObject(ctx, s.vodBucket, videoKey)
		return "", model.AccessWindow{}, fmt.Errorf("could not mint access window for video %q: %w", videoKey, err)
	}
	videoWindow := model.AccessWindow{URL: videoURL, ExpiresAt: timeNow().Add(presign.DownloadURLTTL)}

	if thumb != nil && thumb.localPath != "" {
		thumbKey := objectKey(filepath.Base(thumb.localPath), "")
		if err := s.uploadFile(ctx, s.thumbBucket, thumbKey, thumb.localPath, thumb.contentType); err != nil {
			s.rollbackObject(ctx, s.vodBucket, videoKey)
			return "", model.AccessWindow{}, fmt.Errorf("thumbnail upload failed: %w", err)
		}
		thumb.ref = model.ObjectReference{Bucket: s.thumbBucket, Key: thumbKey}

		thumbURL, err := s.strg.GeneratePresignedDownloadURL(ctx, s.thumbBucket, thumbKey, presign.DownloadURLTTL)
		if err != nil {
			s.rollbackObject(ctx, s.thumbBucket, thumbKey)
			s.rollbackObject(ctx, s.vodBucket, videoKey)
			return "", model.AccessWindow{}, fmt.Errorf("could not mint access window for thumbnail %q: %w", thumbKey, err)
		}
		thumb.window = model.AccessWindow{URL: thumbURL, ExpiresAt: timeNow().Add(presign.DownloadURLTTL)}
	}

	return videoKey, videoWindow, nil
}

func (s *ingestSrv) persist(ctx context.Context, sess *model.StreamSession, in port.IngestInput, videoKey string, videoWindow model.AccessWindow, thumb *resolvedThumbnail, duration float64) (*model.VOD, error) {
	v := &model.VOD{
		ID:              s.newUUID(),
		OwnerID:         sess.OwnerID,
		SessionID:       &sess.ID,
		Title:           vodTitle(sess, in.OriginalFilename),
		Description:     sess.Description,
		CategoryID:      sess.CategoryID,
		VideoKey:        videoKey,
		DurationSeconds: duration,
		CreatedAt:       timeNow(),
		UpdatedAt:       timeNow(),
	}
	v.SetVideoWindow(videoWindow)
	if thumb != nil {
		v.ThumbnailKey = &thumb.ref.Key
		v.SetThumbnailWindow(thumb.window)
	}

	if err := s.vods.Create(ctx, v); err != nil {
		s.rollbackObject(ctx, s.vodBucket, videoKey)
		if thumb != nil && thumb.localPath != "" {
			// only a freshly uploaded thumbnail belongs to this run
			s.rollbackObject(ctx, s.thumbBucket, thumb.ref.Key)
		}
		return nil, fmt.Errorf("could not persist vod for session #%s: %w", sess.ID, err)
	}
	return v, nil
}

func (s *ingestSrv) notify(ctx context.Context, sess *model.StreamSession, v *model.VOD) {
	in := port.NotifyFollowersInput{
		ActorID:     sess.OwnerID,
		Action:      model.NotificationNewVOD,
		EntityID:    &v.ID,
		EntityTitle: v.Title,
		Template:    notification.NewVODMessage,
	}
	if err := s.producer.NotifyFollowers(ctx, in); err != nil {
		log.Printf("new_vod fanout failed for vod #%s: %v", v.ID, err)
	}
}

func (s *ingestSrv) uploadFile(ctx context.Context, bucket, key, path, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	return s.strg.SaveFile(ctx, bucket, key, f, info.Size(), map[string]string{
		"Content-Type": contentType,
	})
}

func (s *ingestSrv) rollbackObject(ctx context.Context, bucket, key string) {
	if err := s.strg.RemoveFile(ctx, bucket, key); err != nil {
		log.Printf("rollback of object %q in bucket %q failed: %v", key, bucket, err)
	}
}

// objectKey composes a globally-unique storage key from a timestamp and the
// original name, so concurrent uploads never collide.
func objectKey(name, forceExt string) string {
	base := filepath.Base(name)
	if forceExt != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + forceExt
	}
	return fmt.Sprintf("%d_%s", timeNow().UnixNano(), base)
}

func vodTitle(sess *model.StreamSession, originalFilename string) string {
	if sess.Title != nil && *sess.Title != "" {
		return *sess.Title
	}
	name := filepath.Base(originalFilename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
