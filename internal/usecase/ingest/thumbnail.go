package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/streamhive/streams-ms-go/internal/compressor"
	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/usecase/presign"
)

// ThumbnailOffset returns the frame-extraction timestamp for a video of the
// given duration. The second return value reports a zero-length video, where
// the earliest possible frame is attempted as a last resort.
func ThumbnailOffset(duration float64) (float64, bool) {
	switch {
	case duration >= 5:
		return 5, false
	case duration >= 1:
		return 1, false
	case duration > 0:
		offset := duration * 0.1
		if offset < 0.001 {
			offset = 0.001
		}
		return offset, false
	default:
		return 0.001, true
	}
}

// resolvedThumbnail is the outcome of one resolution strategy. localPath is
// non-empty when the image was freshly extracted and still needs uploading.
type resolvedThumbnail struct {
	ref         model.ObjectReference
	window      model.AccessWindow
	localPath   string
	contentType string
}

type thumbnailStrategy struct {
	name string
	run  func(ctx context.Context, sess *model.StreamSession, videoPath string, duration float64, ledger *cleanupLedger) (*resolvedThumbnail, error)
}

// resolveThumbnail walks the ordered strategy chain and takes the first
// success. Every strategy failing is non-fatal: the VOD proceeds without a
// thumbnail.
func (s *ingestSrv) resolveThumbnail(ctx context.Context, sess *model.StreamSession, videoPath string, duration float64, ledger *cleanupLedger) *resolvedThumbnail {
	strategies := []thumbnailStrategy{
		{name: "reuse-session-thumbnail", run: s.reuseSessionThumbnail},
		{name: "extract-frame", run: s.extractFrame},
	}

	for _, st := range strategies {
		res, err := st.run(ctx, sess, videoPath, duration, ledger)
		if err != nil {
			log.Printf("thumbnail strategy %q failed: %v", st.name, err)
			continue
		}
		if res != nil {
			return res
		}
	}
	log.Printf("no thumbnail could be resolved for session #%s, proceeding without one", sess.ID)
	return nil
}

// reuseSessionThumbnail mints a fresh access window for the session's existing
// thumbnail object, with no re-upload. Returns nil when the session has none.
func (s *ingestSrv) reuseSessionThumbnail(ctx context.Context, sess *model.StreamSession, videoPath string, duration float64, ledger *cleanupLedger) (*resolvedThumbnail, error) {
	ref, ok := sess.ThumbnailRef(s.thumbBucket)
	if !ok {
		return nil, nil
	}

	exists, err := s.strg.FileExists(ctx, ref.Bucket, ref.Key)
	if err != nil {
		return nil, fmt.Errorf("could not stat session thumbnail %q: %w", ref.Key, err)
	}
	if !exists {
		return nil, fmt.Errorf("session thumbnail %q is gone from storage", ref.Key)
	}

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, ref.Bucket, ref.Key, presign.DownloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("could not mint access window for session thumbnail %q: %w", ref.Key, err)
	}

	return &resolvedThumbnail{
		ref:    ref,
		window: model.AccessWindow{URL: url, ExpiresAt: timeNow().Add(presign.DownloadURLTTL)},
	}, nil
}

// extractFrame pulls a single frame out of the transcoded video at a
// duration-dependent timestamp and re-encodes it as WebP when possible.
func (s *ingestSrv) extractFrame(ctx context.Context, sess *model.StreamSession, videoPath string, duration float64, ledger *cleanupLedger) (*resolvedThumbnail, error) {
	offset, zeroLength := ThumbnailOffset(duration)
	if zeroLength {
		log.Printf("video %q reports zero duration, attempting earliest possible frame", videoPath)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	imgPath := filepath.Join(s.tmpDir, base+"_thumb.jpg")

	if err := s.proc.ExtractFrame(ctx, videoPath, imgPath, offset); err != nil {
		return nil, err
	}
	ledger.register(imgPath, true)

	res := &resolvedThumbnail{localPath: imgPath, contentType: "image/jpeg"}

	// re-encode to webp; keep the raw frame if that fails
	if webpPath, err := reencodeToWebP(imgPath); err != nil {
		log.Printf("webp re-encode of %q failed, keeping raw frame: %v", imgPath, err)
	} else {
		ledger.register(webpPath, true)
		res.localPath = webpPath
		res.contentType = "image/webp"
	}

	return res, nil
}

func reencodeToWebP(imgPath string) (string, error) {
	f, err := os.Open(imgPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	data, err := compressor.CompressThumbnail(f)
	if err != nil {
		return "", err
	}

	webpPath := strings.TrimSuffix(imgPath, filepath.Ext(imgPath)) + ".webp"
	if err := os.WriteFile(webpPath, data, 0o600); err != nil {
		return "", err
	}
	return webpPath, nil
}
