package presign

import (
	"context"
	"log"
	"time"

	"github.com/streamhive/streams-ms-go/internal/model"
	"github.com/streamhive/streams-ms-go/internal/port"
)

const (
	// RefreshThreshold is how close to expiry a window may get before any read
	// path regenerates it.
	RefreshThreshold = time.Hour
	// DownloadURLTTL is the lifetime of every minted access window.
	DownloadURLTTL = 24 * time.Hour
)

// Refresher implements the refresh-on-read contract shared by every stored
// media object: regenerate the access window when it is unset or inside the
// refresh threshold, otherwise leave it alone. Regeneration failure is logged
// and the stale window returned, so reads stay available.
type Refresher struct {
	strg port.Storage
}

// compile-time check: *Refresher must satisfy port.URLRefresher
var _ port.URLRefresher = (*Refresher)(nil)

func NewRefresher(strg port.Storage) *Refresher {
	return &Refresher{strg: strg}
}

func (r *Refresher) Refresh(ctx context.Context, ref model.ObjectReference, current model.AccessWindow) (model.AccessWindow, bool) {
	if ref.IsZero() {
		return current, false
	}
	if !current.ExpiresWithin(RefreshThreshold) {
		return current, false
	}

	url, err := r.strg.GeneratePresignedDownloadURL(ctx, ref.Bucket, ref.Key, DownloadURLTTL)
	if err != nil {
		log.Printf("presigned URL refresh failed for %q in bucket %q, keeping stale URL: %v", ref.Key, ref.Bucket, err)
		return current, false
	}

	return model.AccessWindow{URL: url, ExpiresAt: time.Now().Add(DownloadURLTTL)}, true
}
