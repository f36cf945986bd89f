package presign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/streamhive/streams-ms-go/internal/mock"
	"github.com/streamhive/streams-ms-go/internal/model"
)

func TestRefresh_ExpiredWindowRegeneratesOnce(t *testing.T) {
	strg := &mock.Storage{}
	r := NewRefresher(strg)

	ref := model.ObjectReference{Bucket: "thumbnails", Key: "abc.webp"}
	stale := model.AccessWindow{URL: "https://old", ExpiresAt: time.Now().Add(-time.Minute)}

	got, changed := r.Refresh(context.Background(), ref, stale)
	if !changed {
		t.Fatal("expected a regenerated window")
	}
	if got.URL != "https://example.com/download" {
		t.Errorf("URL = %q; want the freshly minted one", got.URL)
	}
	if !got.ExpiresAt.After(time.Now()) {
		t.Errorf("ExpiresAt = %v; want strictly after now", got.ExpiresAt)
	}
	if n := strg.GenerateDownloadLinkCalls; n != 1 {
		t.Errorf("regeneration calls = %d; want exactly 1", n)
	}
	if strg.TTL != DownloadURLTTL {
		t.Errorf("presign TTL = %v; want %v", strg.TTL, DownloadURLTTL)
	}
}

func TestRefresh_FreshWindowUntouched(t *testing.T) {
	strg := &mock.Storage{}
	r := NewRefresher(strg)

	ref := model.ObjectReference{Bucket: "vods", Key: "v.mp4"}
	fresh := model.AccessWindow{URL: "https://current", ExpiresAt: time.Now().Add(2 * time.Hour)}

	got, changed := r.Refresh(context.Background(), ref, fresh)
	if changed {
		t.Fatal("window outside the refresh threshold must not be regenerated")
	}
	if got != fresh {
		t.Errorf("window = %+v; want unchanged %+v", got, fresh)
	}
	if strg.GenerateDownloadLinkCalls != 0 {
		t.Errorf("regeneration calls = %d; want 0", strg.GenerateDownloadLinkCalls)
	}
}

func TestRefresh_WithinThresholdRegenerates(t *testing.T) {
	strg := &mock.Storage{}
	r := NewRefresher(strg)

	ref := model.ObjectReference{Bucket: "vods", Key: "v.mp4"}
	closing := model.AccessWindow{URL: "https://current", ExpiresAt: time.Now().Add(30 * time.Minute)}

	if _, changed := r.Refresh(context.Background(), ref, closing); !changed {
		t.Fatal("window inside the refresh threshold must be regenerated")
	}
}

func TestRefresh_FailureKeepsStaleURL(t *testing.T) {
	strg := &mock.Storage{GenerateDownloadLinkErr: errors.New("minio down")}
	r := NewRefresher(strg)

	ref := model.ObjectReference{Bucket: "vods", Key: "v.mp4"}
	stale := model.AccessWindow{URL: "https://stale", ExpiresAt: time.Now().Add(-time.Hour)}

	got, changed := r.Refresh(context.Background(), ref, stale)
	if changed {
		t.Fatal("failed regeneration must not report a change")
	}
	if got != stale {
		t.Errorf("window = %+v; want the stale one back", got)
	}
}

func TestRefresh_ZeroReferenceIsNoop(t *testing.T) {
	strg := &mock.Storage{}
	r := NewRefresher(strg)

	if _, changed := r.Refresh(context.Background(), model.ObjectReference{}, model.AccessWindow{}); changed {
		t.Fatal("no object reference, nothing to refresh")
	}
	if strg.GenerateDownloadLinkCalls != 0 {
		t.Errorf("regeneration calls = %d; want 0", strg.GenerateDownloadLinkCalls)
	}
}
