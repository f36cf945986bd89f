package compressor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp"
)

// CompressThumbnail re-encodes an extracted video frame (JPEG/PNG/WebP) as
// lossy WebP @ quality=80 before it goes to durable storage.
func CompressThumbnail(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("compressor: failed to decode image: %w", err)
	}

	buf := &bytes.Buffer{}
	opts := &webp.Options{Quality: 80}
	if err := webp.Encode(buf, img, opts); err != nil {
		return nil, fmt.Errorf("compressor: failed to encode WebP: %w", err)
	}
	return buf.Bytes(), nil
}
