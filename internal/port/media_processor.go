package port

import "context"

// MediaProcessor invokes the external media-processing toolchain. Every call
// runs an out-of-process subprocess; failures carry the captured diagnostic
// output of the tool.
type MediaProcessor interface {
	// Transcode re-encodes inputPath into a canonical playback container at
	// outputPath. Implementations first attempt a stream-copy remux and fall
	// back to a full re-encode once.
	Transcode(ctx context.Context, inputPath, outputPath string) error
	// ProbeDuration returns the container duration in fractional seconds.
	ProbeDuration(ctx context.Context, path string) (float64, error)
	// ExtractFrame writes a single frame taken at offsetSeconds to imagePath.
	ExtractFrame(ctx context.Context, videoPath, imagePath string, offsetSeconds float64) error
}
