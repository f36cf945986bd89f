package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/streamhive/streams-ms-go/internal/port"
)

// FFmpegRunner shells out to ffmpeg/ffprobe for every operation. Each call is
// its own subprocess so the CPU-bound work never shares a scheduling context
// with request handling.
type FFmpegRunner struct {
	ffmpegPath  string
	ffprobePath string
}

// compile-time check: *FFmpegRunner must satisfy port.MediaProcessor
var _ port.MediaProcessor = (*FFmpegRunner)(nil)

func NewFFmpegRunner(ffmpegPath, ffprobePath string) *FFmpegRunner {
	return &FFmpegRunner{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// runCommand is swapped out in tests.
var runCommand = func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Transcode re-muxes inputPath into an MP4 container at outputPath. The first
// attempt is a fast stream copy; if the source codecs cannot be copied it
// retries once with a full re-encode. Failure after the retry is fatal.
func (r *FFmpegRunner) Transcode(ctx context.Context, inputPath, outputPath string) error {
	log.Printf("transcoding %q to %q (stream copy)...", inputPath, outputPath)

	_, diag, err := runCommand(ctx, r.ffmpegPath,
		"-y",
		"-i", inputPath,
		"-c", "copy",
		"-movflags", "+faststart",
		outputPath,
	)
	if err == nil {
		return nil
	}
	log.Printf("stream copy of %q failed, retrying with full re-encode: %v: %s", inputPath, err, diag)

	// discard whatever the failed attempt left behind
	if rmErr := os.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
		log.Printf("could not remove partial output %q: %v", outputPath, rmErr)
	}

	_, diag, err = runCommand(ctx, r.ffmpegPath,
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		outputPath,
	)
	if err != nil {
		return fmt.Errorf("re-encode of %q failed: %w: %s", inputPath, err, diag)
	}
	return nil
}

// ProbeDuration returns the container duration of path in fractional seconds.
func (r *FFmpegRunner) ProbeDuration(ctx context.Context, path string) (float64, error) {
	log.Printf("probing duration of %q...", path)

	out, diag, err := runCommand(ctx, r.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe of %q failed: %w: %s", path, err, diag)
	}

	raw := strings.TrimSpace(string(out))
	dur, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse duration %q of %q: %w", raw, path, err)
	}
	return dur, nil
}

// ExtractFrame writes the frame at offsetSeconds of videoPath to imagePath.
func (r *FFmpegRunner) ExtractFrame(ctx context.Context, videoPath, imagePath string, offsetSeconds float64) error {
	ts := FormatTimestamp(offsetSeconds)
	log.Printf("extracting frame at %s from %q to %q...", ts, videoPath, imagePath)

	_, diag, err := runCommand(ctx, r.ffmpegPath,
		"-y",
		"-ss", ts,
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		imagePath,
	)
	if err != nil {
		return fmt.Errorf("frame extraction from %q at %s failed: %w: %s", videoPath, ts, err, diag)
	}
	return nil
}

// FormatTimestamp renders fractional seconds as HH:MM:SS.mmm for ffmpeg args.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(seconds*1000 + 0.5)
	h := millis / 3_600_000
	millis -= h * 3_600_000
	m := millis / 60_000
	millis -= m * 60_000
	s := millis / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
