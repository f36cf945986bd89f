package mock

import (
	"context"
	"os"

	"github.com/streamhive/streams-ms-go/internal/port"
)

// MediaProcessor implements port.MediaProcessor for tests. When CreateOutputs
// is set, Transcode and ExtractFrame write placeholder files so pipeline
// cleanup logic has something real to delete.
type MediaProcessor struct {
	DurationOut   float64
	CreateOutputs bool

	TranscodeErr error
	ProbeErr     error
	ExtractErr   error

	TranscodeCalls int
	ProbeCalls     int
	ExtractCalls   int
	ExtractOffset  float64
	TranscodedTo   string
	ExtractedTo    string
}

var _ port.MediaProcessor = (*MediaProcessor)(nil)

func (m *MediaProcessor) Transcode(ctx context.Context, inputPath, outputPath string) error {
	m.TranscodeCalls++
	if m.TranscodeErr != nil {
		return m.TranscodeErr
	}
	m.TranscodedTo = outputPath
	if m.CreateOutputs {
		if err := os.WriteFile(outputPath, []byte("video"), 0o600); err != nil {
			return err
		}
	}
	return nil
}

func (m *MediaProcessor) ProbeDuration(ctx context.Context, path string) (float64, error) {
	m.ProbeCalls++
	if m.ProbeErr != nil {
		return 0, m.ProbeErr
	}
	return m.DurationOut, nil
}

func (m *MediaProcessor) ExtractFrame(ctx context.Context, videoPath, imagePath string, offsetSeconds float64) error {
	m.ExtractCalls++
	m.ExtractOffset = offsetSeconds
	if m.ExtractErr != nil {
		return m.ExtractErr
	}
	m.ExtractedTo = imagePath
	if m.CreateOutputs {
		if err := os.WriteFile(imagePath, []byte("frame"), 0o600); err != nil {
			return err
		}
	}
	return nil
}
