package transcoder

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{0.001, "00:00:00.001"},
		{0.05, "00:00:00.050"},
		{1, "00:00:01.000"},
		{5, "00:00:05.000"},
		{12.4, "00:00:12.400"},
		{61.25, "00:01:01.250"},
		{3723.5, "01:02:03.500"},
		{-1, "00:00:00.000"},
	}
	for _, c := range cases {
		if got := FormatTimestamp(c.seconds); got != c.want {
			t.Errorf("FormatTimestamp(%v) = %q; want %q", c.seconds, got, c.want)
		}
	}
}

func TestTranscode_StreamCopyFirst(t *testing.T) {
	var calls [][]string
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return nil, nil, nil
	}
	defer func() { runCommand = orig }()

	r := NewFFmpegRunner("ffmpeg", "ffprobe")
	if err := r.Transcode(context.Background(), "in.flv", "out.mp4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(calls))
	}
	joined := strings.Join(calls[0], " ")
	if !strings.Contains(joined, "-c copy") {
		t.Errorf("first attempt should stream-copy, got %q", joined)
	}
}

func TestTranscode_FallsBackToReencodeOnce(t *testing.T) {
	var calls [][]string
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		calls = append(calls, append([]string{name}, args...))
		if len(calls) == 1 {
			return nil, []byte("codec not supported in container"), errors.New("exit status 1")
		}
		return nil, nil, nil
	}
	defer func() { runCommand = orig }()

	r := NewFFmpegRunner("ffmpeg", "ffprobe")
	if err := r.Transcode(context.Background(), "in.flv", "out.mp4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(calls))
	}
	joined := strings.Join(calls[1], " ")
	if !strings.Contains(joined, "libx264") {
		t.Errorf("fallback should re-encode, got %q", joined)
	}
}

func TestTranscode_FatalAfterRetry(t *testing.T) {
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("broken input"), errors.New("exit status 1")
	}
	defer func() { runCommand = orig }()

	r := NewFFmpegRunner("ffmpeg", "ffprobe")
	err := r.Transcode(context.Background(), "in.flv", "out.mp4")
	if err == nil || !strings.Contains(err.Error(), "broken input") {
		t.Fatalf("expected fatal error carrying diagnostics, got %v", err)
	}
}

func TestProbeDuration(t *testing.T) {
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("12.400000\n"), nil, nil
	}
	defer func() { runCommand = orig }()

	r := NewFFmpegRunner("ffmpeg", "ffprobe")
	dur, err := r.ProbeDuration(context.Background(), "out.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 12.4 {
		t.Errorf("duration = %v; want 12.4", dur)
	}
}

func TestProbeDuration_UnparseableIsFatal(t *testing.T) {
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("N/A\n"), nil, nil
	}
	defer func() { runCommand = orig }()

	r := NewFFmpegRunner("ffmpeg", "ffprobe")
	if _, err := r.ProbeDuration(context.Background(), "out.mp4"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestExtractFrame_UsesFormattedTimestamp(t *testing.T) {
	var got []string
	orig := runCommand
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		got = append([]string{name}, args...)
		return nil, nil, nil
	}
	defer func() { runCommand = orig }()

	r := NewFFmpegRunner("ffmpeg", "ffprobe")
	if err := r.ExtractFrame(context.Background(), "out.mp4", "thumb.jpg", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "-ss 00:00:05.000") {
		t.Errorf("expected seek to 00:00:05.000, got %q", joined)
	}
}
