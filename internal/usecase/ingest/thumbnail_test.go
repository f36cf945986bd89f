package ingest

import (
	"math"
	"testing"
)

func TestThumbnailOffset(t *testing.T) {
	tests := []struct {
		name       string
		duration   float64
		wantOffset float64
		wantZero   bool
	}{
		{"long video", 12.4, 5, false},
		{"exactly five seconds", 5, 5, false},
		{"short video", 3, 1, false},
		{"exactly one second", 1, 1, false},
		{"sub-second video", 0.5, 0.05, false},
		{"tiny video clamps to first millisecond", 0.005, 0.001, false},
		{"zero duration", 0, 0.001, true},
		{"negative duration treated as zero", -1, 0.001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, zero := ThumbnailOffset(tt.duration)
			if math.Abs(offset-tt.wantOffset) > 1e-9 {
				t.Errorf("offset = %v; want %v", offset, tt.wantOffset)
			}
			if zero != tt.wantZero {
				t.Errorf("zeroLength = %v; want %v", zero, tt.wantZero)
			}
		})
	}
}
