package mock

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/port"
)

// ViewerCounter implements port.ViewerCounter for tests.
type ViewerCounter struct {
	Counts map[string]int64

	IncrementCalls int
	DecrementCalls int
	GetCalls       int
	ResetCalls     int
	ResetKeys      []string
}

var _ port.ViewerCounter = (*ViewerCounter)(nil)

func (m *ViewerCounter) ensure() {
	if m.Counts == nil {
		m.Counts = make(map[string]int64)
	}
}

func (m *ViewerCounter) Increment(ctx context.Context, streamKey string) int64 {
	m.ensure()
	m.IncrementCalls++
	m.Counts[streamKey]++
	return m.Counts[streamKey]
}

func (m *ViewerCounter) Decrement(ctx context.Context, streamKey string) int64 {
	m.ensure()
	m.DecrementCalls++
	if m.Counts[streamKey] > 0 {
		m.Counts[streamKey]--
	}
	return m.Counts[streamKey]
}

func (m *ViewerCounter) Get(ctx context.Context, streamKey string) int64 {
	m.ensure()
	m.GetCalls++
	return m.Counts[streamKey]
}

func (m *ViewerCounter) Reset(ctx context.Context, streamKey string) {
	m.ensure()
	m.ResetCalls++
	m.ResetKeys = append(m.ResetKeys, streamKey)
	m.Counts[streamKey] = 0
}
