package counter

import (
	"context"

	"github.com/streamhive/streams-ms-go/internal/port"
)

// Noop is used when no counter store is configured; every count reads as zero.
type Noop struct{}

var _ port.ViewerCounter = (*Noop)(nil)

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Increment(ctx context.Context, streamKey string) int64 { return 0 }
func (n *Noop) Decrement(ctx context.Context, streamKey string) int64 { return 0 }
func (n *Noop) Get(ctx context.Context, streamKey string) int64       { return 0 }
func (n *Noop) Reset(ctx context.Context, streamKey string)           {}
