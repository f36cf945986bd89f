package port

import "context"

// ViewerCounter tracks live viewer counts in an expiring counter store.
//
// Viewer counts are best-effort telemetry: implementations must degrade to a
// logged no-op / zero value when the store is unreachable, and must never
// surface store errors to callers.
type ViewerCounter interface {
	// Increment atomically adds one and refreshes the key TTL.
	Increment(ctx context.Context, streamKey string) int64
	// Decrement atomically subtracts one, clamping at zero, and refreshes the TTL.
	Decrement(ctx context.Context, streamKey string) int64
	// Get returns the current count, or zero if the key is absent.
	Get(ctx context.Context, streamKey string) int64
	// Reset sets the count to zero with a fresh TTL.
	Reset(ctx context.Context, streamKey string)
}
