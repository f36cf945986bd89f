package counter

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// KeyTTL is refreshed on every counter touch so abandoned keys expire on
// their own even if the terminal reset is never delivered.
const KeyTTL = 24 * time.Hour

type ViewerCounter struct {
	client *redis.Client
}

// compile-time check: *ViewerCounter must satisfy port.ViewerCounter
var _ port.ViewerCounter = (*ViewerCounter)(nil)

func NewViewerCounter(addr, password string) *ViewerCounter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &ViewerCounter{client: rdb}
}

// Increment atomically adds one viewer and refreshes the TTL. Store failures
// degrade to zero: viewer counts are telemetry, not a ledger.
func (c *ViewerCounter) Increment(ctx context.Context, streamKey string) int64 {
	key := counterKey(streamKey)

	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("viewer counter incr failed for %q: %v", streamKey, err)
		return 0
	}
	c.refreshTTL(ctx, key)
	return n
}

// Decrement atomically removes one viewer, clamping the count at zero.
func (c *ViewerCounter) Decrement(ctx context.Context, streamKey string) int64 {
	key := counterKey(streamKey)

	n, err := c.client.Decr(ctx, key).Result()
	if err != nil {
		log.Printf("viewer counter decr failed for %q: %v", streamKey, err)
		return 0
	}
	if n < 0 {
		// disconnects can outnumber connects across restarts; force back to zero
		if err := c.client.Set(ctx, key, 0, KeyTTL).Err(); err != nil {
			log.Printf("viewer counter clamp failed for %q: %v", streamKey, err)
		}
		return 0
	}
	c.refreshTTL(ctx, key)
	return n
}

// Get returns the current count, or zero if the key is absent or the store is
// unreachable.
func (c *ViewerCounter) Get(ctx context.Context, streamKey string) int64 {
	n, err := c.client.Get(ctx, counterKey(streamKey)).Int64()
	if err != nil {
		if err != redis.Nil {
			log.Printf("viewer counter get failed for %q: %v", streamKey, err)
		}
		return 0
	}
	return n
}

// Reset sets the count to zero with a fresh TTL.
func (c *ViewerCounter) Reset(ctx context.Context, streamKey string) {
	if err := c.client.Set(ctx, counterKey(streamKey), 0, KeyTTL).Err(); err != nil {
		log.Printf("viewer counter reset failed for %q: %v", streamKey, err)
	}
}

func (c *ViewerCounter) refreshTTL(ctx context.Context, key string) {
	if err := c.client.Expire(ctx, key, KeyTTL).Err(); err != nil {
		log.Printf("viewer counter expire failed for %q: %v", key, err)
	}
}

func counterKey(streamKey string) string {
	return "viewers:" + streamKey
}
