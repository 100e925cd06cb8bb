package database

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SummaryCache keeps the rendered kitchen summary for a given day in Redis so
// repeated reads between confirmations skip the roster scan. All methods are
// safe on a nil receiver or nil client, which disables caching entirely.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client, ttl: 5 * time.Minute}
}

func (c *SummaryCache) key(day string) string {
	return "summary:" + day
}

// Get returns the cached summary payload for the day, if any.
func (c *SummaryCache) Get(ctx context.Context, day string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(day)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores the summary payload for the day. Failures are ignored; the
// cache is an optimization, never a source of truth.
func (c *SummaryCache) Set(ctx context.Context, day string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, c.key(day), payload, c.ttl).Err()
}

// Invalidate drops the cached summary for the day. Called after every
// confirmation and roster mutation.
func (c *SummaryCache) Invalidate(ctx context.Context, day string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key(day)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
