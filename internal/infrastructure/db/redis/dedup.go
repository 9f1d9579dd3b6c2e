package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tejasoft/business-suite/internal/api/metrics"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for activity events backed by
// Redis. Key format: activity:<actor_id>:<action>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact event has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, actorID, action string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(actorID, action, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.ActivitiesDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.ActivitiesDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, actorID, action string, ts time.Time) error {
	return d.client.Set(ctx, d.key(actorID, action, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(actorID, action string, ts time.Time) string {
	return fmt.Sprintf("activity:%s:%s:%d", actorID, action, ts.UnixNano())
}
