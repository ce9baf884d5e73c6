package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"taskhub/internal/domain/model"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache keeps the per-user stats summary in Redis for a short TTL.
// The task service invalidates an owner's entry on every task write.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func statsKey(userID string) string {
	return "stats:" + userID
}

// Get reports a miss on any failure; reads degrade to the database. Only
// real errors are logged, a plain miss is not.
func (c *StatsCache) Get(ctx context.Context, userID string) (*model.TaskStats, bool) {
	data, err := c.rdb.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("stats cache read failed", "user_id", userID, "error", err)
		}
		return nil, false
	}
	var stats model.TaskStats
	if err := json.Unmarshal(data, &stats); err != nil {
		slog.Warn("stats cache entry malformed", "user_id", userID, "error", err)
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, userID string, stats *model.TaskStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey(userID), data, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, statsKey(userID)).Err()
}
