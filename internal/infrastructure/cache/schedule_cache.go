package cache

import (
	"context"
	"credit-engine/internal/domain/amortization"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const scheduleKeyPrefix = "schedule:v1"

type redisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

var _ redisStore = (*redis.Client)(nil)

// ScheduleCache stores computed amortization schedules keyed by their terms.
type ScheduleCache struct {
	store  redisStore
	ttl    time.Duration
	logger *slog.Logger
}

func NewScheduleCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ScheduleCache {
	return newScheduleCache(client, ttl, logger)
}

func newScheduleCache(store redisStore, ttl time.Duration, logger *slog.Logger) *ScheduleCache {
	return &ScheduleCache{
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "ScheduleCache"),
	}
}

func ScheduleKey(t amortization.Terms) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		scheduleKeyPrefix,
		strconv.FormatFloat(t.Principal, 'f', -1, 64),
		strconv.FormatFloat(t.AnnualRatePercent, 'f', -1, 64),
		t.TermMonths,
	)
}

// Get reports a miss with a nil error when the key is absent.
func (c *ScheduleCache) Get(ctx context.Context, t amortization.Terms) ([]amortization.PaymentEntry, bool, error) {
	key := ScheduleKey(t)
	raw, err := c.store.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var schedule []amortization.PaymentEntry
	if err := json.Unmarshal(raw, &schedule); err != nil {
		c.logger.WarnContext(ctx, "Discarding undecodable cached schedule", "key", key, "error", err)
		return nil, false, nil
	}
	if len(schedule) != t.TermMonths {
		c.logger.WarnContext(ctx, "Discarding cached schedule with wrong length", "key", key, "entries", len(schedule))
		return nil, false, nil
	}
	return schedule, true, nil
}

func (c *ScheduleCache) Set(ctx context.Context, t amortization.Terms, schedule []amortization.PaymentEntry) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	key := ScheduleKey(t)
	if err := c.store.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
