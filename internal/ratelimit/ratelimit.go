package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter hands out per-account cooldown slots.
type Limiter interface {
	Acquire(ctx context.Context, accountID uuid.UUID, action string, window time.Duration) (bool, error)
}

type redisLimiter struct {
	rdb *redis.Client
}

func NewRedisLimiter(rdb *redis.Client) Limiter {
	return &redisLimiter{rdb: rdb}
}

func (l *redisLimiter) Acquire(ctx context.Context, accountID uuid.UUID, action string, window time.Duration) (bool, error) {
	return CheckAndSet(ctx, l.rdb, accountID, action, window)
}

// CheckAndSet acquires a per-account rate limit slot via SetNX. Returns
// false when the account is still inside the limit window. A nil client
// disables limiting (local dev without redis).
func CheckAndSet(ctx context.Context, rdb *redis.Client, accountID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:account:%s:%s", accountID.String(), action)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func TTL(ctx context.Context, rdb *redis.Client, accountID uuid.UUID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("rate_limit:account:%s:%s", accountID.String(), action)
	return rdb.TTL(ctx, key).Result()
}

func Clear(ctx context.Context, rdb *redis.Client, accountID uuid.UUID, action string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:account:%s:%s", accountID.String(), action)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
