package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func key(userID uuid.UUID, action string) string {
	return fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
}

// CheckAndSet claims the cooldown window for (user, action). It returns false
// while an earlier claim is still live. A nil client always allows.
func CheckAndSet(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string, window time.Duration) (bool, error) {
	if rdb == nil || window <= 0 {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, key(userID, action), "locked", window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func TTL(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.TTL(ctx, key(userID, action)).Result()
}

func Clear(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) error {
	if rdb == nil {
		return nil
	}
	_, err := rdb.Del(ctx, key(userID, action)).Result()
	return err
}
