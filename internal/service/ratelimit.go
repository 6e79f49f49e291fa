package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oreumshop/commerce-api/pkg/apperror"
)

// CheckAndSetRateLimit reserves a per-user action slot. Returns false when
// the user already holds one. A nil client disables limiting (tests, single
// node deployments without redis).
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// GetRateLimitTTL reports how long the user's slot is still held.
func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	key := fmt.Sprintf("rate_limit:user:%s:%s", userID.String(), action)
	return rdb.TTL(ctx, key).Result()
}

// rateLimitError builds the 429 response, including the remaining hold time
// when redis can report it.
func rateLimitError(ctx context.Context, rdb *redis.Client, userID uuid.UUID, action string) error {
	ttl, err := GetRateLimitTTL(ctx, rdb, userID, action)
	if err != nil || ttl <= 0 {
		return apperror.ErrRateLimitExceeded
	}
	return apperror.New(
		http.StatusTooManyRequests,
		fmt.Sprintf("rate limit exceeded, retry in %s", ttl.Round(time.Second)),
		apperror.ErrRateLimitExceeded,
	)
}
