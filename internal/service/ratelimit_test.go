package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/oreumshop/commerce-api/pkg/apperror"
)

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	allowed, err := CheckAndSetRateLimit(context.Background(), nil, uuid.New(), "like", time.Second)
	assert.NoError(t, err)
	assert.True(t, allowed)

	ttl, err := GetRateLimitTTL(context.Background(), nil, uuid.New(), "like")
	assert.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestRateLimitErrorMapsTo429(t *testing.T) {
	err := rateLimitError(context.Background(), nil, uuid.New(), "chat")
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
	assert.Equal(t, http.StatusTooManyRequests, apperror.MapErrorToStatus(err))
}
