package store

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func unreachableCache(t *testing.T) *TokenRedisCache {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  0,
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewTokenRedisCache(client, tracer, logger).(*TokenRedisCache)
}

func TestRevokeWithoutLifetimeSkipsRedis(t *testing.T) {
	cache := unreachableCache(t)

	assert.NoError(t, cache.Revoke(context.Background(), "jti", 0))
	assert.NoError(t, cache.Revoke(context.Background(), "jti", -time.Second))
}

func TestBreakerOpensWhenRedisIsDown(t *testing.T) {
	cache := unreachableCache(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cache.IsRevoked(ctx, "jti")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	err := cache.Revoke(ctx, "jti", time.Minute)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, gobreaker.StateOpen, cache.breaker.State())
}
