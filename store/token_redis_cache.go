package store

import (
	"context"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
)

const revokedPrefix = "revoked:"

type TokenRedisCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
}

func NewTokenRedisCache(client *redis.Client, tracer trace.Tracer, logger *logrus.Logger) domain.TokenCache {
	return &TokenRedisCache{
		client:  client,
		breaker: CircuitBreaker("token-cache", logger),
		tracer:  tracer,
	}
}

// Revoke marks the token id as revoked until its natural expiry. A token with
// no lifetime left needs no entry.
func (cache *TokenRedisCache) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	ctx, span := cache.tracer.Start(ctx, "TokenRedisCache.Revoke")
	defer span.End()

	if ttl <= 0 {
		return nil
	}

	client := cache.client.WithContext(ctx)
	_, err := cache.breaker.Execute(func() (interface{}, error) {
		return nil, client.Set(revokedPrefix+tokenID, "1", ttl).Err()
	})
	if err != nil {
		span.SetStatus(codes.Error, "Error revoking token")
		return err
	}
	return nil
}

func (cache *TokenRedisCache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, span := cache.tracer.Start(ctx, "TokenRedisCache.IsRevoked")
	defer span.End()

	client := cache.client.WithContext(ctx)
	result, err := cache.breaker.Execute(func() (interface{}, error) {
		return client.Exists(revokedPrefix + tokenID).Result()
	})
	if err != nil {
		span.SetStatus(codes.Error, "Error reading revocation list")
		return false, err
	}
	return result.(int64) > 0, nil
}

func CircuitBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("circuit breaker changed state")
			},
		},
	)
}
