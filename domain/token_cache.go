package domain

import (
	"context"
	"time"
)

// TokenCache is the revocation list for issued tokens, keyed by token id.
type TokenCache interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
