package redisstore

import (
	"context"
	"time"

	"notekeeper-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenDenylist shares revoked token ids between instances through redis.
type TokenDenylist struct {
	rdb *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

var _ contract.TokenDenylist = (*TokenDenylist)(nil)

func (r *TokenDenylist) Revoke(ctx context.Context, tokenId string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, revokedKeyPrefix+tokenId, 1, ttl).Err()
}

func (r *TokenDenylist) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+tokenId).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
