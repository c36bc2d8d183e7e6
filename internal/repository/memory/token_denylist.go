package memory

import (
	"context"
	"time"

	"notekeeper-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type TokenDenylist struct {
	cache *cache.Cache
}

// NewTokenDenylist keeps revoked token ids in process memory. Entries expire with the token,
// and expired items are purged every 10 minutes.
func NewTokenDenylist() *TokenDenylist {
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &TokenDenylist{
		cache: c,
	}
}

var _ contract.TokenDenylist = (*TokenDenylist)(nil)

func (r *TokenDenylist) Revoke(_ context.Context, tokenId string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, the verifier rejects it anyway.
		return nil
	}
	r.cache.Set(tokenId, struct{}{}, ttl)
	return nil
}

func (r *TokenDenylist) IsRevoked(_ context.Context, tokenId string) (bool, error) {
	_, found := r.cache.Get(tokenId)
	return found, nil
}
