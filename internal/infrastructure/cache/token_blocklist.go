package cache

import (
	"context"
	"time"

	"foodgram-backend/pkg/cache"
)

const revokedTokenPrefix = "auth:revoked:"

// TokenBlocklist giữ jti của access token đã logout cho tới khi token hết hạn
type TokenBlocklist struct {
	cache cache.Cache
}

func NewTokenBlocklist(c cache.Cache) *TokenBlocklist {
	return &TokenBlocklist{cache: c}
}

// Revoke đánh dấu jti bị thu hồi trong ttl (thời gian còn lại của token)
func (b *TokenBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.cache.Set(ctx, revokedTokenPrefix+jti, true, ttl)
}

func (b *TokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	found, err := b.cache.Get(ctx, revokedTokenPrefix+jti, &revoked)
	if err != nil {
		return false, err
	}
	return found && revoked, nil
}
