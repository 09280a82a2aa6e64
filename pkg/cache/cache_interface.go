package cache

import (
	"context"
	"time"
)

// Cache là contract cho cache layer (Redis ở production, map trong tests)
type Cache interface {
	// Get đọc key và unmarshal vào dest.
	// found = false nghĩa là cache miss, dest giữ nguyên
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu value (JSON) với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xoá mọi key khớp glob pattern, vd "ingredients:*"
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
