package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/viewer"
)

type UserServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	// Logout thu hồi token (jti) tới khi nó tự hết hạn
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error

	Get(ctx context.Context, v viewer.Context, id uuid.UUID) (*model.UserResponse, error)
	Me(ctx context.Context, v viewer.Context) (*model.UserResponse, error)
	List(ctx context.Context, v viewer.Context, p paging.Params) ([]model.UserResponse, int, error)
}

type FollowServiceInterface interface {
	Subscribe(ctx context.Context, v viewer.Context, authorID uuid.UUID) (*model.SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, v viewer.Context, authorID uuid.UUID) error
	Subscriptions(ctx context.Context, v viewer.Context, p paging.Params) ([]model.SubscriptionResponse, int, error)
}

// TokenIssuer là phần của jwt.Manager service cần
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, time.Time, error)
}

// TokenRevoker ghi jti vào blocklist
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}
