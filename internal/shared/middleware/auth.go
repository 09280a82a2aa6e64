package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/shared/response"
	"foodgram-backend/pkg/jwt"
)

const (
	ContextUserID      = "userID"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiresAt"
)

// TokenValidator là phần của jwt.Manager middleware cần
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// RevocationChecker trả true nếu jti đã bị logout
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// OptionalAuth gắn userID vào context nếu có Bearer token hợp lệ.
// Không có header → anonymous. Header sai/token hỏng → 401.
func OptionalAuth(tokens TokenValidator, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if !authenticate(c, tokens, revoked) {
			return
		}
		c.Next()
	}
}

// RequireAuth bắt buộc phải có Bearer token hợp lệ
func RequireAuth(tokens TokenValidator, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); ok {
			c.Next()
			return
		}
		if c.GetHeader("Authorization") == "" {
			response.Unauthorized(c, "Authentication credentials were not provided")
			return
		}
		if !authenticate(c, tokens, revoked) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens TokenValidator, revoked RevocationChecker) bool {
	// 1. Extract token từ "Bearer <token>"
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		response.Unauthorized(c, "Invalid authorization header format")
		return false
	}

	// 2. Verify và parse JWT
	claims, err := tokens.ValidateAccessToken(parts[1])
	if err != nil {
		response.Unauthorized(c, "Invalid token")
		return false
	}

	// 3. Token đã logout?
	if revoked != nil && claims.ID != "" {
		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Redis lỗi thì vẫn cho qua, chỉ log
			log.Warn().Err(err).Str("request_id", c.GetString(ContextRequestID)).Msg("token blocklist unavailable")
		} else if isRevoked {
			response.Unauthorized(c, "Token has been revoked")
			return false
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "Invalid token")
		return false
	}

	c.Set(ContextUserID, userID)
	c.Set(ContextTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ContextTokenExpiry, claims.ExpiresAt.Time)
	}
	return true
}

// CurrentUserID đọc userID đã được auth middleware set
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
