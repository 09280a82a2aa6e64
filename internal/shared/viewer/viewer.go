package viewer

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodgram-backend/internal/shared/middleware"
)

// Context là thông tin per-request mà representation builders cần.
// Được tạo ở handler và truyền tường minh xuống service/presenter.
type Context struct {
	// UserID nil nghĩa là anonymous
	UserID *uuid.UUID
	// RecipesLimit giới hạn số recipe lồng trong subscription; nil = không giới hạn
	RecipesLimit *int
}

func Anonymous() Context {
	return Context{}
}

func ForUser(id uuid.UUID) Context {
	return Context{UserID: &id}
}

func (v Context) IsAnonymous() bool {
	return v.UserID == nil
}

// Is báo viewer có phải user id không
func (v Context) Is(id uuid.UUID) bool {
	return v.UserID != nil && *v.UserID == id
}

// FromGin đọc user từ auth middleware và recipes_limit từ query.
// recipes_limit không hợp lệ hoặc < 0 bị bỏ qua.
func FromGin(c *gin.Context) Context {
	var v Context
	if id, ok := middleware.CurrentUserID(c); ok {
		v.UserID = &id
	}
	if raw := c.Query("recipes_limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			v.RecipesLimit = &n
		}
	}
	return v
}

// Flags là tập id mà viewer có quan hệ (subscribed, favorited, in cart),
// được repository load theo batch cho cả một trang. Flags nil luôn trả false.
type Flags map[uuid.UUID]bool

func (f Flags) Has(id uuid.UUID) bool {
	return f[id]
}
