package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/domains/user/service"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/viewer"
)

// UserHandler xử lý HTTP requests cho user domain (profile, auth, subscriptions)
type UserHandler struct {
	users       service.UserServiceInterface
	follows     service.FollowServiceInterface
	pageSize    int
	maxPageSize int
}

func NewUserHandler(users service.UserServiceInterface, follows service.FollowServiceInterface, pageSize, maxPageSize int) *UserHandler {
	return &UserHandler{
		users:       users,
		follows:     follows,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Location", "/api/users/"+user.ID.String())
	response.Success(c, http.StatusCreated, user)
}

// Login POST /api/auth/token/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, token)
}

// Logout POST /api/auth/token/logout
func (h *UserHandler) Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenID)
	expiresAt := c.GetTime(middleware.ContextTokenExpiry)
	if expiresAt.IsZero() {
		expiresAt = time.Now()
	}

	if err := h.users.Logout(c.Request.Context(), tokenID, expiresAt); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	p := paging.FromQuery(c, h.pageSize, h.maxPageSize)

	users, total, err := h.users.List(c.Request.Context(), viewer.FromGin(c), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, users, p.Meta(total))
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), viewer.FromGin(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), viewer.FromGin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ========================================
// SUBSCRIPTION ENDPOINTS
// ========================================

// Subscriptions GET /api/users/subscriptions?recipes_limit=
func (h *UserHandler) Subscriptions(c *gin.Context) {
	p := paging.FromQuery(c, h.pageSize, h.maxPageSize)

	subs, total, err := h.follows.Subscriptions(c.Request.Context(), viewer.FromGin(c), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, subs, p.Meta(total))
}

// Subscribe POST /api/users/:id/subscribe
func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	sub, err := h.follows.Subscribe(c.Request.Context(), viewer.FromGin(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

// Unsubscribe DELETE /api/users/:id/subscribe
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.follows.Unsubscribe(c.Request.Context(), viewer.FromGin(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}
