package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/viewer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	args := m.Called(ctx, req)
	if u := args.Get(0); u != nil {
		return u.(*model.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	args := m.Called(ctx, req)
	if t := args.Get(0); t != nil {
		return t.(*model.TokenResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *mockUsers) Get(ctx context.Context, v viewer.Context, id uuid.UUID) (*model.UserResponse, error) {
	args := m.Called(ctx, v, id)
	if u := args.Get(0); u != nil {
		return u.(*model.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) Me(ctx context.Context, v viewer.Context) (*model.UserResponse, error) {
	args := m.Called(ctx, v)
	if u := args.Get(0); u != nil {
		return u.(*model.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsers) List(ctx context.Context, v viewer.Context, p paging.Params) ([]model.UserResponse, int, error) {
	args := m.Called(ctx, v, p)
	return args.Get(0).([]model.UserResponse), args.Int(1), args.Error(2)
}

type mockFollows struct {
	mock.Mock
}

func (m *mockFollows) Subscribe(ctx context.Context, v viewer.Context, authorID uuid.UUID) (*model.SubscriptionResponse, error) {
	args := m.Called(ctx, v, authorID)
	if s := args.Get(0); s != nil {
		return s.(*model.SubscriptionResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFollows) Unsubscribe(ctx context.Context, v viewer.Context, authorID uuid.UUID) error {
	return m.Called(ctx, v, authorID).Error(0)
}

func (m *mockFollows) Subscriptions(ctx context.Context, v viewer.Context, p paging.Params) ([]model.SubscriptionResponse, int, error) {
	args := m.Called(ctx, v, p)
	return args.Get(0).([]model.SubscriptionResponse), args.Int(1), args.Error(2)
}

func newRouter(h *UserHandler, auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(auth)
	r.POST("/users", h.Register)
	r.GET("/users/me", h.Me)
	r.GET("/users/subscriptions", h.Subscriptions)
	r.GET("/users/:id", h.Get)
	r.POST("/users/:id/subscribe", h.Subscribe)
	r.DELETE("/users/:id/subscribe", h.Unsubscribe)
	r.POST("/auth/token/logout", h.Logout)
	return r
}

func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Next()
	}
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscribe_SelfIsBadRequest(t *testing.T) {
	me := uuid.New()
	follows := new(mockFollows)
	follows.On("Subscribe", mock.Anything, viewer.ForUser(me), me).Return(nil, model.NewSelfFollowError())

	r := newRouter(NewUserHandler(new(mockUsers), follows, 6, 100), asUser(me))
	w := serve(r, http.MethodPost, "/users/"+me.String()+"/subscribe", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), model.ErrCodeSelfFollow)
}

func TestSubscribe_PassesRecipesLimit(t *testing.T) {
	me, author := uuid.New(), uuid.New()
	follows := new(mockFollows)
	follows.On("Subscribe", mock.Anything, mock.MatchedBy(func(v viewer.Context) bool {
		return v.RecipesLimit != nil && *v.RecipesLimit == 2
	}), author).Return(&model.SubscriptionResponse{
		UserResponse: model.UserResponse{ID: author, Username: "chef", IsSubscribed: true},
		RecipesCount: 5,
	}, nil)

	r := newRouter(NewUserHandler(new(mockUsers), follows, 6, 100), asUser(me))
	w := serve(r, http.MethodPost, "/users/"+author.String()+"/subscribe?recipes_limit=2", "")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"recipes_count":5`)
	assert.Contains(t, w.Body.String(), `"is_subscribed":true`)
}

func TestUnsubscribe_NoContent(t *testing.T) {
	me, author := uuid.New(), uuid.New()
	follows := new(mockFollows)
	follows.On("Unsubscribe", mock.Anything, viewer.ForUser(me), author).Return(nil)

	r := newRouter(NewUserHandler(new(mockUsers), follows, 6, 100), asUser(me))
	w := serve(r, http.MethodDelete, "/users/"+author.String()+"/subscribe", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	follows.AssertExpectations(t)
}

func TestMe_RoutedBeforeID(t *testing.T) {
	me := uuid.New()
	users := new(mockUsers)
	users.On("Me", mock.Anything, viewer.ForUser(me)).Return(&model.UserResponse{ID: me, Username: "me-user"}, nil)

	r := newRouter(NewUserHandler(users, new(mockFollows), 6, 100), asUser(me))
	w := serve(r, http.MethodGet, "/users/me", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "me-user")
	users.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogout_RevokesCurrentToken(t *testing.T) {
	me := uuid.New()
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	users := new(mockUsers)
	users.On("Logout", mock.Anything, "jti-42", expires).Return(nil)

	auth := func(c *gin.Context) {
		c.Set(middleware.ContextUserID, me)
		c.Set(middleware.ContextTokenID, "jti-42")
		c.Set(middleware.ContextTokenExpiry, expires)
		c.Next()
	}
	r := newRouter(NewUserHandler(users, new(mockFollows), 6, 100), auth)
	w := serve(r, http.MethodPost, "/auth/token/logout", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	users.AssertExpectations(t)
}

func TestRegister_MalformedBody(t *testing.T) {
	r := newRouter(NewUserHandler(new(mockUsers), new(mockFollows), 6, 100), func(c *gin.Context) { c.Next() })
	w := serve(r, http.MethodPost, "/users", `{"email": 42`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
