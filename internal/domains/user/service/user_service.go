package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/domains/user/repository"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/viewer"
)

const defaultBcryptCost = 12

type userService struct {
	repo       repository.Repository
	tokens     TokenIssuer
	revoker    TokenRevoker
	bcryptCost int
}

func NewUserService(repo repository.Repository, tokens TokenIssuer, revoker TokenRevoker) UserServiceInterface {
	return &userService{
		repo:       repo,
		tokens:     tokens,
		revoker:    revoker,
		bcryptCost: defaultBcryptCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error) {
	// 1. Validate input
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(model.ErrCodeUserValidation, err)
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Persist; unique constraint quyết định trùng email/username
	u := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, model.ErrEmailAlreadyExists) || errors.Is(err, model.ErrUsernameExists) {
			return nil, model.NewUserExistsError(err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", u.ID.String()).Msg("user registered")

	resp := u.ToResponse(false)
	return &resp, nil
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(model.ErrCodeUserValidation, err)
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &model.TokenResponse{AuthToken: token, ExpiresAt: expiresAt}, nil
}

func (s *userService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ========================================
// PROFILES
// ========================================

func (s *userService) Get(ctx context.Context, v viewer.Context, id uuid.UUID) (*model.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	subscribed, err := isSubscribed(ctx, s.repo, v, u.ID)
	if err != nil {
		return nil, err
	}
	resp := u.ToResponse(subscribed)
	return &resp, nil
}

func (s *userService) Me(ctx context.Context, v viewer.Context) (*model.UserResponse, error) {
	if v.IsAnonymous() {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}
	return s.Get(ctx, v, *v.UserID)
}

func (s *userService) List(ctx context.Context, v viewer.Context, p paging.Params) ([]model.UserResponse, int, error) {
	users, total, err := s.repo.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	following, err := followingSet(ctx, s.repo, v, userIDs(users))
	if err != nil {
		return nil, 0, err
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse(following[u.ID]))
	}
	return out, total, nil
}
