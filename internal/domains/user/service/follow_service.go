package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/domains/user/repository"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/viewer"
)

type followService struct {
	repo repository.Repository
}

func NewFollowService(repo repository.Repository) FollowServiceInterface {
	return &followService{repo: repo}
}

// Subscribe: author phải tồn tại, không tự theo dõi, không trùng
func (s *followService) Subscribe(ctx context.Context, v viewer.Context, authorID uuid.UUID) (*model.SubscriptionResponse, error) {
	if v.IsAnonymous() {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}

	author, err := s.getAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if v.Is(author.ID) {
		return nil, model.NewSelfFollowError()
	}

	exists, err := s.repo.IsFollowing(ctx, *v.UserID, author.ID)
	if err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	if exists {
		return nil, model.NewAlreadyFollowingError()
	}

	// Hai request đồng thời: unique constraint bắt request thứ hai
	if err := s.repo.CreateFollow(ctx, *v.UserID, author.ID); err != nil {
		if errors.Is(err, model.ErrAlreadyFollowing) {
			return nil, model.NewAlreadyFollowingError()
		}
		return nil, fmt.Errorf("create follow: %w", err)
	}

	log.Info().
		Str("user_id", v.UserID.String()).
		Str("author_id", author.ID.String()).
		Msg("subscribed")

	recipes, err := s.repo.RecipesByAuthors(ctx, []uuid.UUID{author.ID}, v.RecipesLimit)
	if err != nil {
		return nil, fmt.Errorf("load author recipes: %w", err)
	}
	resp := author.ToSubscription(true, recipes[author.ID])
	return &resp, nil
}

// Unsubscribe idempotent: không có follow thì vẫn thành công
func (s *followService) Unsubscribe(ctx context.Context, v viewer.Context, authorID uuid.UUID) error {
	if v.IsAnonymous() {
		return apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}

	if _, err := s.getAuthor(ctx, authorID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteFollow(ctx, *v.UserID, authorID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if deleted {
		log.Info().
			Str("user_id", v.UserID.String()).
			Str("author_id", authorID.String()).
			Msg("unsubscribed")
	}
	return nil
}

func (s *followService) Subscriptions(ctx context.Context, v viewer.Context, p paging.Params) ([]model.SubscriptionResponse, int, error) {
	if v.IsAnonymous() {
		return nil, 0, apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}

	authors, total, err := s.repo.ListFollowing(ctx, *v.UserID, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list following: %w", err)
	}

	recipes, err := s.repo.RecipesByAuthors(ctx, userIDs(authors), v.RecipesLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("load author recipes: %w", err)
	}

	out := make([]model.SubscriptionResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToSubscription(true, recipes[a.ID]))
	}
	return out, total, nil
}

func (s *followService) getAuthor(ctx context.Context, id uuid.UUID) (*model.User, error) {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("get author: %w", err)
	}
	return author, nil
}

// ========================================
// HELPERS
// ========================================

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userIDs(users []*model.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// isSubscribed false với anonymous và khi viewer chính là user
func isSubscribed(ctx context.Context, repo repository.Repository, v viewer.Context, userID uuid.UUID) (bool, error) {
	if v.IsAnonymous() || v.Is(userID) {
		return false, nil
	}
	ok, err := repo.IsFollowing(ctx, *v.UserID, userID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return ok, nil
}

func followingSet(ctx context.Context, repo repository.Repository, v viewer.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	if v.IsAnonymous() {
		return map[uuid.UUID]bool{}, nil
	}
	set, err := repo.FollowingSet(ctx, *v.UserID, ids)
	if err != nil {
		return nil, fmt.Errorf("load follows: %w", err)
	}
	return set, nil
}
