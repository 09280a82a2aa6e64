package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/recipe/repository"
	"foodgram-backend/internal/shared"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/viewer"
)

type relationService struct {
	repo repository.Repository
}

func NewRelationService(repo repository.Repository) RelationServiceInterface {
	return &relationService{repo: repo}
}

// Add: recipe phải tồn tại (404), cặp (user, recipe) chưa có (409)
func (s *relationService) Add(ctx context.Context, v viewer.Context, rel model.Relation, recipeID uuid.UUID) (*shared.ShortRecipe, error) {
	if v.IsAnonymous() {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}

	rec, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return nil, model.NewRecipeNotFoundError()
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	exists, err := s.repo.RelationExists(ctx, rel, *v.UserID, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", rel, err)
	}
	if exists {
		return nil, model.NewRelationExistsError(rel)
	}

	// Unique constraint là nguồn sự thật khi hai request chạy đồng thời
	if err := s.repo.AddRelation(ctx, rel, *v.UserID, rec.ID); err != nil {
		if errors.Is(err, model.ErrRelationExists) {
			return nil, model.NewRelationExistsError(rel)
		}
		return nil, fmt.Errorf("add %s: %w", rel, err)
	}

	log.Debug().
		Str("user_id", v.UserID.String()).
		Str("recipe_id", rec.ID.String()).
		Str("relation", rel.String()).
		Msg("relation added")

	short := rec.ToShort()
	return &short, nil
}

// Remove: không có dòng nào → 404
func (s *relationService) Remove(ctx context.Context, v viewer.Context, rel model.Relation, recipeID uuid.UUID) error {
	if v.IsAnonymous() {
		return apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}

	if err := s.repo.RemoveRelation(ctx, rel, *v.UserID, recipeID); err != nil {
		if errors.Is(err, model.ErrRelationNotFound) {
			return model.NewRelationNotFoundError(rel)
		}
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	return nil
}

func (s *relationService) ShoppingList(ctx context.Context, v viewer.Context) ([]string, error) {
	if v.IsAnonymous() {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}

	lines, err := s.repo.CartLines(ctx, *v.UserID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return AggregateShoppingList(lines), nil
}
