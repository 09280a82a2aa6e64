package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/ingredient/model"
	"foodgram-backend/internal/domains/ingredient/repository"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/pkg/cache"
)

const cacheKeyPrefix = "ingredients:"

type ingredientService struct {
	repo     repository.Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewIngredientService(repo repository.Repository, c cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &ingredientService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func searchCacheKey(prefix string) string {
	return cacheKeyPrefix + "search:" + prefix
}

func (s *ingredientService) Search(ctx context.Context, name string) ([]*model.Ingredient, error) {
	prefix := strings.ToLower(strings.TrimSpace(name))
	key := searchCacheKey(prefix)

	// Cache lỗi không làm hỏng request, chỉ log và đọc DB
	if s.cache != nil {
		var cached []*model.Ingredient
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("ingredient cache read failed")
		} else if found {
			return cached, nil
		}
	}

	items, err := s.repo.Search(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("ingredient cache write failed")
		}
	}
	return items, nil
}

func (s *ingredientService) GetByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrIngredientNotFound) {
			return nil, model.NewIngredientNotFoundError()
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return item, nil
}

func (s *ingredientService) Import(ctx context.Context, items []model.SeedIngredient) (int64, error) {
	clean := make([]model.SeedIngredient, 0, len(items))
	for i, item := range items {
		item = item.Normalize()
		if err := item.Validate(); err != nil {
			return 0, apperror.FromValidation(model.ErrCodeInvalidIngredient, fmt.Errorf("item %d: %w", i, err))
		}
		clean = append(clean, item)
	}

	n, err := s.repo.BulkCreate(ctx, clean)
	if err != nil {
		return 0, fmt.Errorf("import ingredients: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, cacheKeyPrefix+"*"); err != nil {
			log.Warn().Err(err).Msg("ingredient cache invalidation failed")
		}
	}
	return n, nil
}
