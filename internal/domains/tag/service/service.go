package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/tag/model"
	"foodgram-backend/internal/domains/tag/repository"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/pkg/cache"
)

const cacheKeyAll = "tags:all"

type ServiceInterface interface {
	List(ctx context.Context) ([]*model.Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	// Import tạo các tag seed; tag đã tồn tại được bỏ qua
	Import(ctx context.Context, items []model.SeedTag) (int, error)
}

type tagService struct {
	repo     repository.Repository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewTagService(repo repository.Repository, c cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &tagService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

func (s *tagService) List(ctx context.Context) ([]*model.Tag, error) {
	if s.cache != nil {
		var cached []*model.Tag
		found, err := s.cache.Get(ctx, cacheKeyAll, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("tag cache read failed")
		} else if found {
			return cached, nil
		}
	}

	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyAll, tags, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("tag cache write failed")
		}
	}
	return tags, nil
}

func (s *tagService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTagNotFound) {
			return nil, model.NewTagNotFoundError()
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Import(ctx context.Context, items []model.SeedTag) (int, error) {
	created := 0
	for _, item := range items {
		item = item.Normalize()
		if err := item.Validate(); err != nil {
			return created, apperror.FromValidation(model.ErrCodeTagInvalid, err)
		}

		tag := &model.Tag{ID: uuid.New(), Name: item.Name, Color: item.Color, Slug: item.Slug}
		if err := s.repo.Create(ctx, tag); err != nil {
			if errors.Is(err, model.ErrTagExists) {
				log.Info().Str("slug", item.Slug).Msg("tag already exists, skipped")
				continue
			}
			return created, fmt.Errorf("create tag %s: %w", item.Slug, err)
		}
		created++
	}

	if created > 0 && s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKeyAll); err != nil {
			log.Warn().Err(err).Msg("tag cache invalidation failed")
		}
	}
	return created, nil
}
