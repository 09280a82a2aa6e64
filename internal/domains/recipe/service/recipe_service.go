package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/recipe/repository"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/viewer"
)

type recipeService struct {
	repo        repository.Repository
	ingredients IDChecker
	tags        IDChecker
	authors     AuthorDirectory
	images      ImageDecoder
	store       ImageStore
	minAmount   decimal.Decimal
}

func NewRecipeService(
	repo repository.Repository,
	ingredients IDChecker,
	tags IDChecker,
	authors AuthorDirectory,
	images ImageDecoder,
	store ImageStore,
	minAmount decimal.Decimal,
) RecipeServiceInterface {
	return &recipeService{
		repo:        repo,
		ingredients: ingredients,
		tags:        tags,
		authors:     authors,
		images:      images,
		store:       store,
		minAmount:   minAmount,
	}
}

// ========================================
// READ
// ========================================

func (s *recipeService) List(ctx context.Context, v viewer.Context, filter model.ListFilter, p paging.Params) ([]model.RecipeResponse, int, error) {
	// is_favorited / is_in_shopping_cart bị bỏ qua với anonymous
	filter.ViewerID = v.UserID
	if v.IsAnonymous() {
		filter.IsFavorited = false
		filter.IsInShoppingCart = false
	}

	recipes, total, err := s.repo.List(ctx, filter, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	out, err := s.present(ctx, v, recipes)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *recipeService) Get(ctx context.Context, v viewer.Context, id uuid.UUID) (*model.RecipeResponse, error) {
	rec, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.presentOne(ctx, v, rec)
}

// ========================================
// WRITE
// ========================================

func (s *recipeService) Create(ctx context.Context, v viewer.Context, req model.RecipeWriteRequest) (*model.RecipeResponse, error) {
	if v.IsAnonymous() {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}

	// 1. Validate shape + id tồn tại
	if err := s.validate(ctx, req, false); err != nil {
		return nil, err
	}
	image, err := s.decodeImage(*req.Image)
	if err != nil {
		return nil, err
	}

	// 2. Upload ảnh trước, DB lỗi thì dọn lại
	now := time.Now()
	rec := &model.Recipe{
		ID:          uuid.New(),
		AuthorID:    *v.UserID,
		Name:        *req.Name,
		Text:        *req.Text,
		CookingTime: *req.CookingTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.uploadImage(ctx, rec, image); err != nil {
		return nil, err
	}

	// 3. Persist recipe + ingredients + tags trong một transaction
	if err := s.repo.Create(ctx, rec, req.Ingredients, req.Tags); err != nil {
		s.removeImage(ctx, rec.ImageKey)
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	log.Info().
		Str("recipe_id", rec.ID.String()).
		Str("author_id", rec.AuthorID.String()).
		Msg("recipe created")

	return s.presentOne(ctx, v, rec)
}

// Update: chỉ author; tags/ingredients luôn thay toàn bộ
func (s *recipeService) Update(ctx context.Context, v viewer.Context, id uuid.UUID, req model.RecipeWriteRequest) (*model.RecipeResponse, error) {
	rec, err := s.authorize(ctx, v, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(ctx, req, true); err != nil {
		return nil, err
	}

	var image []byte
	if req.Image != nil {
		if image, err = s.decodeImage(*req.Image); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Text != nil {
		rec.Text = *req.Text
	}
	if req.CookingTime != nil {
		rec.CookingTime = *req.CookingTime
	}
	rec.UpdatedAt = time.Now()

	oldKey := rec.ImageKey
	if image != nil {
		if err := s.uploadImage(ctx, rec, image); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, rec, req.Ingredients, req.Tags); err != nil {
		if image != nil {
			s.removeImage(ctx, rec.ImageKey)
		}
		if errors.Is(err, model.ErrRecipeNotFound) {
			return nil, model.NewRecipeNotFoundError()
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	if image != nil && oldKey != "" {
		s.removeImage(ctx, oldKey)
	}

	log.Info().Str("recipe_id", rec.ID.String()).Msg("recipe updated")
	return s.presentOne(ctx, v, rec)
}

func (s *recipeService) Delete(ctx context.Context, v viewer.Context, id uuid.UUID) error {
	rec, err := s.authorize(ctx, v, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, rec.ID); err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return model.NewRecipeNotFoundError()
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	// Ảnh xoá best-effort, recipe đã bị xoá
	if err := s.store.DeleteByPrefix(ctx, imagePrefix(rec.ID)); err != nil {
		log.Warn().Err(err).Str("recipe_id", rec.ID.String()).Msg("failed to delete recipe images")
	}

	log.Info().Str("recipe_id", rec.ID.String()).Msg("recipe deleted")
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *recipeService) getRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrRecipeNotFound) {
			return nil, model.NewRecipeNotFoundError()
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return rec, nil
}

// authorize: 401 nếu anonymous, 404 nếu không có recipe, 403 nếu không phải author
func (s *recipeService) authorize(ctx context.Context, v viewer.Context, id uuid.UUID) (*model.Recipe, error) {
	if v.IsAnonymous() {
		return nil, apperror.Unauthorized("UNAUTHORIZED", "Authentication credentials were not provided")
	}
	rec, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.Is(rec.AuthorID) {
		return nil, model.NewForbiddenError()
	}
	return rec, nil
}

func (s *recipeService) validate(ctx context.Context, req model.RecipeWriteRequest, partial bool) error {
	if err := req.Validate(partial, s.minAmount); err != nil {
		return apperror.FromValidation(model.ErrCodeRecipeValidation, err)
	}

	fields := map[string]string{}

	found, err := s.ingredients.ExistingIDs(ctx, req.IngredientIDs())
	if err != nil {
		return fmt.Errorf("check ingredients: %w", err)
	}
	for _, id := range req.IngredientIDs() {
		if !found[id] {
			fields["ingredients"] = fmt.Sprintf("ingredient %s does not exist", id)
			break
		}
	}

	found, err = s.tags.ExistingIDs(ctx, req.Tags)
	if err != nil {
		return fmt.Errorf("check tags: %w", err)
	}
	for _, id := range req.Tags {
		if !found[id] {
			fields["tags"] = fmt.Sprintf("tag %s does not exist", id)
			break
		}
	}

	if len(fields) > 0 {
		return apperror.Validation(model.ErrCodeRecipeValidation, fields)
	}
	return nil
}

func (s *recipeService) decodeImage(value string) ([]byte, error) {
	data, err := s.images.PrepareDataURI(value)
	if err != nil {
		return nil, apperror.Validation(model.ErrCodeInvalidImage, map[string]string{"image": err.Error()})
	}
	return data, nil
}

func imagePrefix(recipeID uuid.UUID) string {
	return "recipes/" + recipeID.String() + "/"
}

// uploadImage ghi ảnh với key mới và cập nhật ImageURL/ImageKey của rec
func (s *recipeService) uploadImage(ctx context.Context, rec *model.Recipe, data []byte) error {
	key := imagePrefix(rec.ID) + uuid.NewString() + ".jpg"
	url, err := s.store.Upload(ctx, key, data, "image/jpeg")
	if err != nil {
		return fmt.Errorf("upload recipe image: %w", err)
	}
	rec.ImageKey = key
	rec.ImageURL = url
	return nil
}

func (s *recipeService) removeImage(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete recipe image")
	}
}
