package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/shared/viewer"
)

// present load mọi dữ liệu liên quan cho cả trang bằng vài query batch
// rồi build representation cho từng recipe
func (s *recipeService) present(ctx context.Context, v viewer.Context, recipes []*model.Recipe) ([]model.RecipeResponse, error) {
	out := make([]model.RecipeResponse, 0, len(recipes))
	if len(recipes) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	seenAuthor := make(map[uuid.UUID]bool, len(recipes))
	for _, rec := range recipes {
		ids = append(ids, rec.ID)
		if !seenAuthor[rec.AuthorID] {
			seenAuthor[rec.AuthorID] = true
			authorIDs = append(authorIDs, rec.AuthorID)
		}
	}

	var (
		rel model.Related
		err error
	)
	if rel.Tags, err = s.repo.TagsFor(ctx, ids); err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	if rel.Ingredients, err = s.repo.IngredientsFor(ctx, ids); err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	if rel.Authors, err = s.authors.GetByIDs(ctx, authorIDs); err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	if !v.IsAnonymous() {
		if rel.Subscribed, err = s.authors.FollowingSet(ctx, *v.UserID, authorIDs); err != nil {
			return nil, fmt.Errorf("load follows: %w", err)
		}
		if rel.Favorited, err = s.repo.RelationSet(ctx, model.RelationFavorite, *v.UserID, ids); err != nil {
			return nil, fmt.Errorf("load favorites: %w", err)
		}
		if rel.InCart, err = s.repo.RelationSet(ctx, model.RelationShoppingCart, *v.UserID, ids); err != nil {
			return nil, fmt.Errorf("load shopping cart: %w", err)
		}
	}

	for _, rec := range recipes {
		out = append(out, rec.ToResponse(rel))
	}
	return out, nil
}

func (s *recipeService) presentOne(ctx context.Context, v viewer.Context, rec *model.Recipe) (*model.RecipeResponse, error) {
	out, err := s.present(ctx, v, []*model.Recipe{rec})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
