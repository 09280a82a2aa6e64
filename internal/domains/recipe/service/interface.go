package service

import (
	"context"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/recipe/model"
	usermodel "foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared"
	"foodgram-backend/internal/shared/paging"
	"foodgram-backend/internal/shared/viewer"
)

type RecipeServiceInterface interface {
	List(ctx context.Context, v viewer.Context, filter model.ListFilter, p paging.Params) ([]model.RecipeResponse, int, error)
	Get(ctx context.Context, v viewer.Context, id uuid.UUID) (*model.RecipeResponse, error)
	Create(ctx context.Context, v viewer.Context, req model.RecipeWriteRequest) (*model.RecipeResponse, error)
	Update(ctx context.Context, v viewer.Context, id uuid.UUID, req model.RecipeWriteRequest) (*model.RecipeResponse, error)
	Delete(ctx context.Context, v viewer.Context, id uuid.UUID) error
}

// RelationServiceInterface quản lý favorites, shopping cart và shopping list
type RelationServiceInterface interface {
	Add(ctx context.Context, v viewer.Context, rel model.Relation, recipeID uuid.UUID) (*shared.ShortRecipe, error)
	Remove(ctx context.Context, v viewer.Context, rel model.Relation, recipeID uuid.UUID) error
	ShoppingList(ctx context.Context, v viewer.Context) ([]string, error)
}

// ========================================
// DEPENDENCIES
// ========================================

// IDChecker là phần của ingredient/tag repository dùng để kiểm tra id tồn tại
type IDChecker interface {
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

// AuthorDirectory là phần của user repository cần cho author representation
type AuthorDirectory interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*usermodel.User, error)
	FollowingSet(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// ImageStore lưu ảnh recipe, trả public URL
type ImageStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ImageDecoder đổi data URI thành JPEG đã resize
type ImageDecoder interface {
	PrepareDataURI(value string) ([]byte, error)
}
