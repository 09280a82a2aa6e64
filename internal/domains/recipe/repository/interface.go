package repository

import (
	"context"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/recipe/model"
	tagmodel "foodgram-backend/internal/domains/tag/model"
)

type Repository interface {
	// ========================================
	// RECIPES
	// ========================================

	// Create insert recipe cùng toàn bộ ingredients và tags trong một transaction
	Create(ctx context.Context, recipe *model.Recipe, ingredients []model.IngredientAmount, tagIDs []uuid.UUID) error
	// Update thay recipe row và thay toàn bộ ingredients/tags trong một transaction
	Update(ctx context.Context, recipe *model.Recipe, ingredients []model.IngredientAmount, tagIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	// List mới nhất trước, trả kèm tổng số recipe khớp filter
	List(ctx context.Context, filter model.ListFilter, offset, limit int) ([]*model.Recipe, int, error)

	// ========================================
	// BATCH LOADERS (một query cho cả trang)
	// ========================================

	IngredientsFor(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]model.RecipeIngredient, error)
	TagsFor(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]*tagmodel.Tag, error)
	// RelationSet trả tập recipeIDs mà user có quan hệ rel
	RelationSet(ctx context.Context, rel model.Relation, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	// ========================================
	// FAVORITES / SHOPPING CART
	// ========================================

	RelationExists(ctx context.Context, rel model.Relation, userID, recipeID uuid.UUID) (bool, error)
	// AddRelation trả ErrRelationExists khi vi phạm unique
	AddRelation(ctx context.Context, rel model.Relation, userID, recipeID uuid.UUID) error
	// RemoveRelation trả ErrRelationNotFound khi không có dòng nào bị xoá
	RemoveRelation(ctx context.Context, rel model.Relation, userID, recipeID uuid.UUID) error

	// CartLines trả từng ingredient của từng recipe trong cart, chưa gộp
	CartLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error)
}
