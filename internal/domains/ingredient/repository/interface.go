package repository

import (
	"context"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/ingredient/model"
)

type Repository interface {
	// Search tìm theo prefix của name (case-insensitive), sắp xếp theo name.
	// prefix rỗng trả toàn bộ.
	Search(ctx context.Context, prefix string) ([]*model.Ingredient, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)

	// ExistingIDs trả tập các id trong ids thực sự tồn tại
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// BulkCreate insert trong một transaction, trả số dòng đã insert
	BulkCreate(ctx context.Context, items []model.SeedIngredient) (int64, error)
}
