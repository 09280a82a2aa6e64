package service

import (
	"context"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/ingredient/model"
)

type ServiceInterface interface {
	// Search: prefix search theo name, có cache
	Search(ctx context.Context, name string) ([]*model.Ingredient, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)

	// Import nạp danh sách seed (dùng bởi cmd/loaddata), invalidate cache
	Import(ctx context.Context, items []model.SeedIngredient) (int64, error)
}
