package repository

import (
	"context"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/tag/model"
)

type Repository interface {
	// List trả toàn bộ tag theo name
	List(ctx context.Context) ([]*model.Tag, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)

	// ExistingIDs trả tập các id trong ids thực sự tồn tại
	ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	// Create insert một tag; vi phạm unique → model.ErrTagExists
	Create(ctx context.Context, tag *model.Tag) error
}
