package repository

import (
	"context"

	"github.com/google/uuid"

	"foodgram-backend/internal/domains/user/model"
)

type Repository interface {
	// ========================================
	// USERS
	// ========================================

	// Create trả ErrEmailAlreadyExists / ErrUsernameExists khi vi phạm unique
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByIDs bỏ qua id không tồn tại
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.User, error)
	// List sắp xếp theo username, trả kèm tổng số user
	List(ctx context.Context, offset, limit int) ([]*model.User, int, error)

	// ========================================
	// FOLLOWS
	// ========================================

	// CreateFollow trả ErrAlreadyFollowing nếu cặp (user, author) đã tồn tại
	CreateFollow(ctx context.Context, userID, authorID uuid.UUID) error
	// DeleteFollow trả true nếu có dòng bị xoá
	DeleteFollow(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	// FollowingSet trả tập authorIDs mà userID đang theo dõi
	FollowingSet(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	// ListFollowing trả các author userID theo dõi, mới theo dõi trước
	ListFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.User, int, error)

	// RecipesByAuthors load recipes của nhiều author trong một query, mới nhất trước.
	// limit nil = không giới hạn; Total luôn là tổng số recipe của author.
	RecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit *int) (map[uuid.UUID]model.AuthorRecipes, error)
}
