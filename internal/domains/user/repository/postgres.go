package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const userColumns = `u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func collectUsers(rows pgx.Rows) ([]*model.User, error) {
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ========================================
// USERS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, email, username, first_name, last_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "users_username_key" {
				return model.ErrUsernameExists
			}
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.User, error) {
	found := make(map[uuid.UUID]*model.User, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		found[u.ID] = u
	}
	return found, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]*model.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.username LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ========================================
// FOLLOWS
// ========================================

func (r *postgresRepository) CreateFollow(ctx context.Context, userID, authorID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO follows (user_id, author_id, created_at) VALUES ($1, $2, NOW())`,
		userID, authorID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrAlreadyFollowing
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteFollow(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE user_id = $1 AND author_id = $2`,
		userID, authorID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`,
		userID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) FollowingSet(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return set, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT author_id FROM follows WHERE user_id = $1 AND author_id = ANY($2)`,
		userID, authorIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load follows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan follow: %w", err)
		}
		set[id] = true
	}
	return set, rows.Err()
}

func (r *postgresRepository) ListFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count follows: %w", err)
	}

	query := `
		SELECT ` + userColumns + `
		FROM follows f
		JOIN users u ON u.id = f.author_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, u.username
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list following: %w", err)
	}

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// RecipesByAuthors dùng window function để cắt theo từng author trong một query
func (r *postgresRepository) RecipesByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit *int) (map[uuid.UUID]model.AuthorRecipes, error) {
	result := make(map[uuid.UUID]model.AuthorRecipes, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT author_id, id, name, image_url, cooking_time, total
		FROM (
			SELECT
				author_id, id, name, image_url, cooking_time,
				ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, id) AS rn,
				COUNT(*) OVER (PARTITION BY author_id) AS total
			FROM recipes
			WHERE author_id = ANY($1)
		) ranked
		WHERE $2::int IS NULL OR rn <= $2::int
		ORDER BY author_id, rn
	`

	rows, err := r.pool.Query(ctx, query, authorIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load author recipes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			authorID uuid.UUID
			recipe   shared.ShortRecipe
			total    int
		)
		if err := rows.Scan(&authorID, &recipe.ID, &recipe.Name, &recipe.Image, &recipe.CookingTime, &total); err != nil {
			return nil, fmt.Errorf("failed to scan author recipe: %w", err)
		}
		entry := result[authorID]
		entry.Recipes = append(entry.Recipes, recipe)
		entry.Total = total
		result[authorID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// recipes_limit=0 không trả dòng nào nhưng vẫn cần recipes_count
	if limit != nil && *limit == 0 {
		counts, err := r.countRecipes(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		for id, n := range counts {
			result[id] = model.AuthorRecipes{Total: n}
		}
	}
	return result, nil
}

func (r *postgresRepository) countRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT author_id, COUNT(*) FROM recipes WHERE author_id = ANY($1) GROUP BY author_id`,
		authorIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count author recipes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int, len(authorIDs))
	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan recipe count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
