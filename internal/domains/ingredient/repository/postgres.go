package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/ingredient/model"
	pgdb "foodgram-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// escapeLike escape ký tự đặc biệt của LIKE để prefix do user nhập được match literal
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// searchQuery khớp idx_ingredients_name_lower (lower(name) text_pattern_ops)
const searchQuery = `
	SELECT id, name, measurement_unit
	FROM ingredients
	WHERE lower(name) LIKE lower($1) || '%'
	ORDER BY name, measurement_unit
`

func (r *postgresRepository) Search(ctx context.Context, prefix string) ([]*model.Ingredient, error) {
	rows, err := r.pool.Query(ctx, searchQuery, escapeLike(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	defer rows.Close()

	items := make([]*model.Ingredient, 0)
	for rows.Next() {
		item := &model.Ingredient{}
		if err := rows.Scan(&item.ID, &item.Name, &item.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	query := `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`

	item := &model.Ingredient{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.MeasurementUnit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	found := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT id FROM ingredients WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient id: %w", err)
		}
		found[id] = true
	}
	return found, rows.Err()
}

// BulkCreate dùng COPY trong một transaction; lỗi ở bất kỳ dòng nào → rollback toàn bộ
func (r *postgresRepository) BulkCreate(ctx context.Context, items []model.SeedIngredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	return pgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"ingredients"},
			[]string{"id", "name", "measurement_unit"},
			pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
				return []any{uuid.New(), items[i].Name, items[i].MeasurementUnit}, nil
			}),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to copy ingredients: %w", err)
		}
		return n, nil
	})
}
