package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"foodgram-backend/internal/domains/recipe/model"
	tagmodel "foodgram-backend/internal/domains/tag/model"
	"foodgram-backend/internal/shared/utils"
	pgdb "foodgram-backend/pkg/database"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const recipeColumns = `r.id, r.author_id, r.name, r.image_url, r.image_key, r.text, r.cooking_time, r.created_at, r.updated_at`

func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	rec := &model.Recipe{}
	err := row.Scan(
		&rec.ID, &rec.AuthorID, &rec.Name, &rec.ImageURL, &rec.ImageKey,
		&rec.Text, &rec.CookingTime, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func relationTable(rel model.Relation) string {
	if rel == model.RelationShoppingCart {
		return "shopping_cart_items"
	}
	return "favorites"
}

// ========================================
// RECIPES
// ========================================

func (r *postgresRepository) Create(ctx context.Context, rec *model.Recipe, ingredients []model.IngredientAmount, tagIDs []uuid.UUID) error {
	return pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO recipes (id, author_id, name, image_url, image_key, text, cooking_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.Exec(ctx, query,
			rec.ID, rec.AuthorID, rec.Name, rec.ImageURL, rec.ImageKey,
			rec.Text, rec.CookingTime, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		return insertComponents(ctx, tx, rec.ID, ingredients, tagIDs)
	})
}

func (r *postgresRepository) Update(ctx context.Context, rec *model.Recipe, ingredients []model.IngredientAmount, tagIDs []uuid.UUID) error {
	return pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE recipes
			SET name = $2, image_url = $3, image_key = $4, text = $5, cooking_time = $6, updated_at = $7
			WHERE id = $1
		`
		tag, err := tx.Exec(ctx, query,
			rec.ID, rec.Name, rec.ImageURL, rec.ImageKey, rec.Text, rec.CookingTime, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrRecipeNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("failed to clear recipe tags: %w", err)
		}
		return insertComponents(ctx, tx, rec.ID, ingredients, tagIDs)
	})
}

// insertComponents ghi junction rows bằng unnest, mỗi bảng một câu lệnh
func insertComponents(ctx context.Context, tx pgx.Tx, recipeID uuid.UUID, ingredients []model.IngredientAmount, tagIDs []uuid.UUID) error {
	ids := make([]uuid.UUID, 0, len(ingredients))
	amounts := make([]string, 0, len(ingredients))
	for _, item := range ingredients {
		ids = append(ids, item.ID)
		amounts = append(amounts, item.Amount.String())
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		SELECT $1, ingredient_id, amount::numeric
		FROM unnest($2::uuid[], $3::text[]) AS t(ingredient_id, amount)
	`, recipeID, ids, amounts)
	if err != nil {
		return fmt.Errorf("failed to insert recipe ingredients: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		SELECT $1, tag_id FROM unnest($2::uuid[]) AS t(tag_id)
	`, recipeID, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to insert recipe tags: %w", err)
	}
	return nil
}

// Delete: junction rows bị xoá theo ON DELETE CASCADE
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRecipeNotFound
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $1`

	rec, err := scanRecipe(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return rec, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter, offset, limit int) ([]*model.Recipe, int, error) {
	var where utils.WhereBuilder

	if filter.AuthorID != nil {
		where.Add("r.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		where.Add(`EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(?)
		)`, pq.Array(filter.TagSlugs))
	}
	if filter.ViewerID != nil && filter.IsFavorited {
		where.Add("EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = ?)", *filter.ViewerID)
	}
	if filter.ViewerID != nil && filter.IsInShoppingCart {
		where.Add("EXISTS (SELECT 1 FROM shopping_cart_items s WHERE s.recipe_id = r.id AND s.user_id = ?)", *filter.ViewerID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM recipes r ` + where.SQL()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	limitArg := where.Arg(limit)
	offsetArg := where.Arg(offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		%s
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT %s OFFSET %s
	`, recipeColumns, where.SQL(), limitArg, offsetArg)

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*model.Recipe, 0, limit)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ========================================
// BATCH LOADERS
// ========================================

func (r *postgresRepository) IngredientsFor(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]model.RecipeIngredient, error) {
	result := make(map[uuid.UUID][]model.RecipeIngredient, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY i.name
	`, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID uuid.UUID
			item     model.RecipeIngredient
		)
		if err := rows.Scan(&recipeID, &item.IngredientID, &item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		result[recipeID] = append(result[recipeID], item)
	}
	return result, rows.Err()
}

func (r *postgresRepository) TagsFor(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]*tagmodel.Tag, error) {
	result := make(map[uuid.UUID][]*tagmodel.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY t.name
	`, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID uuid.UUID
		tag := &tagmodel.Tag{}
		if err := rows.Scan(&recipeID, &tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		result[recipeID] = append(result[recipeID], tag)
	}
	return result, rows.Err()
}

func (r *postgresRepository) RelationSet(ctx context.Context, rel model.Relation, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	set := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}

	query := `SELECT recipe_id FROM ` + relationTable(rel) + ` WHERE user_id = $1 AND recipe_id = ANY($2)`
	rows, err := r.pool.Query(ctx, query, userID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s set: %w", rel, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", rel, err)
		}
		set[id] = true
	}
	return set, rows.Err()
}

// ========================================
// FAVORITES / SHOPPING CART
// ========================================

func (r *postgresRepository) RelationExists(ctx context.Context, rel model.Relation, userID, recipeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM ` + relationTable(rel) + ` WHERE user_id = $1 AND recipe_id = $2)`
	if err := r.pool.QueryRow(ctx, query, userID, recipeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", rel, err)
	}
	return exists, nil
}

func (r *postgresRepository) AddRelation(ctx context.Context, rel model.Relation, userID, recipeID uuid.UUID) error {
	query := `INSERT INTO ` + relationTable(rel) + ` (user_id, recipe_id, created_at) VALUES ($1, $2, NOW())`
	if _, err := r.pool.Exec(ctx, query, userID, recipeID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrRelationExists
		}
		return fmt.Errorf("failed to add %s: %w", rel, err)
	}
	return nil
}

func (r *postgresRepository) RemoveRelation(ctx context.Context, rel model.Relation, userID, recipeID uuid.UUID) error {
	query := `DELETE FROM ` + relationTable(rel) + ` WHERE user_id = $1 AND recipe_id = $2`
	tag, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", rel, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRelationNotFound
	}
	return nil
}

func (r *postgresRepository) CartLines(ctx context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.name, i.measurement_unit, ri.amount
		FROM shopping_cart_items s
		JOIN recipe_ingredients ri ON ri.recipe_id = s.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE s.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart ingredients: %w", err)
	}
	defer rows.Close()

	lines := make([]model.CartLine, 0)
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(&line.Name, &line.MeasurementUnit, &line.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cart ingredient: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
