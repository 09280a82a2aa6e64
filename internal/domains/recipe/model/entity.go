package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodgram-backend/internal/shared"
)

const (
	MaxNameLength = 200
	MaxTextLength = 500
)

// MaxAmount là giá trị lớn nhất của NUMERIC(6,2)
var MaxAmount = decimal.RequireFromString("9999.99")

// Recipe là bản ghi recipes; tags và ingredients nằm ở bảng junction
type Recipe struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Name        string
	ImageURL    string
	ImageKey    string
	Text        string
	CookingTime int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecipeIngredient là một dòng recipe_ingredients đã join với ingredients
type RecipeIngredient struct {
	IngredientID    uuid.UUID
	Name            string
	MeasurementUnit string
	Amount          decimal.Decimal
}

// CartLine là một ingredient của một recipe trong shopping cart (chưa gộp)
type CartLine struct {
	Name            string
	MeasurementUnit string
	Amount          decimal.Decimal
}

// Relation là quan hệ user ↔ recipe không có thuộc tính riêng
type Relation int

const (
	RelationFavorite Relation = iota
	RelationShoppingCart
)

func (r Relation) String() string {
	if r == RelationShoppingCart {
		return "shopping_cart"
	}
	return "favorite"
}

func (r *Recipe) ToShort() shared.ShortRecipe {
	return shared.ShortRecipe{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}
