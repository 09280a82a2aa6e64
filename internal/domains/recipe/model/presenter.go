package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tagmodel "foodgram-backend/internal/domains/tag/model"
	usermodel "foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/shared/viewer"
)

// ========================================
// RESPONSE DTOs
// ========================================

type IngredientResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	MeasurementUnit string          `json:"measurement_unit"`
	Amount          decimal.Decimal `json:"amount"`
}

type RecipeResponse struct {
	ID               uuid.UUID              `json:"id"`
	Tags             []*tagmodel.Tag        `json:"tags"`
	Author           usermodel.UserResponse `json:"author"`
	Ingredients      []IngredientResponse   `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// Related là dữ liệu đã load theo batch cho một trang recipe.
// Các Flags rỗng khi viewer anonymous nên mọi cờ đều false.
type Related struct {
	Tags        map[uuid.UUID][]*tagmodel.Tag
	Ingredients map[uuid.UUID][]RecipeIngredient
	Authors     map[uuid.UUID]*usermodel.User
	Subscribed  viewer.Flags
	Favorited   viewer.Flags
	InCart      viewer.Flags
}

// ToResponse build read representation của recipe từ dữ liệu đã load
func (r *Recipe) ToResponse(rel Related) RecipeResponse {
	resp := RecipeResponse{
		ID:               r.ID,
		Tags:             rel.Tags[r.ID],
		Ingredients:      make([]IngredientResponse, 0, len(rel.Ingredients[r.ID])),
		IsFavorited:      rel.Favorited.Has(r.ID),
		IsInShoppingCart: rel.InCart.Has(r.ID),
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if resp.Tags == nil {
		resp.Tags = []*tagmodel.Tag{}
	}

	if author, ok := rel.Authors[r.AuthorID]; ok {
		resp.Author = author.ToResponse(rel.Subscribed.Has(author.ID))
	} else {
		resp.Author = usermodel.UserResponse{ID: r.AuthorID}
	}

	for _, ing := range rel.Ingredients[r.ID] {
		resp.Ingredients = append(resp.Ingredients, IngredientResponse{
			ID:              ing.IngredientID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          ing.Amount,
		})
	}
	return resp
}
