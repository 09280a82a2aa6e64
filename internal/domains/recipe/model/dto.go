package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUEST DTOs
// ========================================

// IngredientAmount là một phần tử của "ingredients" trong request
//
//	{"id": "...", "amount": 10}
type IngredientAmount struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// RecipeWriteRequest dùng cho cả POST và PATCH.
// Tags và Ingredients luôn được thay thế toàn bộ; các field pointer
// nil khi PATCH nghĩa là giữ nguyên giá trị cũ.
type RecipeWriteRequest struct {
	Ingredients []IngredientAmount `json:"ingredients"`
	Tags        []uuid.UUID        `json:"tags"`
	Image       *string            `json:"image"`
	Name        *string            `json:"name"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time"`
}

// Validate kiểm tra shape của request. Sự tồn tại của ingredient/tag
// được service kiểm tra sau vì cần DB.
func (r RecipeWriteRequest) Validate(partial bool, minAmount decimal.Decimal) error {
	presence := validation.Required
	if partial {
		presence = validation.NilOrNotEmpty
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Ingredients,
			validation.Required.Error("at least one ingredient is required"),
			validation.By(ingredientAmountsRule(minAmount)),
		),
		validation.Field(&r.Tags,
			validation.Required.Error("at least one tag is required"),
			validation.By(uniqueTagsRule),
		),
		validation.Field(&r.Image, presence),
		validation.Field(&r.Name, presence, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Text, presence, validation.RuneLength(1, MaxTextLength)),
		validation.Field(&r.CookingTime, presence, validation.Min(1).Error("cooking time must be at least 1 minute")),
	)
}

// ingredientAmountsRule: không trùng id, amount trong [minAmount, MaxAmount]
func ingredientAmountsRule(minAmount decimal.Decimal) validation.RuleFunc {
	return func(value any) error {
		items, _ := value.([]IngredientAmount)
		seen := make(map[uuid.UUID]bool, len(items))
		for _, item := range items {
			if item.ID == uuid.Nil {
				return errors.New("ingredient id is required")
			}
			if seen[item.ID] {
				return fmt.Errorf("ingredient %s is listed more than once", item.ID)
			}
			seen[item.ID] = true

			if item.Amount.LessThan(minAmount) {
				return fmt.Errorf("amount of ingredient %s must be at least %s", item.ID, minAmount)
			}
			if item.Amount.GreaterThan(MaxAmount) {
				return fmt.Errorf("amount of ingredient %s must not exceed %s", item.ID, MaxAmount)
			}
		}
		return nil
	}
}

func uniqueTagsRule(value any) error {
	ids, _ := value.([]uuid.UUID)
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("tag %s is listed more than once", id)
		}
		seen[id] = true
	}
	return nil
}

// IngredientIDs trả id theo thứ tự request
func (r RecipeWriteRequest) IngredientIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Ingredients))
	for _, item := range r.Ingredients {
		ids = append(ids, item.ID)
	}
	return ids
}

// ListFilter là query của GET /recipes sau khi parse
type ListFilter struct {
	AuthorID *uuid.UUID
	TagSlugs []string
	// Chỉ có hiệu lực khi viewer đã đăng nhập
	IsFavorited      bool
	IsInShoppingCart bool
	// ViewerID do service set, repository dùng cho hai filter trên
	ViewerID *uuid.UUID
}
