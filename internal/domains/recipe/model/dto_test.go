package model

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_PartialStillRequiresIngredientsAndTags(t *testing.T) {
	name := "Борщ"
	req := RecipeWriteRequest{Name: &name}

	err := req.Validate(true, decimal.NewFromInt(1))
	require.Error(t, err)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "ingredients")
	assert.Contains(t, errs, "tags")
	assert.NotContains(t, errs, "image")
	assert.NotContains(t, errs, "text")
	assert.NotContains(t, errs, "cooking_time")
}

func TestValidate_PartialWithSetsOnly(t *testing.T) {
	req := RecipeWriteRequest{
		Ingredients: []IngredientAmount{{ID: uuid.New(), Amount: decimal.NewFromInt(5)}},
		Tags:        []uuid.UUID{uuid.New()},
	}

	assert.NoError(t, req.Validate(true, decimal.NewFromInt(1)))
	assert.Error(t, req.Validate(false, decimal.NewFromInt(1)))
}
