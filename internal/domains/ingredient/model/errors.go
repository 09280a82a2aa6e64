package model

import (
	"errors"

	"foodgram-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeIngredientNotFound = "ING001"
	ErrCodeInvalidIngredient  = "ING002"
)

var ErrIngredientNotFound = errors.New("ingredient not found")

func NewIngredientNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeIngredientNotFound, "Ingredient not found", ErrIngredientNotFound)
}
