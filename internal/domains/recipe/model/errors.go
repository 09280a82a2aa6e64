package model

import (
	"errors"

	"foodgram-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeRecipeNotFound   = "REC001"
	ErrCodeRecipeValidation = "REC002"
	ErrCodeRecipeForbidden  = "REC003"
	ErrCodeAlreadyFavorited = "REC004"
	ErrCodeAlreadyInCart    = "REC005"
	ErrCodeNotFavorited     = "REC006"
	ErrCodeNotInCart        = "REC007"
	ErrCodeInvalidImage     = "REC008"
)

// Repository-level errors
var (
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrRelationExists   = errors.New("relation already exists")
	ErrRelationNotFound = errors.New("relation not found")
)

func NewRecipeNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeRecipeNotFound, "Recipe not found", ErrRecipeNotFound)
}

func NewForbiddenError() *apperror.Error {
	return apperror.Forbidden(ErrCodeRecipeForbidden, "Only the author can modify this recipe")
}

func NewRelationExistsError(rel Relation) *apperror.Error {
	if rel == RelationShoppingCart {
		return apperror.Conflict(ErrCodeAlreadyInCart, "Recipe is already in the shopping cart", ErrRelationExists)
	}
	return apperror.Conflict(ErrCodeAlreadyFavorited, "Recipe is already in favorites", ErrRelationExists)
}

func NewRelationNotFoundError(rel Relation) *apperror.Error {
	if rel == RelationShoppingCart {
		return apperror.NotFound(ErrCodeNotInCart, "Recipe is not in the shopping cart", ErrRelationNotFound)
	}
	return apperror.NotFound(ErrCodeNotFavorited, "Recipe is not in favorites", ErrRelationNotFound)
}
