package model

import (
	"errors"

	"foodgram-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeTagNotFound = "TAG001"
	ErrCodeTagInvalid  = "TAG003"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag with this name, color or slug already exists")
)

func NewTagNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeTagNotFound, "Tag not found", ErrTagNotFound)
}
