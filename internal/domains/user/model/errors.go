package model

import (
	"errors"

	"foodgram-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeUserExists         = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeUserValidation     = "USR004"

	ErrCodeAlreadyFollowing = "FLW001"
	ErrCodeSelfFollow       = "FLW002"
)

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrAlreadyFollowing   = errors.New("already following this author")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSelfFollow         = errors.New("cannot follow yourself")
)

func NewUserNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeUserNotFound, "User not found", ErrUserNotFound)
}

func NewUserExistsError(cause error) *apperror.Error {
	return apperror.Conflict(ErrCodeUserExists, cause.Error(), cause)
}

func NewInvalidCredentialsError() *apperror.Error {
	return &apperror.Error{
		Kind:    apperror.KindInvalidRequest,
		Code:    ErrCodeInvalidCredentials,
		Message: "Unable to log in with provided credentials",
		Err:     ErrInvalidCredentials,
	}
}

func NewAlreadyFollowingError() *apperror.Error {
	return apperror.Conflict(ErrCodeAlreadyFollowing, "You are already subscribed to this author", ErrAlreadyFollowing)
}

func NewSelfFollowError() *apperror.Error {
	return &apperror.Error{
		Kind:    apperror.KindInvalidRequest,
		Code:    ErrCodeSelfFollow,
		Message: "You cannot subscribe to yourself",
		Err:     ErrSelfFollow,
	}
}
