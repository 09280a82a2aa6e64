package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"foodgram-backend/internal/shared"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest POST /api/users
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// "me" trùng với route /users/me
var errReservedUsername = errors.New("this username is reserved")

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.RuneLength(3, MaxEmailLength),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(1, MaxUsernameLength),
			validation.Match(usernamePattern).Error("username may contain only letters, digits and @/./+/-/_"),
			validation.By(func(any) error {
				if strings.EqualFold(r.Username, "me") {
					return errReservedUsername
				}
				return nil
			}),
		),
		validation.Field(&r.FirstName, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.LastName, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// Normalize trim khoảng trắng, email về lowercase
func (r RegisterRequest) Normalize() RegisterRequest {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return r
}

// LoginRequest POST /api/auth/token/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

type TokenResponse struct {
	AuthToken string    `json:"auth_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ========================================
// RESPONSE DTOs
// ========================================

// UserResponse là representation public của user.
// IsSubscribed luôn false với anonymous viewer và khi viewer chính là user.
type UserResponse struct {
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// SubscriptionResponse = author + recipes của author (có thể bị cắt bởi recipes_limit)
type SubscriptionResponse struct {
	UserResponse
	Recipes      []shared.ShortRecipe `json:"recipes"`
	RecipesCount int                  `json:"recipes_count"`
}

// AuthorRecipes là kết quả batch load recipes theo author
type AuthorRecipes struct {
	Recipes []shared.ShortRecipe
	Total   int
}
