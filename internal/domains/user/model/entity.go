package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150
)

// User represents an account that can author recipes and follow others
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Follow: UserID theo dõi AuthorID. (UserID, AuthorID) unique, UserID != AuthorID
type Follow struct {
	UserID    uuid.UUID
	AuthorID  uuid.UUID
	CreatedAt time.Time
}
