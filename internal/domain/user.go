package domain

import (
	"context"
	"time"
)

// User is the local profile of an identity-provider principal.
type User struct {
	ID        string    `json:"id" validate:"required"` // identity provider subject
	Phone     string    `json:"phoneNumber,omitempty" validate:"omitempty,valid_phone"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserRepository interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}

type AuthUsecase interface {
	EnsureUser(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
