package repository

import (
	"context"

	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create returns ErrConflict when the username is already taken.
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
