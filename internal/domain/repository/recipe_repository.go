package repository

import (
	"context"

	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
)

// RecipeRepository defines the persistence operations over the recipe collection.
// Get, Update, Delete and SetImageURL return ErrNotFound for unknown ids.
type RecipeRepository interface {
	List(ctx context.Context) ([]*entity.Recipe, error)
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	Create(ctx context.Context, r *entity.Recipe) error
	Update(ctx context.Context, r *entity.Recipe) error
	Delete(ctx context.Context, id string) error
	SetImageURL(ctx context.Context, id, url string) error
}
