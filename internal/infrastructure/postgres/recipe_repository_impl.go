package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-recipe-platform/internal/domain/entity"
	"github.com/oksasatya/go-recipe-platform/internal/domain/repository"
)

const recipeColumns = `id, title, description, ingredients, instructions, image_url, created_at, updated_at`

type RecipeRepository struct {
	db DBTX
}

func NewRecipeRepository(db DBTX) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	rec := &entity.Recipe{}
	err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Ingredients, &rec.Instructions,
		&rec.ImageURL, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Normalize()
	return rec, nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]*entity.Recipe, error) {
	rows, err := r.db.Query(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return out, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	rec, err := scanRecipe(r.db.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select recipe: %w", err)
	}
	return rec, nil
}

func (r *RecipeRepository) Create(ctx context.Context, rec *entity.Recipe) error {
	rec.Normalize()
	row := r.db.QueryRow(ctx, `
		INSERT INTO recipes (title, description, ingredients, instructions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, rec.Title, rec.Description, rec.Ingredients, rec.Instructions)

	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// Update replaces title, description, ingredients and instructions wholesale.
func (r *RecipeRepository) Update(ctx context.Context, rec *entity.Recipe) error {
	rec.Normalize()
	row := r.db.QueryRow(ctx, `
		UPDATE recipes
		SET title = $1, description = $2, ingredients = $3, instructions = $4, updated_at = now()
		WHERE id = $5
		RETURNING image_url, created_at, updated_at
	`, rec.Title, rec.Description, rec.Ingredients, rec.Instructions, rec.ID)

	if err := row.Scan(&rec.ImageURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) SetImageURL(ctx context.Context, id, url string) error {
	res, err := r.db.Exec(ctx, `UPDATE recipes SET image_url = $1, updated_at = now() WHERE id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("update recipe image: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
