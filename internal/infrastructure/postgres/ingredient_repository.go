package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, name, unit, is_trackable, created_at, updated_at`

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	var i entity.Ingredient
	err := r.q.QueryRow(ctx, query, id).Scan(&i.ID, &i.Name, &i.Unit, &i.IsTrackable, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &i, nil
}

// List devuelve todos los ingredientes ordenados por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.Unit, &i.IsTrackable, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
