package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo lectura de product_ingredients con el ingrediente cargado.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador.
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByProduct devuelve las líneas de receta del producto.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductIngredient, error) {
	query := `
		SELECT pi.id, pi.product_id, pi.ingredient_id, pi.quantity_required, COALESCE(pi.unit, ''),
		       i.id, i.name, i.unit, i.is_trackable, i.created_at, i.updated_at
		FROM product_ingredients pi
		JOIN ingredients i ON i.id = pi.ingredient_id
		WHERE pi.product_id = $1
		ORDER BY pi.ingredient_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductIngredient
	for rows.Next() {
		var line entity.ProductIngredient
		var ing entity.Ingredient
		if err := rows.Scan(
			&line.ID, &line.ProductID, &line.IngredientID, &line.QuantityRequired, &line.Unit,
			&ing.ID, &ing.Name, &ing.Unit, &ing.IsTrackable, &ing.CreatedAt, &ing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		line.Ingredient = &ing
		list = append(list, &line)
	}
	return list, rows.Err()
}
