package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// RecipeRepository puerto de solo lectura para las líneas de receta (product_ingredients).
type RecipeRepository interface {
	// ListByProduct devuelve las líneas con Ingredient cargado.
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductIngredient, error)
}
