package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// IngredientRepository define el puerto de lectura del catálogo de ingredientes.
type IngredientRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	List(ctx context.Context) ([]*entity.Ingredient, error)
}
