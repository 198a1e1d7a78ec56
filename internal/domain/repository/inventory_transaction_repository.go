package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// InventoryTransactionRepository bitácora append-only de movimientos de stock.
// No expone Update ni Delete.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	// ListByIngredient ordena de la más reciente a la más antigua.
	ListByIngredient(ctx context.Context, ingredientID string, limit, offset int) ([]*entity.InventoryTransaction, error)
	// LatestByIngredient devuelve nil, nil si no hay transacciones.
	LatestByIngredient(ctx context.Context, ingredientID string) (*entity.InventoryTransaction, error)
}
