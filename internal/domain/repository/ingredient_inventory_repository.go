package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/unit"
)

// LowStockItem resultado crudo del repositorio para un ingrediente en o bajo su punto de reorden.
type LowStockItem struct {
	IngredientID   string
	IngredientName string
	Unit           unit.Unit
	CurrentStock   decimal.Decimal
	ReorderLevel   decimal.Decimal
	MaxStockLevel  decimal.Decimal
	UnitCost       decimal.Decimal
}

// IngredientInventoryRepository define el puerto para el stock por ingrediente.
// Dentro de una transacción, GetForUpdate bloquea la fila (SELECT FOR UPDATE).
type IngredientInventoryRepository interface {
	// GetByIngredient y GetForUpdate devuelven nil, nil si el ingrediente no tiene registro de inventario.
	GetByIngredient(ctx context.Context, ingredientID string) (*entity.IngredientInventory, error)
	GetForUpdate(ctx context.Context, ingredientID string) (*entity.IngredientInventory, error)
	// GetOrCreateForUpdate inserta inv si el ingrediente no tiene registro y devuelve la fila bloqueada.
	// Dos reposiciones iniciales concurrentes terminan sobre la misma fila.
	GetOrCreateForUpdate(ctx context.Context, inv *entity.IngredientInventory) (*entity.IngredientInventory, error)
	Update(ctx context.Context, inv *entity.IngredientInventory) error

	// ListLowStock devuelve los ingredientes controlados con stock <= reorder_level.
	ListLowStock(ctx context.Context) ([]LowStockItem, error)
}
