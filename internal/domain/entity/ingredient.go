package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain/unit"
)

// Ingredient materia prima del café (agua, leche, café en grano, vasos...).
// Unit es la unidad base en la que se lleva su inventario (g, ml o pcs).
type Ingredient struct {
	ID          string
	Name        string
	Unit        unit.Unit
	IsTrackable bool // false = no se controla stock (nunca limita disponibilidad)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IngredientInventory stock actual de un ingrediente controlado (uno a uno con Ingredient).
// Solo se modifica a través del motor de inventario; CurrentStock nunca es negativo.
type IngredientInventory struct {
	ID              string
	IngredientID    string
	CurrentStock    decimal.Decimal // 3 decimales
	MinStockLevel   decimal.Decimal
	MaxStockLevel   decimal.Decimal
	ReorderLevel    decimal.Decimal
	UnitCost        decimal.Decimal // costo promedio ponderado por unidad de inventario
	Location        string
	LastRestockedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si el stock está en o por debajo del punto de reorden.
func (i *IngredientInventory) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.ReorderLevel)
}

// IsOutOfStock indica si no queda existencia.
func (i *IngredientInventory) IsOutOfStock() bool {
	return !i.CurrentStock.IsPositive()
}
