package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain/unit"
)

// Product producto vendible del menú (espresso, capuchino, croissant...).
type Product struct {
	ID         string
	CategoryID string
	Name       string
	Price      decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductIngredient línea de receta: cantidad de un ingrediente consumida por una unidad de producto.
// Unit es la unidad en que se expresa QuantityRequired (no necesariamente la del inventario).
type ProductIngredient struct {
	ID               string
	ProductID        string
	IngredientID     string
	QuantityRequired decimal.Decimal // > 0
	Unit             unit.Unit
	Ingredient       *Ingredient // cargado por el repositorio
}
