package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransactionTypeRestock    = "restock"
	TransactionTypeUsage      = "usage"
	TransactionTypeAdjustment = "adjustment"
	TransactionTypeWaste      = "waste"
)

// InventoryTransaction registro inmutable de auditoría de un cambio de stock.
// NewStock de la última transacción de un ingrediente coincide con su CurrentStock.
type InventoryTransaction struct {
	ID             string
	IngredientID   string
	Type           string
	QuantityChange decimal.Decimal // con signo: negativo en usage/waste
	PreviousStock  decimal.Decimal
	NewStock       decimal.Decimal
	UnitCost       decimal.Decimal
	Reason         string
	OrderItemID    *string
	UserID         string
	CreatedAt      time.Time
}
