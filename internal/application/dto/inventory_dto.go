package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShortageDTO ingrediente que no alcanza para una deducción o un pedido.
type ShortageDTO struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Required       decimal.Decimal `json:"required"`
	Available      decimal.Decimal `json:"available"`
	Reason         string          `json:"reason"` // insufficient_stock | no_inventory
}

// AvailabilityResult respuesta de checkAvailability.
// MaxQuantity = -1 indica que ningún ingrediente controlado limita el producto.
type AvailabilityResult struct {
	ProductID          string       `json:"product_id"`
	ProductName        string       `json:"product_name"`
	RequestedQuantity  int64        `json:"requested_quantity"`
	CanProduce         bool         `json:"can_produce"`
	MaxQuantity        int64        `json:"max_quantity"`
	LimitingIngredient *ShortageDTO `json:"limiting_ingredient,omitempty"`
	Message            string       `json:"message"`
}

// DeductRequest entrada para descontar inventario por la venta de un producto.
type DeductRequest struct {
	ProductID   string
	Quantity    int64
	OrderItemID string // opcional: se enlaza en cada transacción usage
	UserID      string
}

// StockChangeDTO cambio aplicado a un ingrediente.
type StockChangeDTO struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	PreviousStock  decimal.Decimal `json:"previous_stock"`
	NewStock       decimal.Decimal `json:"new_stock"`
}

// DeductResult respuesta de deductForProduct.
type DeductResult struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	Changes   []StockChangeDTO `json:"changes,omitempty"`
	Shortages []ShortageDTO    `json:"shortages,omitempty"`
}

// RestockRequest body para POST /api/inventory/ingredients/:id/restock.
type RestockRequest struct {
	Quantity decimal.Decimal  `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason   string           `json:"reason" validate:"max=255"`
}

// WasteRequest body para POST /api/inventory/ingredients/:id/waste.
type WasteRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason" validate:"required,max=255"`
}

// AdjustRequest body para POST /api/inventory/ingredients/:id/adjust.
type AdjustRequest struct {
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason" validate:"required,max=255"`
}

// MovementResult respuesta de restock, recordWaste y adjustStock.
type MovementResult struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message"`
	IngredientID    string          `json:"ingredient_id"`
	IngredientName  string          `json:"ingredient_name"`
	Unit            string          `json:"unit"`
	TransactionType string          `json:"transaction_type"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	PreviousStock   decimal.Decimal `json:"previous_stock"`
	NewStock        decimal.Decimal `json:"new_stock"`
}

// TransactionDTO fila de la bitácora de inventario.
type TransactionDTO struct {
	ID             string          `json:"id"`
	IngredientID   string          `json:"ingredient_id"`
	Type           string          `json:"type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	PreviousStock  decimal.Decimal `json:"previous_stock"`
	NewStock       decimal.Decimal `json:"new_stock"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Reason         string          `json:"reason"`
	OrderItemID    *string         `json:"order_item_id,omitempty"`
	UserID         string          `json:"user_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LedgerCheckDTO resultado de conciliar el stock con la última transacción.
type LedgerCheckDTO struct {
	IngredientID      string           `json:"ingredient_id"`
	CurrentStock      decimal.Decimal  `json:"current_stock"`
	LastTransactionID string           `json:"last_transaction_id,omitempty"`
	LastNewStock      *decimal.Decimal `json:"last_new_stock,omitempty"`
	Consistent        bool             `json:"consistent"`
}

// LowStockDTO sugerencia de reposición para un ingrediente en o bajo su punto de reorden.
type LowStockDTO struct {
	IngredientID      string          `json:"ingredient_id"`
	IngredientName    string          `json:"ingredient_name"`
	Unit              string          `json:"unit"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	MaxStockLevel     decimal.Decimal `json:"max_stock_level"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"` // MaxStockLevel - CurrentStock
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"` // SuggestedQuantity * UnitCost
	OutOfStock        bool            `json:"out_of_stock"`
}
