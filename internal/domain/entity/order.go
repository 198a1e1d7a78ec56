package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// Estados de pago.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusPartial  = "partial"
	PaymentStatusRefunded = "refunded"
)

// Order pedido del punto de venta.
// InventoryProcessed garantiza que el inventario se descuenta una sola vez.
type Order struct {
	ID                   string
	Number               string
	CustomerName         string
	Status               string
	PaymentStatus        string
	PaymentMethod        string // cash, card, transfer...
	Total                decimal.Decimal
	InventoryProcessed   bool
	InventoryProcessedAt *time.Time
	Items                []OrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderItem línea del pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	IsServed  bool
}
