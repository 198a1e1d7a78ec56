package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de reembolso.
const (
	RefundTypeFull    = "full"
	RefundTypePartial = "partial"
)

// RefundLog registro inmutable de un reembolso.
type RefundLog struct {
	ID            string
	OrderID       string
	UserID        string
	Amount        decimal.Decimal
	Type          string // full, partial
	PaymentMethod string
	Reason        string
	CreatedAt     time.Time
}
