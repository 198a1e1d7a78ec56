package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundRequest body para POST /api/orders/:id/refund.
type RefundRequest struct {
	PIN    string           `json:"pin" validate:"required"`
	Type   string           `json:"type" validate:"omitempty,oneof=full partial"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Reason string           `json:"reason" validate:"max=255"`
}

// RefundInput entrada del caso de uso (orden y usuario resueltos por el caller).
type RefundInput struct {
	OrderID string
	UserID  string
	PIN     string
	Type    string
	Amount  *decimal.Decimal
	Reason  string
}

// RefundResult resultado de processRefund.
type RefundResult struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	OrderID     string          `json:"order_id"`
	RefundLogID string          `json:"refund_log_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type,omitempty"`
	RefundedAt  *time.Time      `json:"refunded_at,omitempty"`
}
