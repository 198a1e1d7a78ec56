package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryDTO resumen de ventas del período; excluye pedidos reembolsados.
type SalesSummaryDTO struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OrderCount     int             `json:"order_count"`
	Revenue        decimal.Decimal `json:"revenue"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	RefundedCount  int             `json:"refunded_count"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
}

// DashboardSummaryDTO ventas de hoy y del mes en curso.
type DashboardSummaryDTO struct {
	Today     SalesSummaryDTO `json:"today"`
	Month     SalesSummaryDTO `json:"month"`
	DateLabel string          `json:"date_label"` // ej: "Octubre 2026"
}
