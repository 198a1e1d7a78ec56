package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult resultado crudo de la consulta de ventas de un período.
type SalesSummaryResult struct {
	OrderCount     int
	GrossRevenue   decimal.Decimal // excluye pedidos con payment_status = refunded
	RefundedCount  int
	RefundedAmount decimal.Decimal
}

// SalesRepository consultas read-only de métricas de venta.
// Un reembolso no resta sobre agregados: las consultas filtran payment_status <> 'refunded'.
type SalesRepository interface {
	GetSalesSummary(ctx context.Context, from, to time.Time) (SalesSummaryResult, error)
}
