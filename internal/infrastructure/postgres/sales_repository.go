package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo consultas read-only de ventas sobre PostgreSQL.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador.
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// GetSalesSummary agrega los pedidos pagados del período. Los reembolsados se excluyen de los
// ingresos con payment_status <> 'refunded'; el monto reembolsado sale de refund_logs.
// Usa COALESCE para devolver cero si no hay pedidos en el período.
func (r *SalesRepo) GetSalesSummary(ctx context.Context, from, to time.Time) (repository.SalesSummaryResult, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE payment_status <> 'refunded'),
			COALESCE(SUM(total) FILTER (WHERE payment_status <> 'refunded'), 0),
			COUNT(*) FILTER (WHERE payment_status = 'refunded'),
			(SELECT COALESCE(SUM(rl.amount), 0) FROM refund_logs rl WHERE rl.created_at BETWEEN $1 AND $2)
		FROM orders
		WHERE created_at BETWEEN $1 AND $2
		  AND status <> 'cancelled'
		  AND payment_status IN ('paid', 'partial', 'refunded')`
	var res repository.SalesSummaryResult
	err := r.q.QueryRow(ctx, query, from, to).Scan(&res.OrderCount, &res.GrossRevenue, &res.RefundedCount, &res.RefundedAmount)
	if err != nil {
		return repository.SalesSummaryResult{}, fmt.Errorf("sales summary: %w", err)
	}
	return res, nil
}
