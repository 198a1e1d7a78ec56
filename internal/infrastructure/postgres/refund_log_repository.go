package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.RefundLogRepository = (*RefundLogRepo)(nil)

// RefundLogRepo bitácora de reembolsos sobre PostgreSQL.
type RefundLogRepo struct {
	q Querier
}

// NewRefundLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRefundLogRepository(q Querier) *RefundLogRepo {
	return &RefundLogRepo{q: q}
}

// Create inserta un reembolso. El índice único por pedido impide un segundo registro.
func (r *RefundLogRepo) Create(ctx context.Context, l *entity.RefundLog) error {
	query := `
		INSERT INTO refund_logs (id, order_id, user_id, amount, refund_type, payment_method, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrderID, l.UserID, l.Amount, l.Type, l.PaymentMethod, l.Reason, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRefunded
		}
		return fmt.Errorf("insert refund log: %w", err)
	}
	return nil
}

// ListByOrder reembolsos registrados para el pedido.
func (r *RefundLogRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.RefundLog, error) {
	query := `
		SELECT id, order_id, user_id, amount, refund_type, COALESCE(payment_method, ''), COALESCE(reason, ''), created_at
		FROM refund_logs WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list refund logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.RefundLog
	for rows.Next() {
		var l entity.RefundLog
		if err := rows.Scan(&l.ID, &l.OrderID, &l.UserID, &l.Amount, &l.Type, &l.PaymentMethod, &l.Reason, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
