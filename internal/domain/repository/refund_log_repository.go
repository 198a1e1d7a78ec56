package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// RefundLogRepository bitácora inmutable de reembolsos.
type RefundLogRepository interface {
	Create(ctx context.Context, log *entity.RefundLog) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.RefundLog, error)
}
