package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT id, number, COALESCE(customer_name, ''), status, payment_status, COALESCE(payment_method, ''),
	       total, inventory_processed, inventory_processed_at, created_at, updated_at
	FROM orders WHERE id = $1`

// GetByID obtiene el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, orderSelect, id)
}

// GetForUpdate obtiene el pedido y bloquea su fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, orderSelect+` FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Number, &o.CustomerName, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.Total, &o.InventoryProcessed, &o.InventoryProcessedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) items(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, is_served
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.IsServed); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// MarkInventoryProcessed fija inventory_processed = true. No existe la transición inversa.
func (r *OrderRepo) MarkInventoryProcessed(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE orders SET inventory_processed = TRUE, inventory_processed_at = $2, updated_at = $2
		WHERE id = $1 AND NOT inventory_processed`
	tag, err := r.q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("mark inventory processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyProcessed
	}
	return nil
}

// UpdateStatus actualiza estado del pedido y estado de pago.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status, paymentStatus string) error {
	query := `UPDATE orders SET status = $2, payment_status = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
