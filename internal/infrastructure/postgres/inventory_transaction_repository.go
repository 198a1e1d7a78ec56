package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo bitácora append-only sobre PostgreSQL: solo INSERT y SELECT.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

const transactionColumns = `
	id, ingredient_id, transaction_type, quantity_change, previous_stock, new_stock, unit_cost,
	COALESCE(reason, ''), order_item_id::text, COALESCE(user_id::text, ''), created_at`

// Create inserta una transacción de inventario.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, ingredient_id, transaction_type, quantity_change,
			previous_stock, new_stock, unit_cost, reason, order_item_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, '')::uuid, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.IngredientID, t.Type, t.QuantityChange, t.PreviousStock, t.NewStock, t.UnitCost,
		t.Reason, t.OrderItemID, t.UserID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// ListByIngredient pagina la bitácora del ingrediente, más reciente primero.
func (r *InventoryTransactionRepo) ListByIngredient(ctx context.Context, ingredientID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM inventory_transactions WHERE ingredient_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ingredientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// LatestByIngredient devuelve la última transacción del ingrediente.
func (r *InventoryTransactionRepo) LatestByIngredient(ctx context.Context, ingredientID string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM inventory_transactions WHERE ingredient_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT 1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, ingredientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest inventory transaction: %w", err)
	}
	return t, nil
}

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	err := row.Scan(
		&t.ID, &t.IngredientID, &t.Type, &t.QuantityChange, &t.PreviousStock, &t.NewStock, &t.UnitCost,
		&t.Reason, &t.OrderItemID, &t.UserID, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
