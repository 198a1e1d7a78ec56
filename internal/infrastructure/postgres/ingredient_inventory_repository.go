package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.IngredientInventoryRepository = (*IngredientInventoryRepo)(nil)

// IngredientInventoryRepo implementación de IngredientInventoryRepository sobre PostgreSQL (usable con pool o tx).
type IngredientInventoryRepo struct {
	q Querier
}

// NewIngredientInventoryRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewIngredientInventoryRepository(q Querier) *IngredientInventoryRepo {
	return &IngredientInventoryRepo{q: q}
}

const inventoryColumns = `
	id, ingredient_id, current_stock, min_stock_level, max_stock_level, reorder_level,
	unit_cost, COALESCE(location, ''), last_restocked_at, created_at, updated_at`

// GetByIngredient obtiene el registro de inventario de un ingrediente sin bloquear.
func (r *IngredientInventoryRepo) GetByIngredient(ctx context.Context, ingredientID string) (*entity.IngredientInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM ingredient_inventories WHERE ingredient_id = $1`
	return r.scanOne(ctx, query, ingredientID, "get inventory")
}

// GetForUpdate obtiene el registro y bloquea la fila para update (SELECT FOR UPDATE).
func (r *IngredientInventoryRepo) GetForUpdate(ctx context.Context, ingredientID string) (*entity.IngredientInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM ingredient_inventories WHERE ingredient_id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, ingredientID, "get inventory for update")
}

func (r *IngredientInventoryRepo) scanOne(ctx context.Context, query, ingredientID, op string) (*entity.IngredientInventory, error) {
	var i entity.IngredientInventory
	err := r.q.QueryRow(ctx, query, ingredientID).Scan(
		&i.ID, &i.IngredientID, &i.CurrentStock, &i.MinStockLevel, &i.MaxStockLevel, &i.ReorderLevel,
		&i.UnitCost, &i.Location, &i.LastRestockedAt, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}

// GetOrCreateForUpdate inserta el registro si falta (ON CONFLICT DO NOTHING) y luego bloquea la fila.
// Si otra transacción insertó primero, el INSERT espera su commit y el SELECT ve esa fila.
func (r *IngredientInventoryRepo) GetOrCreateForUpdate(ctx context.Context, inv *entity.IngredientInventory) (*entity.IngredientInventory, error) {
	query := `
		INSERT INTO ingredient_inventories (id, ingredient_id, current_stock, min_stock_level, max_stock_level,
			reorder_level, unit_cost, location, last_restocked_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)
		ON CONFLICT (ingredient_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.IngredientID, inv.CurrentStock, inv.MinStockLevel, inv.MaxStockLevel,
		inv.ReorderLevel, inv.UnitCost, inv.Location, inv.LastRestockedAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return nil, mapInventoryWriteError("insert inventory", err)
	}
	locked, err := r.GetForUpdate(ctx, inv.IngredientID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, domain.ErrInventoryNotFound
	}
	return locked, nil
}

// Update guarda stock, costo y fechas del registro.
func (r *IngredientInventoryRepo) Update(ctx context.Context, inv *entity.IngredientInventory) error {
	query := `
		UPDATE ingredient_inventories
		SET current_stock = $2, unit_cost = $3, last_restocked_at = $4, updated_at = $5
		WHERE ingredient_id = $1`
	tag, err := r.q.Exec(ctx, query, inv.IngredientID, inv.CurrentStock, inv.UnitCost, inv.LastRestockedAt, inv.UpdatedAt)
	if err != nil {
		return mapInventoryWriteError("update inventory", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}

// ListLowStock ingredientes controlados con current_stock <= reorder_level.
func (r *IngredientInventoryRepo) ListLowStock(ctx context.Context) ([]repository.LowStockItem, error) {
	query := `
		SELECT i.id, i.name, i.unit, inv.current_stock, inv.reorder_level, inv.max_stock_level, inv.unit_cost
		FROM ingredient_inventories inv
		JOIN ingredients i ON i.id = inv.ingredient_id
		WHERE i.is_trackable AND inv.current_stock <= inv.reorder_level
		ORDER BY (inv.reorder_level - inv.current_stock) DESC, i.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.IngredientID, &it.IngredientName, &it.Unit, &it.CurrentStock,
			&it.ReorderLevel, &it.MaxStockLevel, &it.UnitCost); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// mapInventoryWriteError traduce violaciones de constraint a errores de dominio.
// El CHECK (current_stock >= 0) es la última barrera si una validación se saltara.
func mapInventoryWriteError(op string, err error) error {
	switch {
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInsufficientStock)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
