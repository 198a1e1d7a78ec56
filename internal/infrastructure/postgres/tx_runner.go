package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/order"
	"github.com/jhoicas/cafe-pos-api/internal/application/refund"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// Ensure TxRunner implements the TxRunner ports of every use case.
var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ order.TxRunner     = (*TxRunner)(nil)
	_ refund.TxRunner    = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los bloqueos FOR UPDATE tomados por los repos se liberan al terminar la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := repository.TxRepos{
		Inventory:    NewIngredientInventoryRepository(tx),
		Transactions: NewInventoryTransactionRepository(tx),
		Orders:       NewOrderRepository(tx),
		Refunds:      NewRefundLogRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
