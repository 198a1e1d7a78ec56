package order

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// InventoryUseCase interfaz para integrar pedidos con el motor de inventario.
// LockItems y DeductInTx usan los repositorios del caller (misma transacción); si retornan error
// el caller debe hacer rollback.
type InventoryUseCase interface {
	CheckItems(ctx context.Context, items []dto.ItemQuantity) ([]dto.ShortageDTO, error)
	LockItems(ctx context.Context, repos repository.TxRepos, items []dto.ItemQuantity) ([]dto.ShortageDTO, error)
	DeductInTx(ctx context.Context, repos repository.TxRepos, req dto.DeductRequest) (*dto.DeductResult, error)
}
