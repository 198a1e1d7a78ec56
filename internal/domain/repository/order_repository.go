package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para pedidos (el CRUD vive fuera del núcleo).
type OrderRepository interface {
	// GetByID devuelve el pedido con sus líneas; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate igual que GetByID pero bloquea la fila del pedido (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	MarkInventoryProcessed(ctx context.Context, id string, at time.Time) error
	UpdateStatus(ctx context.Context, id, status, paymentStatus string) error
}
