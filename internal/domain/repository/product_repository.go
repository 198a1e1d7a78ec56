package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo de productos.
type ProductRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
