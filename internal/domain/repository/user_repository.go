package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// UserRepository define el puerto de lectura de usuarios.
type UserRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
