package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT id, email, password_hash, COALESCE(admin_pin_hash, ''), name, role, status, created_at, updated_at
	FROM users`

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scan(r.q.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scan(r.q.QueryRow(ctx, userSelect+` WHERE lower(email) = lower($1)`, email))
}

func (r *UserRepo) scan(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.AdminPINHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
