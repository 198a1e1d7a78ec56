package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleCajero  = "cajero"
	RoleBarista = "barista"
)

// User usuario del punto de venta.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	AdminPINHash string // bcrypt; valores heredados pueden estar en texto plano
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
