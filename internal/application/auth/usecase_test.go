package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
	pkgjwt "github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

const testSecret = "auth-test-secret"

func newAuthUC(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	catalog, err := seed.Demo(time.Now())
	require.NoError(t, err)
	s := memory.New()
	s.Load(catalog)
	return auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "cafe-pos-test"}), s
}

func TestLogin_GeneraTokenConRol(t *testing.T) {
	uc, _ := newAuthUC(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ADMIN@cafe.local", Password: seed.AdminPassword})
	require.NoError(t, err)
	assert.Equal(t, seed.AdminID, out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, seed.AdminID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: seed.AdminEmail, Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@cafe.local", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, s := newAuthUC(t)
	u, err := s.Users().GetByID(context.Background(), seed.CashierID)
	require.NoError(t, err)
	u.Status = "inactive"
	s.PutUser(*u)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: seed.CashierEmail, Password: seed.CashierPass})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
