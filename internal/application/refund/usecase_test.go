package refund_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/refund"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newRefundUC(t *testing.T) (*refund.RefundUseCase, *memory.Store) {
	t.Helper()
	catalog, err := seed.Demo(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	s := memory.New()
	s.Load(catalog)
	return refund.NewRefundUseCase(s, s.Users(), nil), s
}

func fullRefund(pin string) dto.RefundInput {
	return dto.RefundInput{OrderID: seed.DemoOrderID, UserID: seed.AdminID, PIN: pin, Reason: "cliente insatisfecho"}
}

// ──────────────────────────────────────────────────────────────────────────────
// VerifyPin
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyPin_Bcrypt(t *testing.T) {
	uc, _ := newRefundUC(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("9876"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{ID: "u1", AdminPINHash: string(hash)}

	assert.True(t, uc.VerifyPin(user, "9876"))
	assert.False(t, uc.VerifyPin(user, "0000"))
}

func TestVerifyPin_TextoPlanoHeredado(t *testing.T) {
	uc, _ := newRefundUC(t)
	user := &entity.User{ID: "u1", AdminPINHash: "4321"}

	assert.True(t, uc.VerifyPin(user, "4321"))
	assert.False(t, uc.VerifyPin(user, "43210"))
}

func TestVerifyPin_Vacios(t *testing.T) {
	uc, _ := newRefundUC(t)

	assert.False(t, uc.VerifyPin(nil, "1234"))
	assert.False(t, uc.VerifyPin(&entity.User{ID: "u1"}, ""), "usuario sin PIN configurado")
	assert.False(t, uc.VerifyPin(&entity.User{ID: "u1", AdminPINHash: "1234"}, ""))
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessRefund
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessRefund_Completo(t *testing.T) {
	uc, s := newRefundUC(t)
	ctx := context.Background()

	res, err := uc.ProcessRefund(ctx, fullRefund(seed.AdminPIN))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.RefundLogID)
	assert.Equal(t, entity.RefundTypeFull, res.Type)
	assert.True(t, res.Amount.Equal(dec("22500")), "reembolso completo = total del pedido")
	assert.NotNil(t, res.RefundedAt)

	o, err := s.Orders().GetByID(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRefunded, o.Status)
	assert.Equal(t, entity.PaymentStatusRefunded, o.PaymentStatus)

	logs, err := s.Refunds().ListByOrder(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, seed.AdminID, logs[0].UserID)
	assert.Equal(t, "cash", logs[0].PaymentMethod)
}

func TestProcessRefund_NoDevuelveStock(t *testing.T) {
	uc, s := newRefundUC(t)
	ctx := context.Background()

	before, err := s.Inventories().GetByIngredient(ctx, seed.CroissantID)
	require.NoError(t, err)

	_, err = uc.ProcessRefund(ctx, fullRefund(seed.AdminPIN))
	require.NoError(t, err)

	after, err := s.Inventories().GetByIngredient(ctx, seed.CroissantID)
	require.NoError(t, err)
	assert.True(t, before.CurrentStock.Equal(after.CurrentStock))
}

func TestProcessRefund_SegundoIntentoRechazado(t *testing.T) {
	uc, s := newRefundUC(t)
	ctx := context.Background()

	_, err := uc.ProcessRefund(ctx, fullRefund(seed.AdminPIN))
	require.NoError(t, err)

	res, err := uc.ProcessRefund(ctx, fullRefund(seed.AdminPIN))
	require.ErrorIs(t, err, domain.ErrAlreadyRefunded)
	assert.False(t, res.Success)

	logs, err := s.Refunds().ListByOrder(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestProcessRefund_PINInvalido(t *testing.T) {
	uc, s := newRefundUC(t)
	ctx := context.Background()

	res, err := uc.ProcessRefund(ctx, fullRefund("0000"))
	require.ErrorIs(t, err, domain.ErrInvalidPIN)
	assert.False(t, res.Success)

	o, err := s.Orders().GetByID(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, o.PaymentStatus, "el pedido no cambia")
}

func TestProcessRefund_UsuarioSinPIN(t *testing.T) {
	uc, _ := newRefundUC(t)

	in := fullRefund(seed.AdminPIN)
	in.UserID = seed.CashierID
	_, err := uc.ProcessRefund(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidPIN)
}

func TestProcessRefund_PedidoSinPagar(t *testing.T) {
	uc, s := newRefundUC(t)
	ctx := context.Background()
	o, err := s.Orders().GetByID(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	o.PaymentStatus = entity.PaymentStatusUnpaid
	s.PutOrder(*o)

	_, err = uc.ProcessRefund(ctx, fullRefund(seed.AdminPIN))
	assert.ErrorIs(t, err, domain.ErrOrderUnpaid)

	logs, err := s.Refunds().ListByOrder(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestProcessRefund_Parcial(t *testing.T) {
	uc, s := newRefundUC(t)
	ctx := context.Background()

	amount := dec("5500")
	in := fullRefund(seed.AdminPIN)
	in.Type = "partial"
	in.Amount = &amount
	res, err := uc.ProcessRefund(ctx, in)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(amount))
	assert.Equal(t, entity.RefundTypePartial, res.Type)

	o, err := s.Orders().GetByID(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, o.PaymentStatus)
}

func TestProcessRefund_ParcialInvalido(t *testing.T) {
	uc, _ := newRefundUC(t)
	ctx := context.Background()

	for _, amount := range []string{"0", "-10", "22500.01"} {
		a := dec(amount)
		in := fullRefund(seed.AdminPIN)
		in.Type = "partial"
		in.Amount = &a
		_, err := uc.ProcessRefund(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, amount)
	}

	in := fullRefund(seed.AdminPIN)
	in.Type = "partial"
	_, err := uc.ProcessRefund(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "parcial sin monto")

	in.Type = "store_credit"
	_, err = uc.ProcessRefund(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessRefund_NoEncontrados(t *testing.T) {
	uc, _ := newRefundUC(t)
	ctx := context.Background()

	in := fullRefund(seed.AdminPIN)
	in.UserID = "00000000-0000-4000-8000-00000000ffff"
	_, err := uc.ProcessRefund(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	in = fullRefund(seed.AdminPIN)
	in.OrderID = "30000000-0000-4000-8000-00000000ffff"
	_, err = uc.ProcessRefund(ctx, in)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
