package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/analytics"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func putOrder(s *memory.Store, id, status, payment, total string, at time.Time) {
	s.PutOrder(entity.Order{
		ID: id, Number: id, Status: status, PaymentStatus: payment,
		Total: dec(total), CreatedAt: at, UpdatedAt: at,
	})
}

func TestSalesSummary_ExcluyeReembolsadosYCancelados(t *testing.T) {
	s := memory.New()
	day := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	putOrder(s, "o1", entity.OrderStatusCompleted, entity.PaymentStatusPaid, "10000", day)
	putOrder(s, "o2", entity.OrderStatusCompleted, entity.PaymentStatusPaid, "20000", day.Add(time.Hour))
	putOrder(s, "o3", entity.OrderStatusRefunded, entity.PaymentStatusRefunded, "8000", day)
	putOrder(s, "o4", entity.OrderStatusCancelled, entity.PaymentStatusPaid, "50000", day)
	putOrder(s, "o5", entity.OrderStatusPending, entity.PaymentStatusUnpaid, "7000", day)
	putOrder(s, "o6", entity.OrderStatusCompleted, entity.PaymentStatusPaid, "99000", day.AddDate(0, 0, -3))
	err := s.Refunds().Create(context.Background(), &entity.RefundLog{
		ID: "r1", OrderID: "o3", UserID: "u1", Amount: dec("8000"), Type: entity.RefundTypeFull, CreatedAt: day,
	})
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(s.Sales())
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sum, err := uc.SalesSummary(context.Background(), from, from.Add(24*time.Hour-time.Nanosecond))
	require.NoError(t, err)

	assert.Equal(t, 2, sum.OrderCount)
	assert.True(t, sum.Revenue.Equal(dec("30000")), "obtenido %s", sum.Revenue)
	assert.True(t, sum.AverageTicket.Equal(dec("15000")))
	assert.Equal(t, 1, sum.RefundedCount)
	assert.True(t, sum.RefundedAmount.Equal(dec("8000")))
}

func TestSalesSummary_RangoInvertido(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.New().Sales())
	now := time.Now()

	_, err := uc.SalesSummary(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSummary_HoyYMes(t *testing.T) {
	s := memory.New()
	now := time.Now()
	putOrder(s, "o1", entity.OrderStatusCompleted, entity.PaymentStatusPaid, "12000", now)
	putOrder(s, "o2", entity.OrderStatusCompleted, entity.PaymentStatusPartial, "3000", now)

	sum, err := analytics.NewDashboardUseCase(s.Sales()).GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Today.OrderCount)
	assert.True(t, sum.Today.Revenue.Equal(dec("15000")))
	assert.GreaterOrEqual(t, sum.Month.OrderCount, sum.Today.OrderCount)
	assert.NotEmpty(t, sum.DateLabel)
}
