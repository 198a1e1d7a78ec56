// Package analytics contiene los reportes de ventas del punto de venta.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen de ventas.
//
// Fuente de datos: SalesRepository (consultas read-only). Los pedidos reembolsados quedan fuera
// de los ingresos porque la consulta filtra por payment_status; no se restan a posteriori.
type DashboardUseCase struct {
	salesRepo repository.SalesRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(salesRepo repository.SalesRepository) *DashboardUseCase {
	return &DashboardUseCase{salesRepo: salesRepo, now: time.Now}
}

// SalesSummary resumen de ventas en [from, to].
func (uc *DashboardUseCase) SalesSummary(ctx context.Context, from, to time.Time) (*dto.SalesSummaryDTO, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	r, err := uc.salesRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toSummaryDTO(from, to, r), nil
}

// GetSummary construye el resumen de hoy y del mes en curso.
// Las dos consultas corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type summaryResult struct {
		r   repository.SalesSummaryResult
		err error
	}
	todayCh := make(chan summaryResult, 1)
	monthCh := make(chan summaryResult, 1)

	go func() {
		r, err := uc.salesRepo.GetSalesSummary(ctx, todayStart, todayEnd)
		todayCh <- summaryResult{r, err}
	}()
	go func() {
		r, err := uc.salesRepo.GetSalesSummary(ctx, monthStart, todayEnd)
		monthCh <- summaryResult{r, err}
	}()

	today := <-todayCh
	month := <-monthCh
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}

	return &dto.DashboardSummaryDTO{
		Today:     *toSummaryDTO(todayStart, todayEnd, today.r),
		Month:     *toSummaryDTO(monthStart, todayEnd, month.r),
		DateLabel: monthLabel(now),
	}, nil
}

func toSummaryDTO(from, to time.Time, r repository.SalesSummaryResult) *dto.SalesSummaryDTO {
	avg := decimal.Zero
	if r.OrderCount > 0 {
		avg = r.GrossRevenue.Div(decimal.NewFromInt(int64(r.OrderCount))).Round(2)
	}
	return &dto.SalesSummaryDTO{
		From:           from,
		To:             to,
		OrderCount:     r.OrderCount,
		Revenue:        r.GrossRevenue.Round(2),
		AverageTicket:  avg,
		RefundedCount:  r.RefundedCount,
		RefundedAmount: r.RefundedAmount.Round(2),
	}
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
