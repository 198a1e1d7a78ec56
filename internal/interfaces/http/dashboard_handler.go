package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cafe-pos-api/internal/application/analytics"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Ventas del día y del mes en curso (solo admin)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(summary)
}

// GetSales godoc
// @Summary      Resumen de ventas en un rango (solo admin)
// @Description  Sin from/to se usa el día en curso. to incluye el día completo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query     string  false  "YYYY-MM-DD"
// @Param        to    query     string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.SalesSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/dashboard/sales [get]
func (h *DashboardHandler) GetSales(c *fiber.Ctx) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from, to := today, today
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.ParseInLocation(time.DateOnly, v, now.Location()); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.ParseInLocation(time.DateOnly, v, now.Location()); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
		}
	}
	summary, err := h.uc.SalesSummary(c.Context(), from, to.AddDate(0, 0, 1).Add(-time.Nanosecond))
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(summary)
}
