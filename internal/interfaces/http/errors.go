package http

import (
	"errors"
	"reflect"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorTable se recorre en orden; los sentinels de "no encontrado" específicos van antes del genérico.
var errorTable = []errorMapping{
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrIncompatibleUnits, fiber.StatusUnprocessableEntity, "INCOMPATIBLE_UNITS"},
	{domain.ErrUnknownUnit, fiber.StatusUnprocessableEntity, "INCOMPATIBLE_UNITS"},
	{domain.ErrNotTrackable, fiber.StatusUnprocessableEntity, "NOT_TRACKABLE"},
	{domain.ErrInvalidPIN, fiber.StatusForbidden, "INVALID_PIN"},
	{domain.ErrAlreadyRefunded, fiber.StatusConflict, "ALREADY_REFUNDED"},
	{domain.ErrOrderUnpaid, fiber.StatusConflict, "ORDER_UNPAID"},
	{domain.ErrAlreadyProcessed, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrDuplicate, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrIngredientNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInventoryNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrOrderNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// writeError traduce un error de dominio a status + código. Si body no es nil se envía tal cual
// (los resultados de inventario ya traen success=false y los faltantes); si no, un ErrorResponse.
func writeError(c *fiber.Ctx, err error, body any) error {
	if v := reflect.ValueOf(body); v.Kind() == reflect.Pointer && v.IsNil() {
		body = nil
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if body != nil {
				return c.Status(m.status).JSON(body)
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
