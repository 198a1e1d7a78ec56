package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
)

// InventoryHandler disponibilidad por receta y movimientos manuales de stock (protegido).
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CheckAvailability godoc
// @Summary      Disponibilidad de un producto según su receta
// @Description  quantity por defecto 1. Responde 200 aunque no alcance: can_produce indica el resultado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id        path      string  true   "ID del producto"
// @Param        quantity  query     int     false  "unidades a producir"
// @Success      200       {object}  dto.AvailabilityResult
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      422       {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/availability [get]
func (h *InventoryHandler) CheckAvailability(c *fiber.Ctx) error {
	productID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	qty := c.QueryInt("quantity", 1)
	res, err := h.uc.CheckAvailability(c.Context(), productID, int64(qty))
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(res)
}

// Restock godoc
// @Summary      Reponer stock de un ingrediente
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID del ingrediente"
// @Param        body  body      dto.RestockRequest  true  "quantity, unit_cost opcional, reason"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.MovementResult
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.MovementResult
// @Failure      422   {object}  dto.MovementResult
// @Router       /api/inventory/ingredients/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	ingredientID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in dto.RestockRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.uc.Restock(c.Context(), inventory.RestockInput{
		IngredientID: ingredientID,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Reason:       in.Reason,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err, res)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// RecordWaste godoc
// @Summary      Registrar merma de un ingrediente
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "ID del ingrediente"
// @Param        body  body      dto.WasteRequest  true  "quantity, reason"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.MovementResult
// @Failure      404   {object}  dto.MovementResult
// @Failure      409   {object}  dto.MovementResult
// @Router       /api/inventory/ingredients/{id}/waste [post]
func (h *InventoryHandler) RecordWaste(c *fiber.Ctx) error {
	ingredientID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in dto.WasteRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.uc.RecordWaste(c.Context(), inventory.WasteInput{
		IngredientID: ingredientID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err, res)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// AdjustStock godoc
// @Summary      Ajustar stock a un conteo físico (solo admin)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID del ingrediente"
// @Param        body  body      dto.AdjustRequest  true  "new_quantity, reason"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.MovementResult
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.MovementResult
// @Router       /api/inventory/ingredients/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	ingredientID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in dto.AdjustRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.uc.AdjustStock(c.Context(), inventory.AdjustInput{
		IngredientID: ingredientID,
		NewQuantity:  in.NewQuantity,
		Reason:       in.Reason,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err, res)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// ListTransactions godoc
// @Summary      Historial de transacciones de un ingrediente
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path      string  true   "ID del ingrediente"
// @Param        limit   query     int     false  "máximo 200"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/ingredients/{id}/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	ingredientID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	if err := validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	list, err := h.uc.ListTransactions(c.Context(), ingredientID, page)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(fiber.Map{
		"total":        len(list),
		"transactions": list,
	})
}

// VerifyLedger godoc
// @Summary      Verificar stock contra la última transacción
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del ingrediente"
// @Success      200  {object}  dto.LedgerCheckDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/ingredients/{id}/ledger-check [get]
func (h *InventoryHandler) VerifyLedger(c *fiber.Ctx) error {
	ingredientID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	res, err := h.uc.VerifyLedger(c.Context(), ingredientID)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(res)
}

// ListLowStock godoc
// @Summary      Ingredientes en o bajo su punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
