package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/order"
	"github.com/jhoicas/cafe-pos-api/internal/application/refund"
)

// OrderHandler verificación y descuento de inventario por pedido, y reembolsos (protegido).
type OrderHandler struct {
	uc       *order.OrderProcessingUseCase
	refundUC *refund.RefundUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.OrderProcessingUseCase, refundUC *refund.RefundUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, refundUC: refundUC}
}

// CanFulfill godoc
// @Summary      Verificar si el inventario alcanza para un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.FulfillmentReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/fulfillment [get]
func (h *OrderHandler) CanFulfill(c *fiber.Ctx) error {
	orderID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	report, err := h.uc.CanFulfillOrder(c.Context(), orderID)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(report)
}

// Process godoc
// @Summary      Descontar el inventario de un pedido
// @Description  Repetir la llamada sobre un pedido ya procesado responde 200 con already_processed=true.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.ProcessOrderResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ProcessOrderResult
// @Router       /api/orders/{id}/process [post]
func (h *OrderHandler) Process(c *fiber.Ctx) error {
	orderID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	res, err := h.uc.ProcessOrder(c.Context(), orderID, GetUserID(c))
	if err != nil {
		return writeError(c, err, res)
	}
	return c.JSON(res)
}

// Complete godoc
// @Summary      Completar un pedido: descuenta inventario y lo marca entregado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.ProcessOrderResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ProcessOrderResult
// @Router       /api/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	orderID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	res, err := h.uc.CompleteOrder(c.Context(), orderID, GetUserID(c))
	if err != nil {
		return writeError(c, err, res)
	}
	return c.JSON(res)
}

// Refund godoc
// @Summary      Reembolsar un pedido pagado (solo admin)
// @Description  El PIN se valida contra el usuario del token; no se devuelve stock al inventario.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID del pedido"
// @Param        body  body      dto.RefundRequest  true  "pin, type (full|partial), amount, reason"
// @Success      201   {object}  dto.RefundResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.RefundResult
// @Failure      404   {object}  dto.RefundResult
// @Failure      409   {object}  dto.RefundResult
// @Router       /api/orders/{id}/refund [post]
func (h *OrderHandler) Refund(c *fiber.Ctx) error {
	orderID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	var in dto.RefundRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.refundUC.ProcessRefund(c.Context(), dto.RefundInput{
		OrderID: orderID,
		UserID:  GetUserID(c),
		PIN:     in.PIN,
		Type:    in.Type,
		Amount:  in.Amount,
		Reason:  in.Reason,
	})
	if err != nil {
		return writeError(c, err, res)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
