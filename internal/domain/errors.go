package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Inventario
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrIncompatibleUnits  = errors.New("unidades de medida incompatibles")
	ErrUnknownUnit        = errors.New("unidad de medida desconocida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrIngredientNotFound = errors.New("ingrediente no encontrado")
	ErrInventoryNotFound  = errors.New("el ingrediente no tiene registro de inventario")
	ErrNotTrackable       = errors.New("el ingrediente no maneja inventario")
	ErrProductNotFound    = errors.New("producto no encontrado")

	// Pedidos y reembolsos
	ErrOrderNotFound    = errors.New("pedido no encontrado")
	ErrAlreadyProcessed = errors.New("el inventario del pedido ya fue procesado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidPIN       = errors.New("PIN de administrador inválido")
	ErrAlreadyRefunded  = errors.New("el pedido ya fue reembolsado")
	ErrOrderUnpaid      = errors.New("el pedido no registra pago")
)
