// Package order integra el ciclo de vida del pedido con el motor de inventario.
package order

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// OrderProcessingUseCase descuenta el inventario de un pedido completo en una sola transacción.
// El flag inventory_processed del pedido hace la operación idempotente.
type OrderProcessingUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	inventoryUC InventoryUseCase
	log         *logger.Logger
	now         func() time.Time
}

// NewOrderProcessingUseCase construye el caso de uso.
func NewOrderProcessingUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	inventoryUC InventoryUseCase,
	log *logger.Logger,
) *OrderProcessingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderProcessingUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		inventoryUC: inventoryUC,
		log:         log.WithComponent("order"),
		now:         time.Now,
	}
}

// CanFulfillOrder indica si todas las líneas del pedido se pueden preparar a la vez: la demanda de
// cada ingrediente se suma entre líneas antes de compararla con el stock.
func (uc *OrderProcessingUseCase) CanFulfillOrder(ctx context.Context, orderID string) (*dto.FulfillmentReport, error) {
	ctx, span := tracer.Start(ctx, "order.CanFulfillOrder")
	span.SetAttributes(attribute.String("order.id", orderID))
	var err error
	defer func() { endSpan(span, err) }()

	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		err = fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		return nil, err
	}
	shortages, err := uc.inventoryUC.CheckItems(ctx, itemQuantities(o))
	if err != nil {
		return nil, err
	}
	report := &dto.FulfillmentReport{
		OrderID:    o.ID,
		CanFulfill: len(shortages) == 0,
		Shortages:  shortages,
	}
	if report.CanFulfill {
		report.Message = "El pedido se puede preparar completo"
	} else {
		report.Message = fmt.Sprintf("Stock insuficiente para el pedido: %s", shortages[0].IngredientName)
	}
	span.SetAttributes(attribute.Bool("can_fulfill", report.CanFulfill))
	return report, nil
}

// ProcessOrder descuenta el inventario de todas las líneas del pedido. Si ya fue procesado devuelve
// éxito sin volver a descontar. Si una línea no alcanza se revierte todo y Success=false.
func (uc *OrderProcessingUseCase) ProcessOrder(ctx context.Context, orderID, userID string) (*dto.ProcessOrderResult, error) {
	ctx, span := tracer.Start(ctx, "order.ProcessOrder")
	span.SetAttributes(attribute.String("order.id", orderID))
	var err error
	defer func() { endSpan(span, err) }()

	res := &dto.ProcessOrderResult{OrderID: orderID}

	// Lectura rápida sin bloqueo: evita abrir una transacción para pedidos ya procesados
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		err = fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		return nil, err
	}
	if o.InventoryProcessed {
		return alreadyProcessed(res), nil
	}

	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		locked, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		}
		if locked.InventoryProcessed {
			res.AlreadyProcessed = true
			return nil
		}
		if err := checkProcessable(locked); err != nil {
			return err
		}
		return uc.processLocked(ctx, repos, locked, userID, res)
	})
	if err != nil {
		res.Success = false
		if res.Message == "" {
			res.Message = err.Error()
		}
		uc.log.Warn().Err(err).Str("order_id", orderID).Str("failed_item_id", res.FailedItemID).Msg("pedido no procesado; inventario revertido")
		return res, err
	}
	if res.AlreadyProcessed {
		return alreadyProcessed(res), nil
	}

	res.Success = true
	res.Message = "Inventario del pedido descontado"
	span.SetAttributes(attribute.Int("items", len(o.Items)))
	uc.log.Info().Str("order_id", orderID).Int("items", len(o.Items)).Msg("inventario del pedido procesado")
	return res, nil
}

// CompleteOrder marca el pedido como completado y descuenta su inventario en la misma transacción.
// Si el inventario no alcanza el pedido conserva su estado.
func (uc *OrderProcessingUseCase) CompleteOrder(ctx context.Context, orderID, userID string) (*dto.ProcessOrderResult, error) {
	ctx, span := tracer.Start(ctx, "order.CompleteOrder")
	span.SetAttributes(attribute.String("order.id", orderID))
	var err error
	defer func() { endSpan(span, err) }()

	res := &dto.ProcessOrderResult{OrderID: orderID}
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		}
		if err := checkProcessable(o); err != nil {
			return err
		}
		if o.InventoryProcessed {
			res.AlreadyProcessed = true
		} else if err := uc.processLocked(ctx, repos, o, userID, res); err != nil {
			return err
		}
		if o.Status == entity.OrderStatusCompleted {
			return nil
		}
		return repos.Orders.UpdateStatus(ctx, o.ID, entity.OrderStatusCompleted, o.PaymentStatus)
	})
	if err != nil {
		res.Success = false
		if res.Message == "" {
			res.Message = err.Error()
		}
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo completar el pedido")
		return res, err
	}

	res.Success = true
	res.Message = "Pedido completado"
	uc.log.Info().Str("order_id", orderID).Bool("already_processed", res.AlreadyProcessed).Msg("pedido completado")
	return res, nil
}

// checkProcessable rechaza pedidos cancelados o reembolsados: su inventario no se descuenta.
func checkProcessable(o *entity.Order) error {
	switch o.Status {
	case entity.OrderStatusCancelled, entity.OrderStatusRefunded:
		return fmt.Errorf("%w: pedido en estado %s", domain.ErrConflict, o.Status)
	}
	if o.PaymentStatus == entity.PaymentStatusRefunded {
		return fmt.Errorf("%w: pedido reembolsado", domain.ErrConflict)
	}
	return nil
}

// processLocked descuenta todas las líneas de un pedido ya bloqueado y marca el flag.
// Todos los ingredientes del pedido se bloquean primero, en orden, y la demanda combinada se
// revalida antes de descontar la primera línea.
func (uc *OrderProcessingUseCase) processLocked(ctx context.Context, repos repository.TxRepos, o *entity.Order, userID string, res *dto.ProcessOrderResult) error {
	items := itemQuantities(o)
	shortages, err := uc.inventoryUC.LockItems(ctx, repos, items)
	if err != nil {
		return err
	}
	if len(shortages) > 0 {
		res.Shortages = shortages
		res.Message = fmt.Sprintf("Stock insuficiente para el pedido: %s", shortages[0].IngredientName)
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, shortages[0].IngredientName)
	}
	for _, it := range items {
		dr, err := uc.inventoryUC.DeductInTx(ctx, repos, dto.DeductRequest{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			OrderItemID: it.OrderItemID,
			UserID:      userID,
		})
		if err != nil {
			res.FailedItemID = it.OrderItemID
			if dr != nil {
				res.Shortages = dr.Shortages
				res.Message = dr.Message
			}
			return err
		}
	}
	return repos.Orders.MarkInventoryProcessed(ctx, o.ID, uc.now())
}

func itemQuantities(o *entity.Order) []dto.ItemQuantity {
	items := make([]dto.ItemQuantity, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.ItemQuantity{OrderItemID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}

func alreadyProcessed(res *dto.ProcessOrderResult) *dto.ProcessOrderResult {
	res.Success = true
	res.AlreadyProcessed = true
	res.Message = "El inventario del pedido ya fue procesado"
	return res
}
