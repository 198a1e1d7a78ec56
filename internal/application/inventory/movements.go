package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/cafe-pos-api/internal/domain/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// RestockInput entrada de una reposición. UnitCost es opcional; si viene, el costo unitario del
// inventario pasa a ser el promedio ponderado.
type RestockInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reason       string
	UserID       string
}

// WasteInput entrada de una merma (derrame, vencimiento...).
type WasteInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	Reason       string
	UserID       string
}

// AdjustInput entrada de un ajuste por conteo físico: NewQuantity es el stock contado.
type AdjustInput struct {
	IngredientID string
	NewQuantity  decimal.Decimal
	Reason       string
	UserID       string
}

// Restock suma Quantity al stock del ingrediente. Si el ingrediente controlado aún no tiene
// registro de inventario, se crea.
func (uc *InventoryUseCase) Restock(ctx context.Context, in RestockInput) (*dto.MovementResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.Restock")
	span.SetAttributes(attribute.String("ingredient.id", in.IngredientID), attribute.String("quantity", in.Quantity.String()))
	var err error
	defer func() { endSpan(span, err) }()

	qty := in.Quantity.Round(domaininv.StockPrecision)
	if !qty.IsPositive() {
		err = domain.ErrInvalidQuantity
		return movementFailure(in.IngredientID, err), err
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		err = fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput)
		return movementFailure(in.IngredientID, err), err
	}
	ing, err := uc.loadTrackable(ctx, in.IngredientID)
	if err != nil {
		return movementFailure(in.IngredientID, err), err
	}

	res := &dto.MovementResult{
		IngredientID:    ing.ID,
		IngredientName:  ing.Name,
		Unit:            string(ing.Unit),
		TransactionType: entity.TransactionTypeRestock,
		QuantityChange:  qty,
	}
	reason := defaultReason(in.Reason, "reposición")
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		inv, err := uc.lockOrCreate(ctx, repos, ing.ID)
		if err != nil {
			return err
		}
		now := uc.now()
		prev := inv.CurrentStock
		cost := inv.UnitCost
		if in.UnitCost != nil {
			cost = in.UnitCost.Round(domaininv.CostPrecision)
			inv.UnitCost = domaininv.WeightedAverageCost(prev, inv.UnitCost, qty, cost)
		}
		inv.CurrentStock = prev.Add(qty).Round(domaininv.StockPrecision)
		inv.LastRestockedAt = &now
		inv.UpdatedAt = now
		if err := repos.Inventory.Update(ctx, inv); err != nil {
			return err
		}
		res.PreviousStock, res.NewStock = prev, inv.CurrentStock
		return repos.Transactions.Create(ctx, &entity.InventoryTransaction{
			ID:             uuid.New().String(),
			IngredientID:   ing.ID,
			Type:           entity.TransactionTypeRestock,
			QuantityChange: qty,
			PreviousStock:  prev,
			NewStock:       inv.CurrentStock,
			UnitCost:       cost,
			Reason:         reason,
			UserID:         in.UserID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return movementFailure(in.IngredientID, err), err
	}

	res.Success = true
	res.Message = uc.printer.Sprintf("Reposición de %s: %s → %s",
		ing.Name, uc.printer.Quantity(res.PreviousStock, ing.Unit), uc.printer.Quantity(res.NewStock, ing.Unit))
	uc.logMovement(res, in.UserID)
	return res, nil
}

// RecordWaste resta Quantity del stock como merma. Falla sin escribir nada si el stock no alcanza.
func (uc *InventoryUseCase) RecordWaste(ctx context.Context, in WasteInput) (*dto.MovementResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.RecordWaste")
	span.SetAttributes(attribute.String("ingredient.id", in.IngredientID), attribute.String("quantity", in.Quantity.String()))
	var err error
	defer func() { endSpan(span, err) }()

	qty := in.Quantity.Round(domaininv.StockPrecision)
	if !qty.IsPositive() {
		err = domain.ErrInvalidQuantity
		return movementFailure(in.IngredientID, err), err
	}
	ing, err := uc.loadTrackable(ctx, in.IngredientID)
	if err != nil {
		return movementFailure(in.IngredientID, err), err
	}

	res := &dto.MovementResult{
		IngredientID:    ing.ID,
		IngredientName:  ing.Name,
		Unit:            string(ing.Unit),
		TransactionType: entity.TransactionTypeWaste,
		QuantityChange:  qty.Neg(),
	}
	reason := defaultReason(in.Reason, "merma")
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		inv, err := repos.Inventory.GetForUpdate(ctx, ing.ID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: %s", domain.ErrInventoryNotFound, ing.Name)
		}
		prev := inv.CurrentStock
		res.PreviousStock, res.NewStock = prev, prev
		if prev.LessThan(qty) {
			return fmt.Errorf("%w: %s (requiere %s, disponible %s)", domain.ErrInsufficientStock, ing.Name,
				uc.printer.Quantity(qty, ing.Unit), uc.printer.Quantity(prev, ing.Unit))
		}
		now := uc.now()
		inv.CurrentStock = prev.Sub(qty).Round(domaininv.StockPrecision)
		inv.UpdatedAt = now
		if err := repos.Inventory.Update(ctx, inv); err != nil {
			return err
		}
		res.NewStock = inv.CurrentStock
		return repos.Transactions.Create(ctx, &entity.InventoryTransaction{
			ID:             uuid.New().String(),
			IngredientID:   ing.ID,
			Type:           entity.TransactionTypeWaste,
			QuantityChange: qty.Neg(),
			PreviousStock:  prev,
			NewStock:       inv.CurrentStock,
			UnitCost:       inv.UnitCost,
			Reason:         reason,
			UserID:         in.UserID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("ingredient_id", ing.ID).Str("quantity", qty.String()).Msg("merma rechazada")
		fail := movementFailure(in.IngredientID, err)
		fail.IngredientName, fail.Unit = ing.Name, string(ing.Unit)
		fail.PreviousStock, fail.NewStock = res.PreviousStock, res.PreviousStock
		return fail, err
	}

	res.Success = true
	res.Message = uc.printer.Sprintf("Merma de %s registrada: %s → %s",
		ing.Name, uc.printer.Quantity(res.PreviousStock, ing.Unit), uc.printer.Quantity(res.NewStock, ing.Unit))
	uc.logMovement(res, in.UserID)
	return res, nil
}

// AdjustStock fija el stock al valor contado. La transacción registra la diferencia con signo.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*dto.MovementResult, error) {
	ctx, span := tracer.Start(ctx, "inventory.AdjustStock")
	span.SetAttributes(attribute.String("ingredient.id", in.IngredientID), attribute.String("new_quantity", in.NewQuantity.String()))
	var err error
	defer func() { endSpan(span, err) }()

	target := in.NewQuantity.Round(domaininv.StockPrecision)
	if target.IsNegative() {
		err = domain.ErrInvalidQuantity
		return movementFailure(in.IngredientID, err), err
	}
	ing, err := uc.loadTrackable(ctx, in.IngredientID)
	if err != nil {
		return movementFailure(in.IngredientID, err), err
	}

	res := &dto.MovementResult{
		IngredientID:    ing.ID,
		IngredientName:  ing.Name,
		Unit:            string(ing.Unit),
		TransactionType: entity.TransactionTypeAdjustment,
	}
	reason := defaultReason(in.Reason, "ajuste de inventario")
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		inv, err := uc.lockOrCreate(ctx, repos, ing.ID)
		if err != nil {
			return err
		}
		now := uc.now()
		prev := inv.CurrentStock
		inv.CurrentStock = target
		inv.UpdatedAt = now
		if err := repos.Inventory.Update(ctx, inv); err != nil {
			return err
		}
		res.PreviousStock, res.NewStock = prev, target
		res.QuantityChange = target.Sub(prev)
		return repos.Transactions.Create(ctx, &entity.InventoryTransaction{
			ID:             uuid.New().String(),
			IngredientID:   ing.ID,
			Type:           entity.TransactionTypeAdjustment,
			QuantityChange: res.QuantityChange,
			PreviousStock:  prev,
			NewStock:       target,
			UnitCost:       inv.UnitCost,
			Reason:         reason,
			UserID:         in.UserID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return movementFailure(in.IngredientID, err), err
	}

	res.Success = true
	res.Message = uc.printer.Sprintf("Ajuste de %s: %s → %s",
		ing.Name, uc.printer.Quantity(res.PreviousStock, ing.Unit), uc.printer.Quantity(res.NewStock, ing.Unit))
	uc.logMovement(res, in.UserID)
	return res, nil
}

// lockOrCreate bloquea el registro de inventario, creándolo en cero si el ingrediente aún no tiene uno.
func (uc *InventoryUseCase) lockOrCreate(ctx context.Context, repos repository.TxRepos, ingredientID string) (*entity.IngredientInventory, error) {
	now := uc.now()
	return repos.Inventory.GetOrCreateForUpdate(ctx, &entity.IngredientInventory{
		ID:           uuid.New().String(),
		IngredientID: ingredientID,
		CurrentStock: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (uc *InventoryUseCase) logMovement(res *dto.MovementResult, userID string) {
	uc.log.Info().
		Str("ingredient_id", res.IngredientID).
		Str("type", res.TransactionType).
		Str("change", res.QuantityChange.String()).
		Str("previous_stock", res.PreviousStock.String()).
		Str("new_stock", res.NewStock.String()).
		Str("user_id", userID).
		Msg("movimiento de inventario registrado")
}

func movementFailure(ingredientID string, err error) *dto.MovementResult {
	return &dto.MovementResult{Success: false, Message: err.Error(), IngredientID: ingredientID}
}

func defaultReason(reason, fallback string) string {
	if r := strings.TrimSpace(reason); r != "" {
		return r
	}
	return fallback
}
