package inventory

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// ListTransactions devuelve la bitácora del ingrediente, de la más reciente a la más antigua.
func (uc *InventoryUseCase) ListTransactions(ctx context.Context, ingredientID string, page dto.PageRequest) ([]dto.TransactionDTO, error) {
	page.DefaultPage()
	ing, err := uc.ingredientRepo.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, ingredientID)
	}
	list, err := uc.txLogRepo.ListByIngredient(ctx, ingredientID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionDTO, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionDTO(t))
	}
	return out, nil
}

// VerifyLedger concilia el stock actual con el new_stock de la última transacción.
// Sin transacciones el registro es consistente solo si el stock es cero.
func (uc *InventoryUseCase) VerifyLedger(ctx context.Context, ingredientID string) (*dto.LedgerCheckDTO, error) {
	ctx, span := tracer.Start(ctx, "inventory.VerifyLedger")
	span.SetAttributes(attribute.String("ingredient.id", ingredientID))
	var err error
	defer func() { endSpan(span, err) }()

	ing, err := uc.ingredientRepo.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		err = fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, ingredientID)
		return nil, err
	}
	inv, err := uc.inventoryRepo.GetByIngredient(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	last, err := uc.txLogRepo.LatestByIngredient(ctx, ingredientID)
	if err != nil {
		return nil, err
	}

	check := &dto.LedgerCheckDTO{IngredientID: ingredientID}
	if inv != nil {
		check.CurrentStock = inv.CurrentStock
	}
	if last == nil {
		check.Consistent = check.CurrentStock.IsZero()
	} else {
		ns := last.NewStock
		check.LastTransactionID = last.ID
		check.LastNewStock = &ns
		check.Consistent = ns.Equal(check.CurrentStock)
	}
	if !check.Consistent {
		uc.log.Error().
			Str("ingredient_id", ingredientID).
			Str("current_stock", check.CurrentStock.String()).
			Str("last_transaction_id", check.LastTransactionID).
			Msg("stock no coincide con la bitácora")
	}
	span.SetAttributes(attribute.Bool("consistent", check.Consistent))
	return check, nil
}

func toTransactionDTO(t *entity.InventoryTransaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:             t.ID,
		IngredientID:   t.IngredientID,
		Type:           t.Type,
		QuantityChange: t.QuantityChange,
		PreviousStock:  t.PreviousStock,
		NewStock:       t.NewStock,
		UnitCost:       t.UnitCost,
		Reason:         t.Reason,
		OrderItemID:    t.OrderItemID,
		UserID:         t.UserID,
		CreatedAt:      t.CreatedAt,
	}
}
