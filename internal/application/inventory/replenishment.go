package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
)

// ListLowStock devuelve los ingredientes controlados en o bajo su punto de reorden con la cantidad
// sugerida de compra, ordenados por mayor déficit.
// Cantidad sugerida: MaxStockLevel - CurrentStock; sin máximo útil se usa 2 × ReorderLevel - CurrentStock.
func (uc *InventoryUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockDTO, error) {
	rawItems, err := uc.inventoryRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.LowStockDTO{}, nil
	}

	two := decimal.NewFromInt(2)
	out := make([]dto.LowStockDTO, 0, len(rawItems))
	for _, item := range rawItems {
		target := item.MaxStockLevel
		if target.LessThanOrEqual(item.ReorderLevel) {
			target = item.ReorderLevel.Mul(two)
		}
		suggested := target.Sub(item.CurrentStock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		out = append(out, dto.LowStockDTO{
			IngredientID:      item.IngredientID,
			IngredientName:    item.IngredientName,
			Unit:              string(item.Unit),
			CurrentStock:      item.CurrentStock,
			ReorderLevel:      item.ReorderLevel,
			MaxStockLevel:     item.MaxStockLevel,
			SuggestedQuantity: suggested,
			UnitCost:          item.UnitCost,
			EstimatedCost:     suggested.Mul(item.UnitCost).Round(2),
			OutOfStock:        !item.CurrentStock.IsPositive(),
		})
	}

	// Mayor déficit bajo el reorden primero; a igual déficit, por nombre
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		defA := a.ReorderLevel.Sub(a.CurrentStock)
		defB := b.ReorderLevel.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.IngredientName < b.IngredientName
	})
	return out, nil
}
