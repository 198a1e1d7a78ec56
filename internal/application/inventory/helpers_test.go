package inventory_test

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
)

func inventoryRestock(ingredientID, qty string, cost *decimal.Decimal) inventory.RestockInput {
	return inventory.RestockInput{IngredientID: ingredientID, Quantity: dec(qty), UnitCost: cost, Reason: "compra", UserID: userID}
}

func wasteInput(ingredientID, qty, reason string) inventory.WasteInput {
	return inventory.WasteInput{IngredientID: ingredientID, Quantity: dec(qty), Reason: reason, UserID: userID}
}

func adjustInput(ingredientID, qty, reason string) inventory.AdjustInput {
	return inventory.AdjustInput{IngredientID: ingredientID, NewQuantity: dec(qty), Reason: reason, UserID: userID}
}
