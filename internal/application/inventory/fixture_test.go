package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/unit"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/pkg/format"
)

const (
	waterID     = "a0000000-0000-4000-8000-000000000001"
	milkID      = "a0000000-0000-4000-8000-000000000002"
	coffeeID    = "a0000000-0000-4000-8000-000000000003"
	sugarID     = "a0000000-0000-4000-8000-000000000004"
	syrupID     = "a0000000-0000-4000-8000-000000000005" // controlado, sin registro de inventario
	teaID       = "a0000000-0000-4000-8000-000000000006"
	hotWaterID  = "b0000000-0000-4000-8000-000000000001" // 250 ml agua
	latteID     = "b0000000-0000-4000-8000-000000000002" // 100 ml agua + 200 ml leche
	americanoID = "b0000000-0000-4000-8000-000000000003" // 0.25 l agua + 18 g café + azúcar
	cookieID    = "b0000000-0000-4000-8000-000000000004" // sin receta
	syrupDrink  = "b0000000-0000-4000-8000-000000000005"
	brokenID    = "b0000000-0000-4000-8000-000000000006" // agua expresada en gramos
	userID      = "c0000000-0000-4000-8000-000000000001"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store *memory.Store
	uc    *inventory.InventoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	s := memory.New()

	for _, ing := range []entity.Ingredient{
		{ID: waterID, Name: "Agua", Unit: unit.Milliliter, IsTrackable: true},
		{ID: milkID, Name: "Leche", Unit: unit.Milliliter, IsTrackable: true},
		{ID: coffeeID, Name: "Café", Unit: unit.Gram, IsTrackable: true},
		{ID: sugarID, Name: "Azúcar", Unit: unit.Gram, IsTrackable: false},
		{ID: syrupID, Name: "Jarabe", Unit: unit.Milliliter, IsTrackable: true},
		{ID: teaID, Name: "Té", Unit: unit.Gram, IsTrackable: true},
	} {
		ing.CreatedAt, ing.UpdatedAt = now, now
		s.PutIngredient(ing)
	}
	s.PutInventory(stock(waterID, "5000", "1000", "8000", "0.5"))
	s.PutInventory(stock(milkID, "300", "500", "2000", "4"))
	s.PutInventory(stock(coffeeID, "1000", "200", "3000", "90"))

	s.PutProduct(product(hotWaterID, "Agua caliente"), recipeLine(waterID, "250", unit.Milliliter))
	s.PutProduct(product(latteID, "Latte"),
		recipeLine(waterID, "100", unit.Milliliter),
		recipeLine(milkID, "200", unit.Milliliter),
	)
	s.PutProduct(product(americanoID, "Americano"),
		recipeLine(waterID, "0.25", unit.Liter),
		recipeLine(coffeeID, "18", unit.Gram),
		recipeLine(sugarID, "5", unit.Gram),
	)
	s.PutProduct(product(cookieID, "Galleta"))
	s.PutProduct(product(syrupDrink, "Soda con jarabe"), recipeLine(syrupID, "30", unit.Milliliter))
	s.PutProduct(product(brokenID, "Receta mal cargada"), recipeLine(waterID, "10", unit.Gram))

	uc := inventory.NewInventoryUseCase(
		s, s.Ingredients(), s.Inventories(), s.Recipes(), s.Products(), s.Transactions(),
		format.New("en-US"), nil,
	)
	return &fixture{store: s, uc: uc}
}

func stock(ingredientID, current, reorder, maxLevel, cost string) entity.IngredientInventory {
	return entity.IngredientInventory{
		ID:            "inv-" + ingredientID,
		IngredientID:  ingredientID,
		CurrentStock:  dec(current),
		ReorderLevel:  dec(reorder),
		MaxStockLevel: dec(maxLevel),
		UnitCost:      dec(cost),
	}
}

func product(id, name string) entity.Product {
	return entity.Product{ID: id, Name: name, Price: dec("5000"), IsActive: true}
}

func recipeLine(ingredientID, qty string, u unit.Unit) entity.ProductIngredient {
	return entity.ProductIngredient{ID: "line-" + ingredientID, IngredientID: ingredientID, QuantityRequired: dec(qty), Unit: u}
}

// currentStock lee el stock confirmado.
func (f *fixture) currentStock(t *testing.T, ingredientID string) decimal.Decimal {
	t.Helper()
	inv, err := f.store.Inventories().GetByIngredient(t.Context(), ingredientID)
	if err != nil || inv == nil {
		t.Fatalf("inventario de %s: %v", ingredientID, err)
	}
	return inv.CurrentStock
}

func (f *fixture) transactions(t *testing.T, ingredientID string) []*entity.InventoryTransaction {
	t.Helper()
	list, err := f.store.Transactions().ListByIngredient(t.Context(), ingredientID, 0, 0)
	if err != nil {
		t.Fatalf("transacciones de %s: %v", ingredientID, err)
	}
	return list
}
