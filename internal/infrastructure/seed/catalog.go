// Package seed define el catálogo demo del café: ingredientes, recetas, usuarios y un pedido.
// Lo usan el modo APP_STORAGE=memory y cmd/seed (que lo vuelca a SQL).
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/unit"
)

// Credenciales demo (solo para ambientes locales).
const (
	AdminEmail    = "admin@cafe.local"
	AdminPassword = "admin1234"
	AdminPIN      = "1234"
	CashierEmail  = "caja@cafe.local"
	CashierPass   = "caja1234"
)

// IDs fijos del catálogo demo.
const (
	AdminID   = "00000000-0000-4000-8000-000000000001"
	CashierID = "00000000-0000-4000-8000-000000000002"

	WaterID     = "10000000-0000-4000-8000-000000000001"
	MilkID      = "10000000-0000-4000-8000-000000000002"
	CoffeeID    = "10000000-0000-4000-8000-000000000003"
	ChocolateID = "10000000-0000-4000-8000-000000000004"
	CupID       = "10000000-0000-4000-8000-000000000005"
	CroissantID = "10000000-0000-4000-8000-000000000006"
	SugarID     = "10000000-0000-4000-8000-000000000007"
	CinnamonID  = "10000000-0000-4000-8000-000000000008"

	AmericanoID  = "20000000-0000-4000-8000-000000000001"
	CappuccinoID = "20000000-0000-4000-8000-000000000002"
	HotChocID    = "20000000-0000-4000-8000-000000000003"
	PastryID     = "20000000-0000-4000-8000-000000000004"
	CookieID     = "20000000-0000-4000-8000-000000000005"

	DemoOrderID = "30000000-0000-4000-8000-000000000001"
)

// Catalog datos iniciales listos para cargar en cualquier almacén.
type Catalog struct {
	Ingredients  []entity.Ingredient
	Inventories  []entity.IngredientInventory
	Products     []entity.Product
	Recipes      map[string][]entity.ProductIngredient // por product_id
	Users        []entity.User
	Orders       []entity.Order
	Transactions []entity.InventoryTransaction // saldo inicial (restock) de cada inventario
}

// Demo construye el catálogo demo. Los hash de password y PIN se generan con bcrypt.
func Demo(now time.Time) (*Catalog, error) {
	adminPass, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password admin: %w", err)
	}
	adminPIN, err := bcrypt.GenerateFromPassword([]byte(AdminPIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash PIN admin: %w", err)
	}
	cashierPass, err := bcrypt.GenerateFromPassword([]byte(CashierPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password caja: %w", err)
	}

	ing := func(id, name string, u unit.Unit, trackable bool) entity.Ingredient {
		return entity.Ingredient{ID: id, Name: name, Unit: u, IsTrackable: trackable, CreatedAt: now, UpdatedAt: now}
	}
	stock := func(id, current, reorder, maxLevel, cost string) entity.IngredientInventory {
		return entity.IngredientInventory{
			ID:            stableID("inventory", id),
			IngredientID:  id,
			CurrentStock:  decimal.RequireFromString(current),
			MinStockLevel: decimal.RequireFromString(reorder).Div(decimal.NewFromInt(2)),
			MaxStockLevel: decimal.RequireFromString(maxLevel),
			ReorderLevel:  decimal.RequireFromString(reorder),
			UnitCost:      decimal.RequireFromString(cost),
			Location:      "barra",
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}
	product := func(id, name, price string) entity.Product {
		return entity.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), IsActive: true, CreatedAt: now, UpdatedAt: now}
	}
	line := func(productID, ingredientID, qty string, u unit.Unit) entity.ProductIngredient {
		return entity.ProductIngredient{
			ID:               stableID("recipe", productID+"/"+ingredientID),
			ProductID:        productID,
			IngredientID:     ingredientID,
			QuantityRequired: decimal.RequireFromString(qty),
			Unit:             u,
		}
	}

	c := &Catalog{
		Ingredients: []entity.Ingredient{
			ing(WaterID, "Agua filtrada", unit.Milliliter, true),
			ing(MilkID, "Leche entera", unit.Milliliter, true),
			ing(CoffeeID, "Café en grano", unit.Gram, true),
			ing(ChocolateID, "Chocolate en polvo", unit.Gram, true),
			ing(CupID, "Vaso 12 oz", unit.Piece, true),
			ing(CroissantID, "Croissant", unit.Piece, true),
			ing(SugarID, "Azúcar (barra)", unit.Gram, false),
			ing(CinnamonID, "Canela", unit.Gram, false),
		},
		Inventories: []entity.IngredientInventory{
			stock(WaterID, "20000", "5000", "40000", "0.0005"),
			stock(MilkID, "10000", "3000", "20000", "0.0042"),
			stock(CoffeeID, "3000", "1000", "5000", "0.0950"),
			stock(ChocolateID, "800", "500", "2000", "0.0600"),
			stock(CupID, "150", "100", "500", "350"),
			stock(CroissantID, "12", "6", "30", "2500"),
		},
		Products: []entity.Product{
			product(AmericanoID, "Americano", "6000"),
			product(CappuccinoID, "Capuchino", "8500"),
			product(HotChocID, "Chocolate caliente", "8000"),
			product(PastryID, "Croissant", "5500"),
			product(CookieID, "Galleta de la casa", "2000"),
		},
		Recipes: map[string][]entity.ProductIngredient{
			AmericanoID: {
				line(AmericanoID, WaterID, "0.25", unit.Liter),
				line(AmericanoID, CoffeeID, "18", unit.Gram),
				line(AmericanoID, CupID, "1", unit.Piece),
			},
			CappuccinoID: {
				line(CappuccinoID, CoffeeID, "18", unit.Gram),
				line(CappuccinoID, WaterID, "30", unit.Milliliter),
				line(CappuccinoID, MilkID, "150", unit.Milliliter),
				line(CappuccinoID, CupID, "1", unit.Piece),
				line(CappuccinoID, CinnamonID, "1", unit.Gram),
			},
			HotChocID: {
				line(HotChocID, ChocolateID, "25", unit.Gram),
				line(HotChocID, MilkID, "0.2", unit.Liter),
				line(HotChocID, SugarID, "4", unit.Gram),
				line(HotChocID, CupID, "1", unit.Piece),
			},
			PastryID: {
				line(PastryID, CroissantID, "1", unit.Piece),
			},
		},
		Users: []entity.User{
			{
				ID: AdminID, Email: AdminEmail, PasswordHash: string(adminPass), AdminPINHash: string(adminPIN),
				Name: "Administrador", Role: entity.RoleAdmin, Status: "active", CreatedAt: now, UpdatedAt: now,
			},
			{
				ID: CashierID, Email: CashierEmail, PasswordHash: string(cashierPass),
				Name: "Caja principal", Role: entity.RoleCajero, Status: "active", CreatedAt: now, UpdatedAt: now,
			},
		},
		Orders: []entity.Order{
			{
				ID: DemoOrderID, Number: "A-0001", CustomerName: "Mesa 4",
				Status: entity.OrderStatusPreparing, PaymentStatus: entity.PaymentStatusPaid, PaymentMethod: "cash",
				Total: decimal.RequireFromString("22500"), CreatedAt: now, UpdatedAt: now,
				Items: []entity.OrderItem{
					{ID: "31000000-0000-4000-8000-000000000001", OrderID: DemoOrderID, ProductID: CappuccinoID, Quantity: 2, UnitPrice: decimal.RequireFromString("8500")},
					{ID: "31000000-0000-4000-8000-000000000002", OrderID: DemoOrderID, ProductID: PastryID, Quantity: 1, UnitPrice: decimal.RequireFromString("5500")},
				},
			},
		},
	}
	for _, inv := range c.Inventories {
		c.Transactions = append(c.Transactions, entity.InventoryTransaction{
			ID:             stableID("opening", inv.IngredientID),
			IngredientID:   inv.IngredientID,
			Type:           entity.TransactionTypeRestock,
			QuantityChange: inv.CurrentStock,
			PreviousStock:  decimal.Zero,
			NewStock:       inv.CurrentStock,
			UnitCost:       inv.UnitCost,
			Reason:         "saldo inicial",
			UserID:         AdminID,
			CreatedAt:      now,
		})
	}
	return c, nil
}

// stableID UUID determinístico para filas derivadas (inventario, recetas): el SQL generado es estable.
func stableID(kind, key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("cafe-pos/"+kind+"/"+key)).String()
}
