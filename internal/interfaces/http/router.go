package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cafe-pos-api/internal/application/analytics"
	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/order"
	"github.com/jhoicas/cafe-pos-api/internal/application/refund"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *inventory.InventoryUseCase
	OrderUC     *order.OrderProcessingUseCase
	RefundUC    *refund.RefundUseCase
	DashboardUC *appanalytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario por receta
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/products/:id/availability", inventoryHandler.CheckAvailability)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	ingredients := invGroup.Group("/ingredients/:id")
	ingredients.Post("/restock", RequireRole(entity.RoleAdmin, entity.RoleBarista), inventoryHandler.Restock)
	ingredients.Post("/waste", inventoryHandler.RecordWaste)
	ingredients.Post("/adjust", RequireRole(entity.RoleAdmin), inventoryHandler.AdjustStock)
	ingredients.Get("/transactions", inventoryHandler.ListTransactions)
	ingredients.Get("/ledger-check", inventoryHandler.VerifyLedger)

	// Pedidos
	orders := protected.Group("/orders/:id")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.RefundUC)
	orders.Get("/fulfillment", orderHandler.CanFulfill)
	orders.Post("/process", orderHandler.Process)
	orders.Post("/complete", orderHandler.Complete)
	orders.Post("/refund", RequireRole(entity.RoleAdmin), orderHandler.Refund)

	// Dashboard
	dashboard := protected.Group("/dashboard", RequireRole(entity.RoleAdmin))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/sales", dashboardHandler.GetSales)
}
