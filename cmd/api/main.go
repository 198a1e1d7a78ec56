package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/cafe-pos-api/internal/application/analytics"
	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/order"
	"github.com/jhoicas/cafe-pos-api/internal/application/refund"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/cafe-pos-api/internal/interfaces/http"
	"github.com/jhoicas/cafe-pos-api/pkg/config"
	"github.com/jhoicas/cafe-pos-api/pkg/format"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// TxRunner cumple los puertos transaccionales de inventario, pedidos y reembolsos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// storage repositorios de lectura más el runner transaccional del backend elegido.
type storage struct {
	txRunner     TxRunner
	ingredients  repository.IngredientRepository
	inventories  repository.IngredientInventoryRepository
	recipes      repository.RecipeRepository
	products     repository.ProductRepository
	transactions repository.InventoryTransactionRepository
	orders       repository.OrderRepository
	users        repository.UserRepository
	sales        repository.SalesRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.App.Storage).Msg("inicializar almacenamiento")
	}
	defer st.close()

	printer := format.New(cfg.App.Locale)
	inventoryUC := inventory.NewInventoryUseCase(
		st.txRunner, st.ingredients, st.inventories, st.recipes, st.products, st.transactions,
		printer, log,
	)
	orderUC := order.NewOrderProcessingUseCase(st.txRunner, st.orders, inventoryUC, log)
	refundUC := refund.NewRefundUseCase(st.txRunner, st.users, log)
	dashboardUC := appanalytics.NewDashboardUseCase(st.sales)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Café POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC: inventoryUC,
		OrderUC:     orderUC,
		RefundUC:    refundUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage conecta PostgreSQL o arma el almacén en memoria con el catálogo demo.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		catalog, err := seed.Demo(time.Now())
		if err != nil {
			return nil, err
		}
		store := memory.New()
		store.Load(catalog)
		return &storage{
			txRunner:     store,
			ingredients:  store.Ingredients(),
			inventories:  store.Inventories(),
			recipes:      store.Recipes(),
			products:     store.Products(),
			transactions: store.Transactions(),
			orders:       store.Orders(),
			users:        store.Users(),
			sales:        store.Sales(),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:     postgres.NewTxRunner(pool),
		ingredients:  postgres.NewIngredientRepository(pool),
		inventories:  postgres.NewIngredientInventoryRepository(pool),
		recipes:      postgres.NewRecipeRepository(pool),
		products:     postgres.NewProductRepository(pool),
		transactions: postgres.NewInventoryTransactionRepository(pool),
		orders:       postgres.NewOrderRepository(pool),
		users:        postgres.NewUserRepository(pool),
		sales:        postgres.NewSalesRepository(pool),
		close:        pool.Close,
	}, nil
}
