package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/order"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store       *memory.Store
	inventoryUC *inventory.InventoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := seed.Demo(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	s := memory.New()
	s.Load(catalog)
	return &fixture{
		store: s,
		inventoryUC: inventory.NewInventoryUseCase(
			s, s.Ingredients(), s.Inventories(), s.Recipes(), s.Products(), s.Transactions(), nil, nil,
		),
	}
}

func (f *fixture) orderUC(inv order.InventoryUseCase) *order.OrderProcessingUseCase {
	if inv == nil {
		inv = f.inventoryUC
	}
	return order.NewOrderProcessingUseCase(f.store, f.store.Orders(), inv, nil)
}

func (f *fixture) stockOf(t *testing.T, ingredientID string) decimal.Decimal {
	t.Helper()
	inv, err := f.store.Inventories().GetByIngredient(context.Background(), ingredientID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	return inv.CurrentStock
}

func (f *fixture) usageCount(t *testing.T, ingredientID string) int {
	t.Helper()
	list, err := f.store.Transactions().ListByIngredient(context.Background(), ingredientID, 0, 0)
	require.NoError(t, err)
	n := 0
	for _, tx := range list {
		if tx.Type == entity.TransactionTypeUsage {
			n++
		}
	}
	return n
}

func (f *fixture) putOrder(id string, items ...entity.OrderItem) {
	for i := range items {
		items[i].OrderID = id
	}
	f.store.PutOrder(entity.Order{
		ID: id, Number: "T-" + id[len(id)-4:], Status: entity.OrderStatusPreparing,
		PaymentStatus: entity.PaymentStatusPaid, Total: dec("10000"), Items: items,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
}

// failingInventory descuenta con el motor real pero falla en la línea indicada.
type failingInventory struct {
	*inventory.InventoryUseCase
	failOn string
}

func (f *failingInventory) DeductInTx(ctx context.Context, repos repository.TxRepos, req dto.DeductRequest) (*dto.DeductResult, error) {
	if req.OrderItemID == f.failOn {
		return &dto.DeductResult{ProductID: req.ProductID, Message: "falla simulada"}, errors.New("falla simulada")
	}
	return f.InventoryUseCase.DeductInTx(ctx, repos, req)
}

// ──────────────────────────────────────────────────────────────────────────────
// CanFulfillOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCanFulfillOrder_PedidoDemo(t *testing.T) {
	f := newFixture(t)

	report, err := f.orderUC(nil).CanFulfillOrder(context.Background(), seed.DemoOrderID)
	require.NoError(t, err)
	assert.True(t, report.CanFulfill)
	assert.Empty(t, report.Shortages)
}

func TestCanFulfillOrder_AgregaDemandaEntreLineas(t *testing.T) {
	f := newFixture(t)
	f.store.PutInventory(entity.IngredientInventory{ID: "inv-croissant", IngredientID: seed.CroissantID, CurrentStock: dec("3")})

	// dos líneas de 2 croissants: cada una alcanza, juntas no
	const orderID = "40000000-0000-4000-8000-000000000001"
	f.putOrder(orderID,
		entity.OrderItem{ID: "41000000-0000-4000-8000-000000000001", ProductID: seed.PastryID, Quantity: 2},
		entity.OrderItem{ID: "41000000-0000-4000-8000-000000000002", ProductID: seed.PastryID, Quantity: 2},
	)

	report, err := f.orderUC(nil).CanFulfillOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.False(t, report.CanFulfill)
	require.Len(t, report.Shortages, 1)
	assert.Equal(t, seed.CroissantID, report.Shortages[0].IngredientID)
	assert.True(t, report.Shortages[0].Required.Equal(dec("4")))
	assert.True(t, report.Shortages[0].Available.Equal(dec("3")))
}

func TestCanFulfillOrder_NoExiste(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderUC(nil).CanFulfillOrder(context.Background(), "40000000-0000-4000-8000-00000000ffff")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessOrder_DescuentaTodasLasLineas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.orderUC(nil).ProcessOrder(ctx, seed.DemoOrderID, seed.CashierID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.AlreadyProcessed)

	// 2 capuchinos + 1 croissant
	assert.True(t, f.stockOf(t, seed.CoffeeID).Equal(dec("2964")))
	assert.True(t, f.stockOf(t, seed.WaterID).Equal(dec("19940")))
	assert.True(t, f.stockOf(t, seed.MilkID).Equal(dec("9700")))
	assert.True(t, f.stockOf(t, seed.CupID).Equal(dec("148")))
	assert.True(t, f.stockOf(t, seed.CroissantID).Equal(dec("11")))

	o, err := f.store.Orders().GetByID(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	assert.True(t, o.InventoryProcessed)
	assert.NotNil(t, o.InventoryProcessedAt)

	// cada transacción usage queda enlazada a su línea
	list, err := f.store.Transactions().ListByIngredient(ctx, seed.CroissantID, 1, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].OrderItemID)
	assert.Equal(t, o.Items[1].ID, *list[0].OrderItemID)
}

func TestProcessOrder_EsIdempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.orderUC(nil)

	_, err := uc.ProcessOrder(ctx, seed.DemoOrderID, seed.CashierID)
	require.NoError(t, err)

	res, err := uc.ProcessOrder(ctx, seed.DemoOrderID, seed.CashierID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.AlreadyProcessed)

	assert.True(t, f.stockOf(t, seed.CoffeeID).Equal(dec("2964")), "el segundo llamado no descuenta")
	assert.Equal(t, 1, f.usageCount(t, seed.CroissantID))
}

func TestProcessOrder_FaltanteRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.store.PutInventory(entity.IngredientInventory{ID: "inv-croissant", IngredientID: seed.CroissantID, CurrentStock: dec("0")})

	res, err := f.orderUC(nil).ProcessOrder(context.Background(), seed.DemoOrderID, seed.CashierID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.False(t, res.Success)
	require.NotEmpty(t, res.Shortages)
	assert.Equal(t, seed.CroissantID, res.Shortages[0].IngredientID)

	// el capuchino (primera línea) tampoco se descontó
	assert.True(t, f.stockOf(t, seed.CoffeeID).Equal(dec("3000")))
	assert.Equal(t, 0, f.usageCount(t, seed.CoffeeID))

	o, err := f.store.Orders().GetByID(context.Background(), seed.DemoOrderID)
	require.NoError(t, err)
	assert.False(t, o.InventoryProcessed)
}

func TestProcessOrder_FallaEnLineaIntermediaRevierteLasAnteriores(t *testing.T) {
	f := newFixture(t)
	o, err := f.store.Orders().GetByID(context.Background(), seed.DemoOrderID)
	require.NoError(t, err)

	failing := &failingInventory{InventoryUseCase: f.inventoryUC, failOn: o.Items[1].ID}
	res, err := f.orderUC(failing).ProcessOrder(context.Background(), seed.DemoOrderID, seed.CashierID)
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, o.Items[1].ID, res.FailedItemID)

	assert.True(t, f.stockOf(t, seed.CoffeeID).Equal(dec("3000")), "lo descontado por la primera línea se revierte")
	assert.Equal(t, 0, f.usageCount(t, seed.CoffeeID))

	// tras corregir, el pedido se procesa normalmente
	res, err = f.orderUC(nil).ProcessOrder(context.Background(), seed.DemoOrderID, seed.CashierID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.AlreadyProcessed)
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteOrder_ProcesaYMarcaCompletado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.orderUC(nil).CompleteOrder(ctx, seed.DemoOrderID, seed.CashierID)
	require.NoError(t, err)
	assert.True(t, res.Success)

	o, err := f.store.Orders().GetByID(ctx, seed.DemoOrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, o.Status)
	assert.Equal(t, entity.PaymentStatusPaid, o.PaymentStatus)
	assert.True(t, o.InventoryProcessed)
	assert.True(t, f.stockOf(t, seed.CroissantID).Equal(dec("11")))

	// repetir no vuelve a descontar
	res, err = f.orderUC(nil).CompleteOrder(ctx, seed.DemoOrderID, seed.CashierID)
	require.NoError(t, err)
	assert.True(t, res.AlreadyProcessed)
	assert.True(t, f.stockOf(t, seed.CroissantID).Equal(dec("11")))
}

func TestCompleteOrder_SinStockConservaEstado(t *testing.T) {
	f := newFixture(t)
	f.store.PutInventory(entity.IngredientInventory{ID: "inv-croissant", IngredientID: seed.CroissantID, CurrentStock: dec("0")})

	_, err := f.orderUC(nil).CompleteOrder(context.Background(), seed.DemoOrderID, seed.CashierID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	o, err := f.store.Orders().GetByID(context.Background(), seed.DemoOrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, o.Status)
}

func TestCompleteOrder_PedidoReembolsadoEsConflicto(t *testing.T) {
	f := newFixture(t)
	o, err := f.store.Orders().GetByID(context.Background(), seed.DemoOrderID)
	require.NoError(t, err)
	o.Status, o.PaymentStatus = entity.OrderStatusRefunded, entity.PaymentStatusRefunded
	f.store.PutOrder(*o)

	_, err = f.orderUC(nil).CompleteOrder(context.Background(), seed.DemoOrderID, seed.CashierID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProcessOrder_PedidoCanceladoOReembolsadoEsConflicto(t *testing.T) {
	for _, status := range []string{entity.OrderStatusRefunded, entity.OrderStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			o, err := f.store.Orders().GetByID(ctx, seed.DemoOrderID)
			require.NoError(t, err)
			o.Status = status
			f.store.PutOrder(*o)
			coffee := f.stockOf(t, seed.CoffeeID)

			res, err := f.orderUC(nil).ProcessOrder(ctx, seed.DemoOrderID, seed.CashierID)
			require.ErrorIs(t, err, domain.ErrConflict)
			assert.False(t, res.Success)

			after, err := f.store.Orders().GetByID(ctx, seed.DemoOrderID)
			require.NoError(t, err)
			assert.False(t, after.InventoryProcessed)
			assert.True(t, f.stockOf(t, seed.CoffeeID).Equal(coffee))
			assert.Zero(t, f.usageCount(t, seed.CoffeeID))
		})
	}
}
