package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var (
	_ repository.IngredientRepository           = (*IngredientRepo)(nil)
	_ repository.IngredientInventoryRepository  = (*IngredientInventoryRepo)(nil)
	_ repository.ProductRepository              = (*ProductRepo)(nil)
	_ repository.RecipeRepository               = (*RecipeRepo)(nil)
	_ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)
	_ repository.OrderRepository                = (*OrderRepo)(nil)
	_ repository.RefundLogRepository            = (*RefundLogRepo)(nil)
	_ repository.UserRepository                 = (*UserRepo)(nil)
	_ repository.SalesRepository                = (*SalesRepo)(nil)
)

// IngredientRepo catálogo de ingredientes.
type IngredientRepo struct{ sc scope }

func (r *IngredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	i, ok := r.sc.read().ingredients[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r *IngredientRepo) List(_ context.Context) ([]*entity.Ingredient, error) {
	st := r.sc.read()
	list := make([]*entity.Ingredient, 0, len(st.ingredients))
	for _, i := range st.ingredients {
		i := i
		list = append(list, &i)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Name < list[b].Name })
	return list, nil
}

// IngredientInventoryRepo stock por ingrediente. GetForUpdate no necesita bloquear: Run ya serializa.
type IngredientInventoryRepo struct{ sc scope }

func (r *IngredientInventoryRepo) GetByIngredient(_ context.Context, ingredientID string) (*entity.IngredientInventory, error) {
	inv, ok := r.sc.read().inventories[ingredientID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *IngredientInventoryRepo) GetForUpdate(ctx context.Context, ingredientID string) (*entity.IngredientInventory, error) {
	return r.GetByIngredient(ctx, ingredientID)
}

func (r *IngredientInventoryRepo) GetOrCreateForUpdate(ctx context.Context, inv *entity.IngredientInventory) (*entity.IngredientInventory, error) {
	err := r.sc.write(func(st *state) error {
		if _, ok := st.inventories[inv.IngredientID]; ok {
			return nil
		}
		if inv.CurrentStock.IsNegative() {
			return domain.ErrInsufficientStock
		}
		st.inventories[inv.IngredientID] = *inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByIngredient(ctx, inv.IngredientID)
}

func (r *IngredientInventoryRepo) Update(_ context.Context, inv *entity.IngredientInventory) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.inventories[inv.IngredientID]; !ok {
			return domain.ErrInventoryNotFound
		}
		// mismo CHECK (current_stock >= 0) que la tabla
		if inv.CurrentStock.IsNegative() {
			return domain.ErrInsufficientStock
		}
		st.inventories[inv.IngredientID] = *inv
		return nil
	})
}

func (r *IngredientInventoryRepo) ListLowStock(_ context.Context) ([]repository.LowStockItem, error) {
	st := r.sc.read()
	var list []repository.LowStockItem
	for id, inv := range st.inventories {
		ing, ok := st.ingredients[id]
		if !ok || !ing.IsTrackable || !inv.IsLowStock() {
			continue
		}
		list = append(list, repository.LowStockItem{
			IngredientID:   id,
			IngredientName: ing.Name,
			Unit:           ing.Unit,
			CurrentStock:   inv.CurrentStock,
			ReorderLevel:   inv.ReorderLevel,
			MaxStockLevel:  inv.MaxStockLevel,
			UnitCost:       inv.UnitCost,
		})
	}
	sort.Slice(list, func(a, b int) bool { return list[a].IngredientName < list[b].IngredientName })
	return list, nil
}

// ProductRepo catálogo de productos.
type ProductRepo struct{ sc scope }

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.sc.read().products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// RecipeRepo líneas de receta con el ingrediente cargado.
type RecipeRepo struct{ sc scope }

func (r *RecipeRepo) ListByProduct(_ context.Context, productID string) ([]*entity.ProductIngredient, error) {
	st := r.sc.read()
	lines := st.recipes[productID]
	out := make([]*entity.ProductIngredient, 0, len(lines))
	for _, l := range lines {
		l := l
		if ing, ok := st.ingredients[l.IngredientID]; ok {
			l.Ingredient = &ing
		} else {
			l.Ingredient = nil
		}
		out = append(out, &l)
	}
	return out, nil
}

// InventoryTransactionRepo bitácora append-only.
type InventoryTransactionRepo struct{ sc scope }

func (r *InventoryTransactionRepo) Create(_ context.Context, t *entity.InventoryTransaction) error {
	return r.sc.write(func(st *state) error {
		cp := *t
		if t.OrderItemID != nil {
			id := *t.OrderItemID
			cp.OrderItemID = &id
		}
		st.transactions = append(st.transactions, cp)
		return nil
	})
}

func (r *InventoryTransactionRepo) ListByIngredient(_ context.Context, ingredientID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	st := r.sc.read()
	var out []*entity.InventoryTransaction
	skipped := 0
	for i := len(st.transactions) - 1; i >= 0; i-- {
		t := st.transactions[i]
		if t.IngredientID != ingredientID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, &t)
	}
	return out, nil
}

func (r *InventoryTransactionRepo) LatestByIngredient(_ context.Context, ingredientID string) (*entity.InventoryTransaction, error) {
	st := r.sc.read()
	for i := len(st.transactions) - 1; i >= 0; i-- {
		if st.transactions[i].IngredientID == ingredientID {
			t := st.transactions[i]
			return &t, nil
		}
	}
	return nil, nil
}

// OrderRepo pedidos con sus líneas.
type OrderRepo struct{ sc scope }

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.sc.read().orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) MarkInventoryProcessed(_ context.Context, id string, at time.Time) error {
	return r.sc.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrOrderNotFound
		}
		if o.InventoryProcessed {
			return domain.ErrAlreadyProcessed
		}
		o.InventoryProcessed = true
		o.InventoryProcessedAt = &at
		o.UpdatedAt = at
		st.orders[id] = *copyOrder(o)
		return nil
	})
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status, paymentStatus string) error {
	return r.sc.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrOrderNotFound
		}
		o.Status = status
		o.PaymentStatus = paymentStatus
		o.UpdatedAt = time.Now()
		st.orders[id] = *copyOrder(o)
		return nil
	})
}

// RefundLogRepo bitácora de reembolsos; un registro por pedido como el índice único de la tabla.
type RefundLogRepo struct{ sc scope }

func (r *RefundLogRepo) Create(_ context.Context, l *entity.RefundLog) error {
	return r.sc.write(func(st *state) error {
		for _, existing := range st.refunds {
			if existing.OrderID == l.OrderID {
				return domain.ErrAlreadyRefunded
			}
		}
		st.refunds = append(st.refunds, *l)
		return nil
	})
}

func (r *RefundLogRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.RefundLog, error) {
	var out []*entity.RefundLog
	for _, l := range r.sc.read().refunds {
		if l.OrderID == orderID {
			l := l
			out = append(out, &l)
		}
	}
	return out, nil
}

// UserRepo usuarios del punto de venta.
type UserRepo struct{ sc scope }

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.sc.read().users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.sc.read().users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// SalesRepo métricas de venta con el mismo filtro que la consulta SQL.
type SalesRepo struct{ sc scope }

func (r *SalesRepo) GetSalesSummary(_ context.Context, from, to time.Time) (repository.SalesSummaryResult, error) {
	st := r.sc.read()
	res := repository.SalesSummaryResult{GrossRevenue: decimal.Zero, RefundedAmount: decimal.Zero}
	for _, o := range st.orders {
		if o.CreatedAt.Before(from) || o.CreatedAt.After(to) || o.Status == entity.OrderStatusCancelled {
			continue
		}
		switch o.PaymentStatus {
		case entity.PaymentStatusPaid, entity.PaymentStatusPartial:
			res.OrderCount++
			res.GrossRevenue = res.GrossRevenue.Add(o.Total)
		case entity.PaymentStatusRefunded:
			res.RefundedCount++
		}
	}
	for _, l := range st.refunds {
		if !l.CreatedAt.Before(from) && !l.CreatedAt.After(to) {
			res.RefundedAmount = res.RefundedAmount.Add(l.Amount)
		}
	}
	return res, nil
}

func copyOrder(o entity.Order) *entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.InventoryProcessedAt != nil {
		at := *o.InventoryProcessedAt
		o.InventoryProcessedAt = &at
	}
	return &o
}
