// Package memory implementa los puertos de persistencia en memoria.
//
// Se usa con APP_STORAGE=memory (demo sin base de datos) y en los tests de los casos de uso.
// Las transacciones se serializan: Run trabaja sobre una copia del estado confirmado y solo la
// publica si fn no devuelve error, lo que da commit/rollback completos.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/order"
	"github.com/jhoicas/cafe-pos-api/internal/application/refund"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*Store)(nil)
	_ order.TxRunner     = (*Store)(nil)
	_ refund.TxRunner    = (*Store)(nil)
)

// state estado completo. Un state confirmado nunca se modifica: cada escritura trabaja sobre clone().
type state struct {
	ingredients  map[string]entity.Ingredient
	inventories  map[string]entity.IngredientInventory // por ingredient_id
	products     map[string]entity.Product
	recipes      map[string][]entity.ProductIngredient // por product_id
	transactions []entity.InventoryTransaction
	orders       map[string]entity.Order
	refunds      []entity.RefundLog
	users        map[string]entity.User
}

func newState() *state {
	return &state{
		ingredients: make(map[string]entity.Ingredient),
		inventories: make(map[string]entity.IngredientInventory),
		products:    make(map[string]entity.Product),
		recipes:     make(map[string][]entity.ProductIngredient),
		orders:      make(map[string]entity.Order),
		users:       make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		ingredients:  make(map[string]entity.Ingredient, len(s.ingredients)),
		inventories:  make(map[string]entity.IngredientInventory, len(s.inventories)),
		products:     make(map[string]entity.Product, len(s.products)),
		recipes:      make(map[string][]entity.ProductIngredient, len(s.recipes)),
		transactions: append([]entity.InventoryTransaction(nil), s.transactions...),
		orders:       make(map[string]entity.Order, len(s.orders)),
		refunds:      append([]entity.RefundLog(nil), s.refunds...),
		users:        make(map[string]entity.User, len(s.users)),
	}
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	for k, v := range s.inventories {
		c.inventories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	// las líneas de receta no se modifican dentro de una tx: basta compartir el slice
	for k, v := range s.recipes {
		c.recipes[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v // Items se copia al escribir (putOrder)
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria; implementa TxRunner para todos los casos de uso.
type Store struct {
	txMu sync.Mutex   // una transacción (o escritura) a la vez
	mu   sync.RWMutex // protege cur
	cur  *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{cur: newState()}
}

func (s *Store) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// update aplica fn sobre una copia y la publica si no hay error.
func (s *Store) update(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	next := s.current().clone()
	if err := fn(next); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = next
	s.mu.Unlock()
	return nil
}

// Run ejecuta fn con repositorios atados a una copia del estado y la confirma si fn no falla.
// Mientras corre, ninguna otra transacción avanza: equivale a tener bloqueadas todas las filas.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.update(func(st *state) error {
		sc := txScope(st)
		return fn(repository.TxRepos{
			Inventory:    &IngredientInventoryRepo{sc},
			Transactions: &InventoryTransactionRepo{sc},
			Orders:       &OrderRepo{sc},
			Refunds:      &RefundLogRepo{sc},
		})
	})
}

// scope resuelve dónde leen y escriben los repositorios: el estado confirmado (fuera de tx) o la
// copia de la tx en curso.
type scope struct {
	read  func() *state
	write func(fn func(st *state) error) error
}

func (s *Store) scope() scope {
	return scope{read: s.current, write: s.update}
}

func txScope(st *state) scope {
	return scope{
		read:  func() *state { return st },
		write: func(fn func(st *state) error) error { return fn(st) },
	}
}

// Repositorios fuera de transacción.

func (s *Store) Ingredients() *IngredientRepo { return &IngredientRepo{s.scope()} }
func (s *Store) Inventories() *IngredientInventoryRepo { return &IngredientInventoryRepo{s.scope()} }
func (s *Store) Products() *ProductRepo { return &ProductRepo{s.scope()} }
func (s *Store) Recipes() *RecipeRepo { return &RecipeRepo{s.scope()} }
func (s *Store) Transactions() *InventoryTransactionRepo { return &InventoryTransactionRepo{s.scope()} }
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s.scope()} }
func (s *Store) Refunds() *RefundLogRepo { return &RefundLogRepo{s.scope()} }
func (s *Store) Users() *UserRepo { return &UserRepo{s.scope()} }
func (s *Store) Sales() *SalesRepo { return &SalesRepo{s.scope()} }
