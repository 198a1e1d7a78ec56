package memory

import (
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
)

// PutIngredient registra o reemplaza un ingrediente.
func (s *Store) PutIngredient(i entity.Ingredient) {
	_ = s.update(func(st *state) error {
		st.ingredients[i.ID] = i
		return nil
	})
}

// PutInventory registra o reemplaza el inventario de un ingrediente.
func (s *Store) PutInventory(inv entity.IngredientInventory) {
	_ = s.update(func(st *state) error {
		st.inventories[inv.IngredientID] = inv
		return nil
	})
}

// PutProduct registra un producto con su receta.
func (s *Store) PutProduct(p entity.Product, lines ...entity.ProductIngredient) {
	_ = s.update(func(st *state) error {
		st.products[p.ID] = p
		recipe := make([]entity.ProductIngredient, 0, len(lines))
		for _, l := range lines {
			l.ProductID = p.ID
			l.Ingredient = nil
			recipe = append(recipe, l)
		}
		st.recipes[p.ID] = recipe
		return nil
	})
}

// PutOrder registra o reemplaza un pedido.
func (s *Store) PutOrder(o entity.Order) {
	_ = s.update(func(st *state) error {
		st.orders[o.ID] = *copyOrder(o)
		return nil
	})
}

// PutUser registra o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	_ = s.update(func(st *state) error {
		st.users[u.ID] = u
		return nil
	})
}

// PutTransaction agrega una transacción a la bitácora sin tocar el stock.
func (s *Store) PutTransaction(t entity.InventoryTransaction) {
	_ = s.update(func(st *state) error {
		st.transactions = append(st.transactions, t)
		return nil
	})
}

// Load carga un catálogo completo.
func (s *Store) Load(c *seed.Catalog) {
	for _, i := range c.Ingredients {
		s.PutIngredient(i)
	}
	for _, inv := range c.Inventories {
		s.PutInventory(inv)
	}
	for _, p := range c.Products {
		s.PutProduct(p, c.Recipes[p.ID]...)
	}
	for _, u := range c.Users {
		s.PutUser(u)
	}
	for _, o := range c.Orders {
		s.PutOrder(o)
	}
	for _, t := range c.Transactions {
		s.PutTransaction(t)
	}
}
