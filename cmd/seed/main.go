// seed genera el script SQL con el catálogo demo del café (usuarios, ingredientes, inventario,
// recetas y un pedido pagado) a partir de internal/infrastructure/seed.
//
// Uso: go run ./cmd/seed [ruta de salida]
// Escribe por defecto: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/seed"
)

func main() {
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_demo.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	c, err := seed.Demo(time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Construir catálogo: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeCatalog(out, c); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d ingredientes, %d productos, %d usuarios, %d pedidos\n",
		outPath, len(c.Ingredients), len(c.Products), len(c.Users), len(c.Orders))
}

// writeCatalog vuelca el catálogo como INSERT idempotentes (ON CONFLICT DO NOTHING).
func writeCatalog(w io.Writer, c *seed.Catalog) error {
	var b strings.Builder
	b.WriteString("-- Catálogo demo del café. Generado por cmd/seed; no editar a mano.\n")
	b.WriteString("-- Credenciales: " + seed.AdminEmail + " / " + seed.AdminPassword + " (PIN " + seed.AdminPIN + ")\n\n")

	b.WriteString("-- 1. Usuarios\n")
	for _, u := range c.Users {
		fmt.Fprintf(&b, "INSERT INTO users (id, email, password_hash, admin_pin_hash, name, role, status)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', %s, '%s', '%s', '%s')\nON CONFLICT (id) DO NOTHING;\n",
			u.ID, escapeSQL(u.Email), escapeSQL(u.PasswordHash), nullable(u.AdminPINHash),
			escapeSQL(u.Name), u.Role, u.Status)
	}

	b.WriteString("\n-- 2. Ingredientes\n")
	for _, i := range c.Ingredients {
		fmt.Fprintf(&b, "INSERT INTO ingredients (id, name, unit, is_trackable) VALUES ('%s', '%s', '%s', %t)\nON CONFLICT (id) DO NOTHING;\n",
			i.ID, escapeSQL(i.Name), i.Unit, i.IsTrackable)
	}

	b.WriteString("\n-- 3. Inventario\n")
	for _, inv := range c.Inventories {
		fmt.Fprintf(&b, "INSERT INTO ingredient_inventories (id, ingredient_id, current_stock, min_stock_level, max_stock_level, reorder_level, unit_cost, location)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, %s, %s, %s, %s, %s)\nON CONFLICT (ingredient_id) DO NOTHING;\n",
			inv.ID, inv.IngredientID, inv.CurrentStock, inv.MinStockLevel, inv.MaxStockLevel,
			inv.ReorderLevel, inv.UnitCost, nullable(inv.Location))
	}
	for _, t := range c.Transactions {
		fmt.Fprintf(&b, "INSERT INTO inventory_transactions (id, ingredient_id, transaction_type, quantity_change, previous_stock, new_stock, unit_cost, reason, user_id)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', %s, %s, %s, %s, '%s', '%s')\nON CONFLICT (id) DO NOTHING;\n",
			t.ID, t.IngredientID, t.Type, t.QuantityChange, t.PreviousStock, t.NewStock, t.UnitCost,
			escapeSQL(t.Reason), t.UserID)
	}

	b.WriteString("\n-- 4. Productos y recetas\n")
	for _, p := range c.Products {
		fmt.Fprintf(&b, "INSERT INTO products (id, name, price, is_active) VALUES ('%s', '%s', %s, %t)\nON CONFLICT (id) DO NOTHING;\n",
			p.ID, escapeSQL(p.Name), p.Price, p.IsActive)
	}
	productIDs := make([]string, 0, len(c.Recipes))
	for id := range c.Recipes {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)
	for _, id := range productIDs {
		for _, l := range c.Recipes[id] {
			fmt.Fprintf(&b, "INSERT INTO product_ingredients (id, product_id, ingredient_id, quantity_required, unit) VALUES ('%s', '%s', '%s', %s, '%s')\nON CONFLICT (product_id, ingredient_id) DO NOTHING;\n",
				l.ID, l.ProductID, l.IngredientID, l.QuantityRequired, l.Unit)
		}
	}

	b.WriteString("\n-- 5. Pedidos\n")
	for _, o := range c.Orders {
		fmt.Fprintf(&b, "INSERT INTO orders (id, number, customer_name, status, payment_status, payment_method, total)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, '%s', '%s', %s, %s)\nON CONFLICT (id) DO NOTHING;\n",
			o.ID, escapeSQL(o.Number), nullable(o.CustomerName), o.Status, o.PaymentStatus,
			nullable(o.PaymentMethod), o.Total)
		for _, it := range o.Items {
			fmt.Fprintf(&b, "INSERT INTO order_items (id, order_id, product_id, quantity, unit_price) VALUES ('%s', '%s', '%s', %d, %s)\nON CONFLICT (id) DO NOTHING;\n",
				it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
