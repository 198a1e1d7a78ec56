// Package inventory contiene la aritmética pura del motor de inventario:
// normalización de recetas, cálculo de disponibilidad y faltantes.
package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/unit"
)

// StockPrecision decimales con que se persiste el stock.
const StockPrecision int32 = 3

// CostPrecision decimales del costo unitario.
const CostPrecision int32 = 4

// Unlimited MaxQuantity de un producto sin ingredientes controlados.
const Unlimited int64 = -1

// Motivos por los que un ingrediente limita la producción.
const (
	ReasonInsufficient = "insufficient_stock"
	ReasonNoInventory  = "no_inventory"
)

// Requirement consumo de un ingrediente ya normalizado a su unidad de inventario.
type Requirement struct {
	IngredientID   string
	IngredientName string
	Unit           unit.Unit
	Quantity       decimal.Decimal
}

// Shortage ingrediente que no alcanza para cubrir un Requirement.
type Shortage struct {
	Requirement
	Available decimal.Decimal
	Reason    string
}

// Availability resultado de evaluar una receta contra el stock.
type Availability struct {
	CanProduce  bool
	MaxQuantity int64 // Unlimited si ningún ingrediente controlado participa
	Limiting    *Shortage
}

// RecipeDemand normaliza las líneas de receta a la unidad de inventario de cada ingrediente
// y devuelve el consumo por unidad de producto, agrupado por ingrediente, redondeado a
// StockPrecision y ordenado por ID. Los ingredientes no controlados se omiten; un consumo que
// redondea a cero devuelve ErrInvalidQuantity. Unidades incompatibles devuelven ErrIncompatibleUnits.
func RecipeDemand(lines []*entity.ProductIngredient) ([]Requirement, error) {
	byID := make(map[string]*Requirement, len(lines))
	for _, line := range lines {
		if line.Ingredient == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, line.IngredientID)
		}
		if !line.Ingredient.IsTrackable {
			continue
		}
		if !line.QuantityRequired.IsPositive() {
			return nil, fmt.Errorf("%w: receta de %s", domain.ErrInvalidQuantity, line.Ingredient.Name)
		}
		qty, err := unit.NormalizeToInventoryUnit(line.QuantityRequired, line.Unit, line.Ingredient.Unit)
		if err != nil {
			return nil, fmt.Errorf("ingrediente %s: %w", line.Ingredient.Name, err)
		}
		if req, ok := byID[line.IngredientID]; ok {
			req.Quantity = req.Quantity.Add(qty)
			continue
		}
		byID[line.IngredientID] = &Requirement{
			IngredientID:   line.IngredientID,
			IngredientName: line.Ingredient.Name,
			Unit:           line.Ingredient.Unit,
			Quantity:       qty,
		}
	}
	out := make([]Requirement, 0, len(byID))
	for _, r := range byID {
		// disponibilidad y descuento trabajan con el mismo consumo ya redondeado
		r.Quantity = r.Quantity.Round(StockPrecision)
		if !r.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: el consumo de %s por unidad es menor a la precisión del stock", domain.ErrInvalidQuantity, r.IngredientName)
		}
		out = append(out, *r)
	}
	sortRequirements(out)
	return out, nil
}

// Scale multiplica el consumo por unidad por qty, redondeando a StockPrecision.
func Scale(perUnit []Requirement, qty int64) []Requirement {
	n := decimal.NewFromInt(qty)
	out := make([]Requirement, len(perUnit))
	for i, r := range perUnit {
		r.Quantity = r.Quantity.Mul(n).Round(StockPrecision)
		out[i] = r
	}
	return out
}

// Merge suma requerimientos de varias líneas de pedido por ingrediente.
func Merge(groups ...[]Requirement) []Requirement {
	byID := make(map[string]Requirement)
	for _, g := range groups {
		for _, r := range g {
			if acc, ok := byID[r.IngredientID]; ok {
				acc.Quantity = acc.Quantity.Add(r.Quantity)
				byID[r.IngredientID] = acc
				continue
			}
			byID[r.IngredientID] = r
		}
	}
	out := make([]Requirement, 0, len(byID))
	for _, r := range byID {
		out = append(out, r)
	}
	sortRequirements(out)
	return out
}

// Shortages compara los requerimientos con el stock disponible.
// stock solo contiene ingredientes con registro de inventario; los ausentes fallan cerrado.
func Shortages(reqs []Requirement, stock map[string]decimal.Decimal) []Shortage {
	var out []Shortage
	for _, r := range reqs {
		available, ok := stock[r.IngredientID]
		if !ok {
			out = append(out, Shortage{Requirement: r, Available: decimal.Zero, Reason: ReasonNoInventory})
			continue
		}
		if available.LessThan(r.Quantity) {
			out = append(out, Shortage{Requirement: r, Available: available, Reason: ReasonInsufficient})
		}
	}
	return out
}

// Evaluate calcula cuántas unidades se pueden producir con el stock actual:
// el mínimo de floor(stock / consumo) entre todas las líneas.
func Evaluate(perUnit []Requirement, stock map[string]decimal.Decimal, requested int64) Availability {
	if len(perUnit) == 0 {
		return Availability{CanProduce: true, MaxQuantity: Unlimited}
	}
	var limiting *Shortage
	maxQty := int64(-1)
	for _, r := range perUnit {
		available, ok := stock[r.IngredientID]
		if !ok {
			return Availability{
				CanProduce:  requested == 0,
				MaxQuantity: 0,
				Limiting:    &Shortage{Requirement: r, Available: decimal.Zero, Reason: ReasonNoInventory},
			}
		}
		n := available.Div(r.Quantity).Floor().IntPart()
		if n < 0 {
			n = 0
		}
		if maxQty < 0 || n < maxQty {
			maxQty = n
			limiting = &Shortage{Requirement: r, Available: available, Reason: ReasonInsufficient}
		}
	}
	return Availability{
		CanProduce:  maxQty >= requested,
		MaxQuantity: maxQty,
		Limiting:    limiting,
	}
}

func sortRequirements(reqs []Requirement) {
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].IngredientID < reqs[j].IngredientID })
}
