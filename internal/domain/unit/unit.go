// Package unit define las unidades de medida soportadas y su conversión.
//
// Las tablas de familias, factores y etiquetas son datos puros; el tipo Unit no
// lleva comportamiento propio.
package unit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
)

// Unit código de unidad de medida (ej: "g", "ml", "pcs").
type Unit string

// Family familia de medida. Solo se convierte dentro de la misma familia.
type Family string

const (
	FamilyMass   Family = "mass"
	FamilyVolume Family = "volume"
	FamilyCount  Family = "count"
)

// Masa (base: gramo)
const (
	Milligram Unit = "mg"
	Gram      Unit = "g"
	Kilogram  Unit = "kg"
	Ounce     Unit = "oz"
	Pound     Unit = "lb"
)

// Volumen (base: mililitro)
const (
	Milliliter Unit = "ml"
	Centiliter Unit = "cl"
	Deciliter  Unit = "dl"
	Liter      Unit = "l"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	Cup        Unit = "cup"
	FluidOunce Unit = "fl_oz"
)

// Conteo (base: pieza)
const Piece Unit = "pcs"

// Precision decimales con que Convert entrega el resultado.
const Precision int32 = 6

var families = map[Unit]Family{
	Milligram:  FamilyMass,
	Gram:       FamilyMass,
	Kilogram:   FamilyMass,
	Ounce:      FamilyMass,
	Pound:      FamilyMass,
	Milliliter: FamilyVolume,
	Centiliter: FamilyVolume,
	Deciliter:  FamilyVolume,
	Liter:      FamilyVolume,
	Teaspoon:   FamilyVolume,
	Tablespoon: FamilyVolume,
	Cup:        FamilyVolume,
	FluidOunce: FamilyVolume,
	Piece:      FamilyCount,
}

// factors cantidad de unidades base de la familia que contiene una unidad.
var factors = map[Unit]decimal.Decimal{
	Milligram:  decimal.RequireFromString("0.001"),
	Gram:       decimal.NewFromInt(1),
	Kilogram:   decimal.NewFromInt(1000),
	Ounce:      decimal.RequireFromString("28.349523125"),
	Pound:      decimal.RequireFromString("453.59237"),
	Milliliter: decimal.NewFromInt(1),
	Centiliter: decimal.NewFromInt(10),
	Deciliter:  decimal.NewFromInt(100),
	Liter:      decimal.NewFromInt(1000),
	Teaspoon:   decimal.RequireFromString("4.92892159375"),
	Tablespoon: decimal.RequireFromString("14.78676478125"),
	Cup:        decimal.NewFromInt(240),
	FluidOunce: decimal.RequireFromString("29.5735295625"),
	Piece:      decimal.NewFromInt(1),
}

var baseUnits = map[Family]Unit{
	FamilyMass:   Gram,
	FamilyVolume: Milliliter,
	FamilyCount:  Piece,
}

var labels = map[Unit]string{
	Milligram:  "miligramos",
	Gram:       "gramos",
	Kilogram:   "kilogramos",
	Ounce:      "onzas",
	Pound:      "libras",
	Milliliter: "mililitros",
	Centiliter: "centilitros",
	Deciliter:  "decilitros",
	Liter:      "litros",
	Teaspoon:   "cucharaditas",
	Tablespoon: "cucharadas",
	Cup:        "tazas",
	FluidOunce: "onzas líquidas",
	Piece:      "unidades",
}

// aliases nombres alternativos aceptados por Parse (en minúscula).
var aliases = map[string]Unit{
	"milligram": Milligram, "milligrams": Milligram, "miligramo": Milligram, "miligramos": Milligram,
	"gram": Gram, "grams": Gram, "gr": Gram, "gramo": Gram, "gramos": Gram,
	"kilogram": Kilogram, "kilograms": Kilogram, "kilo": Kilogram, "kilos": Kilogram, "kilogramo": Kilogram, "kilogramos": Kilogram,
	"ounce": Ounce, "ounces": Ounce, "onza": Ounce, "onzas": Ounce,
	"pound": Pound, "pounds": Pound, "lbs": Pound, "libra": Pound, "libras": Pound,
	"milliliter": Milliliter, "milliliters": Milliliter, "millilitre": Milliliter, "mililitro": Milliliter, "mililitros": Milliliter,
	"centiliter": Centiliter, "centiliters": Centiliter,
	"deciliter": Deciliter, "deciliters": Deciliter,
	"liter": Liter, "liters": Liter, "litre": Liter, "litres": Liter, "lt": Liter, "litro": Liter, "litros": Liter,
	"teaspoon": Teaspoon, "teaspoons": Teaspoon, "cucharadita": Teaspoon,
	"tablespoon": Tablespoon, "tablespoons": Tablespoon, "cucharada": Tablespoon,
	"cups": Cup, "taza": Cup, "tazas": Cup,
	"floz": FluidOunce, "fl oz": FluidOunce, "fluid_ounce": FluidOunce,
	"pc": Piece, "piece": Piece, "pieces": Piece, "unit": Piece, "units": Piece, "unidad": Piece, "unidades": Piece, "und": Piece,
}

// Parse interpreta un código o alias de unidad sin distinguir mayúsculas.
func Parse(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := families[Unit(key)]; ok {
		return Unit(key), nil
	}
	if u, ok := aliases[key]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownUnit, s)
}

// All devuelve todas las unidades conocidas ordenadas por familia y código.
func All() []Unit {
	out := make([]Unit, 0, len(families))
	for u := range families {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if families[out[i]] != families[out[j]] {
			return families[out[i]] < families[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Valid indica si u es una unidad conocida.
func Valid(u Unit) bool {
	_, ok := families[u]
	return ok
}

// FamilyOf devuelve la familia de u.
func FamilyOf(u Unit) (Family, bool) {
	f, ok := families[u]
	return f, ok
}

// Base devuelve la unidad base de la familia (g, ml, pcs).
func Base(f Family) Unit {
	return baseUnits[f]
}

// Label nombre legible de la unidad; el código si no está en la tabla.
func Label(u Unit) string {
	if l, ok := labels[u]; ok {
		return l
	}
	return string(u)
}

// CanConvert indica si from y to pertenecen a la misma familia. Nunca falla.
func CanConvert(from, to Unit) bool {
	ff, ok := families[from]
	if !ok {
		return false
	}
	ft, ok := families[to]
	return ok && ff == ft
}

// Convert convierte qty de from a to, redondeado a Precision. Cero y negativos se convierten
// aritméticamente (se preserva el signo); validar el signo es responsabilidad del llamador.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	ff, ok := families[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, from)
	}
	ft, ok := families[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, to)
	}
	if ff != ft {
		return decimal.Zero, fmt.Errorf("%w: %s (%s) → %s (%s)", domain.ErrIncompatibleUnits, from, ff, to, ft)
	}
	if from == to {
		return qty, nil
	}
	return qty.Mul(factors[from]).Div(factors[to]).Round(Precision), nil
}

// NormalizeToInventoryUnit convierte la cantidad de una línea de receta a la unidad del inventario.
// Una unidad de receta vacía significa que ya está expresada en la unidad del inventario.
func NormalizeToInventoryUnit(qty decimal.Decimal, recipeUnit, inventoryUnit Unit) (decimal.Decimal, error) {
	if recipeUnit == "" {
		recipeUnit = inventoryUnit
	}
	return Convert(qty, recipeUnit, inventoryUnit)
}
