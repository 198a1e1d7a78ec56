// Package format da formato local a cantidades y montos en los mensajes para el usuario.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/cafe-pos-api/internal/domain/unit"
)

// DefaultLocale locale usado cuando la configuración no define uno válido.
const DefaultLocale = "es-CO"

// Printer imprime mensajes con el formato numérico del locale configurado.
type Printer struct {
	p *message.Printer
}

// New construye el printer para locale (BCP 47, ej: "es-CO", "en-US").
func New(locale string) *Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Printer{p: message.NewPrinter(tag)}
}

// Quantity formatea una cantidad con hasta 3 decimales seguida del código de unidad.
func (p *Printer) Quantity(q decimal.Decimal, u unit.Unit) string {
	return p.p.Sprintf("%v %s", number.Decimal(q.InexactFloat64(), number.MaxFractionDigits(3)), string(u))
}

// Amount formatea un monto con dos decimales.
func (p *Printer) Amount(a decimal.Decimal) string {
	return p.p.Sprintf("%v", number.Decimal(a.InexactFloat64(), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Sprintf delega en el printer del locale.
func (p *Printer) Sprintf(format string, args ...any) string {
	return p.p.Sprintf(format, args...)
}
