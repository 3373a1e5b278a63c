package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Price nunca es negativo y se persiste con escala fija de 2 decimales;
// Stock nunca es negativo. El slug es único en toda la tienda: si dos
// productos comparten nombre, el segundo recibe un sufijo numérico.
type Product struct {
	ID     int64
	Name   string
	Slug   string
	Price  decimal.Decimal
	Stock  int
	Active bool
	// Categories viene poblado en lecturas con join; el set no contiene
	// duplicados y solo referencia categorías existentes.
	Categories []Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CategorySlugs devuelve los slugs de las categorías asociadas (catálogo público).
func (p *Product) CategorySlugs() []string {
	slugs := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		slugs = append(slugs, c.Slug)
	}
	return slugs
}
