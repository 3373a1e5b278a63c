// Package feed genera el feed XML del catálogo público, pensado para
// agregadores y comparadores de precios.
package feed

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// Builder serializa el catálogo a XML.
type Builder struct {
	storeName string
}

// NewBuilder construye el generador del feed.
func NewBuilder(storeName string) *Builder {
	return &Builder{storeName: storeName}
}

// Build genera el documento XML del catálogo. Solo recibe productos activos.
func (b *Builder) Build(products []dto.CatalogProduct) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("catalog")
	root.CreateAttr("store", b.storeName)
	root.CreateAttr("generated_at", time.Now().UTC().Format(time.RFC3339))

	for _, p := range products {
		prod := root.CreateElement("product")
		prod.CreateAttr("id", fmt.Sprintf("%d", p.ID))
		prod.CreateAttr("slug", p.Slug)
		prod.CreateElement("name").SetText(p.Name)
		price := prod.CreateElement("price")
		price.CreateAttr("currency", "COP")
		price.SetText(p.Price)
		prod.CreateElement("stock").SetText(fmt.Sprintf("%d", p.Stock))
		cats := prod.CreateElement("categories")
		for _, slug := range p.Categories {
			cats.CreateElement("category").SetText(slug)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("feed: serializar XML: %w", err)
	}
	return out, nil
}
