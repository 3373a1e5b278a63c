package usecase

import (
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CatalogUseCase vista pública del catálogo: solo productos activos.
// Alimenta el endpoint JSON, el feed XML y la exportación PDF.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List devuelve los productos activos del catálogo.
func (uc *CatalogUseCase) List() ([]dto.CatalogProduct, error) {
	active := true
	list, err := uc.products.List(repository.ProductFilter{Active: &active})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogProduct, 0, len(list))
	for _, p := range list {
		slugs := p.CategorySlugs()
		if slugs == nil {
			slugs = []string{}
		}
		items = append(items, dto.CatalogProduct{
			ID:         p.ID,
			Name:       p.Name,
			Slug:       p.Slug,
			Price:      p.Price.StringFixed(2),
			Stock:      p.Stock,
			Categories: slugs,
		})
	}
	return items, nil
}
