package prompt

import (
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Resolver resuelve References contra el catálogo: id → clave primaria,
// texto → slug exacto y, si no hay slug, nombre exacto sin mayúsculas.
// Nunca adivina: cero coincidencias es NotFound y dos o más es Ambiguous.
type Resolver struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewResolver construye el resolver sobre los puertos de persistencia.
func NewResolver(categories repository.CategoryRepository, products repository.ProductRepository) *Resolver {
	return &Resolver{categories: categories, products: products}
}

// Category resuelve una referencia a exactamente una categoría.
// La rama Ambiguous es inalcanzable aquí (el store fuerza nombres únicos),
// pero el contrato del Resolver la mantiene para ambos tipos de entidad.
func (r *Resolver) Category(ref Reference) (*entity.Category, error) {
	switch ref.Kind {
	case ByID:
		cat, err := r.categories.GetByID(ref.ID)
		if err != nil {
			return nil, errInternal(err)
		}
		if cat == nil {
			return nil, errNotFound("Categoría", ref.String())
		}
		return cat, nil
	case BySlug:
		cat, err := r.categories.GetBySlug(ref.Text)
		if err != nil {
			return nil, errInternal(err)
		}
		if cat != nil {
			return cat, nil
		}
		return r.Category(Reference{Kind: ByName, Text: ref.Text, raw: ref.raw})
	default: // ByName
		cat, err := r.categories.GetByName(ref.Text)
		if err != nil {
			return nil, errInternal(err)
		}
		if cat == nil {
			return nil, errNotFound("Categoría", ref.String())
		}
		return cat, nil
	}
}

// Product resuelve una referencia a exactamente un producto. Los nombres de
// producto no son únicos: varias coincidencias por nombre fallan Ambiguous y
// el usuario debe desambiguar con id o slug.
func (r *Resolver) Product(ref Reference) (*entity.Product, error) {
	switch ref.Kind {
	case ByID:
		p, err := r.products.GetByID(ref.ID)
		if err != nil {
			return nil, errInternal(err)
		}
		if p == nil {
			return nil, errNotFound("Producto", ref.String())
		}
		return p, nil
	case BySlug:
		p, err := r.products.GetBySlug(ref.Text)
		if err != nil {
			return nil, errInternal(err)
		}
		if p != nil {
			return p, nil
		}
		return r.Product(Reference{Kind: ByName, Text: ref.Text, raw: ref.raw})
	default: // ByName
		matches, err := r.products.ListByName(ref.Text)
		if err != nil {
			return nil, errInternal(err)
		}
		switch len(matches) {
		case 0:
			return nil, errNotFound("Producto", ref.String())
		case 1:
			return matches[0], nil
		default:
			return nil, errAmbiguous("Producto", ref.String())
		}
	}
}

// Categories resuelve una lista de referencias a un set de categorías
// distintas, fallando en la primera referencia irresoluble (fail-fast,
// sin aplicación parcial).
func (r *Resolver) Categories(refs []Reference) ([]*entity.Category, error) {
	seen := make(map[int64]bool, len(refs))
	out := make([]*entity.Category, 0, len(refs))
	for _, ref := range refs {
		cat, err := r.Category(ref)
		if err != nil {
			return nil, err
		}
		if seen[cat.ID] {
			continue
		}
		seen[cat.ID] = true
		out = append(out, cat)
	}
	return out, nil
}
