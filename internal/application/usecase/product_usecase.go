package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/prompt"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del panel REST.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	tx         prompt.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository, tx prompt.TxRunner) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, tx: tx}
}

// Create crea un producto con su set de categorías. Active por defecto es true.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	var out *entity.Product
	err := uc.tx.Run(ctx, func(cats repository.CategoryRepository, prods repository.ProductRepository) error {
		ids, err := checkCategoryIDs(cats, in.Categories)
		if err != nil {
			return err
		}
		s, err := prompt.UniqueSlug(in.Name, prods.SlugExists, 0)
		if err != nil {
			return err
		}
		now := time.Now()
		p := &entity.Product{
			Name:      in.Name,
			Slug:      s,
			Price:     in.Price.Round(2),
			Stock:     in.Stock,
			Active:    active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := prods.Create(p); err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := prods.ReplaceCategories(p.ID, ids); err != nil {
				return err
			}
		}
		out, err = prods.GetByID(p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// GetByID obtiene un producto por ID con sus categorías.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// List lista productos con filtros opcionales por categoría y estado.
func (uc *ProductUseCase) List(filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update actualiza campos parciales. Renombrar regenera el slug; Categories
// no-nil sustituye el set completo.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, func(cats repository.CategoryRepository, prods repository.ProductRepository) error {
		p, err := prods.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil && *in.Name != p.Name {
			if *in.Name == "" {
				return domain.ErrInvalidInput
			}
			p.Name = *in.Name
			s, err := prompt.UniqueSlug(p.Name, prods.SlugExists, p.ID)
			if err != nil {
				return err
			}
			p.Slug = s
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return domain.ErrInvalidInput
			}
			p.Price = in.Price.Round(2)
		}
		if in.Stock != nil {
			if *in.Stock < 0 {
				return domain.ErrInvalidInput
			}
			p.Stock = *in.Stock
		}
		if in.Active != nil {
			p.Active = *in.Active
		}
		p.UpdatedAt = time.Now()
		if err := prods.Update(p); err != nil {
			return err
		}
		if in.Categories != nil {
			ids, err := checkCategoryIDs(cats, *in.Categories)
			if err != nil {
				return err
			}
			if err := prods.ReplaceCategories(p.ID, ids); err != nil {
				return err
			}
		}
		out, err = prods.GetByID(p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Delete elimina un producto y sus asociaciones.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(_ repository.CategoryRepository, prods repository.ProductRepository) error {
		p, err := prods.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return prods.Delete(id)
	})
}

// checkCategoryIDs valida que todos los ids existan y deduplica preservando orden.
func checkCategoryIDs(cats repository.CategoryRepository, ids []int64) ([]int64, error) {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		cat, err := cats.GetByID(id)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrInvalidInput
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	slugs := p.CategorySlugs()
	if slugs == nil {
		slugs = []string{}
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		Price:      p.Price.StringFixed(2),
		Stock:      p.Stock,
		Active:     p.Active,
		Categories: slugs,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
