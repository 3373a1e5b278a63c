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

// CategoryUseCase casos de uso CRUD para categorías del panel REST.
// Las escrituras corren en transacción; las lecturas usan los repos del pool.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	tx   prompt.TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, tx prompt.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx}
}

// Create crea una categoría. El slug se deriva del nombre si no viene explícito
// y se desambigua con sufijo numérico. Devuelve ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Category
	err := uc.tx.Run(ctx, func(cats repository.CategoryRepository, _ repository.ProductRepository) error {
		existing, err := cats.GetByName(in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		base := in.Slug
		if base == "" {
			base = in.Name
		}
		s, err := prompt.UniqueSlug(base, cats.SlugExists, 0)
		if err != nil {
			return err
		}
		now := time.Now()
		cat := &entity.Category{Name: in.Name, Slug: s, CreatedAt: now, UpdatedAt: now}
		if err := cats.Create(cat); err != nil {
			return err
		}
		out = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(out), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(id int64) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	return toCategoryResponse(cat), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Update actualiza una categoría. Renombrar sin slug explícito regenera el slug.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var out *entity.Category
	err := uc.tx.Run(ctx, func(cats repository.CategoryRepository, _ repository.ProductRepository) error {
		cat, err := cats.GetByID(id)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		renamed := false
		if in.Name != nil && *in.Name != cat.Name {
			if *in.Name == "" {
				return domain.ErrInvalidInput
			}
			other, err := cats.GetByName(*in.Name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != cat.ID {
				return domain.ErrDuplicate
			}
			cat.Name = *in.Name
			renamed = true
		}
		switch {
		case in.Slug != nil:
			s, err := prompt.UniqueSlug(*in.Slug, cats.SlugExists, cat.ID)
			if err != nil {
				return err
			}
			cat.Slug = s
		case renamed:
			s, err := prompt.UniqueSlug(cat.Name, cats.SlugExists, cat.ID)
			if err != nil {
				return err
			}
			cat.Slug = s
		}
		cat.UpdatedAt = time.Now()
		if err := cats.Update(cat); err != nil {
			return err
		}
		out = cat
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(out), nil
}

// Delete elimina una categoría. Los productos asociados solo se desvinculan.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(cats repository.CategoryRepository, _ repository.ProductRepository) error {
		cat, err := cats.GetByID(id)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrNotFound
		}
		return cats.Delete(id)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
