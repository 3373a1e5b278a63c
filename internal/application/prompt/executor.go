package prompt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una única transacción:
// o se aplican todas las mutaciones del comando, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
	) error) error
}

// Result describe lo que cambió: tipo de entidad, id/slug y un resumen
// legible para mostrarse directamente al usuario final.
type Result struct {
	Kind    string `json:"kind"`
	ID      int64  `json:"id,omitempty"`
	Slug    string `json:"slug,omitempty"`
	Message string `json:"-"`
	Data    any    `json:"data,omitempty"`
}

// Executor aplica comandos validados contra el catálogo. Las escrituras
// corren dentro de una transacción vía TxRunner; las lecturas usan los repos
// del pool directamente y nunca abren transacción de escritura.
type Executor struct {
	tx         TxRunner
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewExecutor construye el ejecutor.
func NewExecutor(tx TxRunner, categories repository.CategoryRepository, products repository.ProductRepository) *Executor {
	return &Executor{tx: tx, categories: categories, products: products}
}

// Execute aplica el comando y devuelve el resultado o un CommandError.
func (e *Executor) Execute(ctx context.Context, cmd Command) (*Result, error) {
	switch c := cmd.(type) {
	case HelpCmd:
		return &Result{Kind: "help", Message: "Comandos disponibles.", Data: Catalog()}, nil
	case ListCategoriesCmd:
		return e.listCategories()
	case ListProductsCmd:
		return e.listProducts(c)
	case CreateCategoryCmd:
		return e.createCategory(ctx, c)
	case UpdateCategoryCmd:
		return e.updateCategory(ctx, c)
	case DeleteCategoryCmd:
		return e.deleteCategory(ctx, c)
	case CreateProductCmd:
		return e.createProduct(ctx, c)
	case UpdateProductCmd:
		return e.updateProduct(ctx, c)
	case DeleteProductCmd:
		return e.deleteProduct(ctx, c)
	case AssignCategoryCmd:
		return e.assignCategory(ctx, c)
	default:
		return nil, errUnknownAction(string(cmd.Action()))
	}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// CategoryView payload de categoría en resultados de comandos.
type CategoryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductView payload de producto en resultados de comandos.
type ProductView struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Price      string   `json:"price"`
	Stock      int      `json:"stock"`
	Active     bool     `json:"active"`
	Categories []string `json:"categories"`
}

func categoryView(c *entity.Category) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func productView(p *entity.Product) ProductView {
	slugs := p.CategorySlugs()
	if slugs == nil {
		slugs = []string{}
	}
	return ProductView{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		Price:      p.Price.StringFixed(2),
		Stock:      p.Stock,
		Active:     p.Active,
		Categories: slugs,
	}
}

func (e *Executor) listCategories() (*Result, error) {
	list, err := e.categories.List()
	if err != nil {
		return nil, errInternal(err)
	}
	views := make([]CategoryView, 0, len(list))
	for _, c := range list {
		views = append(views, categoryView(c))
	}
	return &Result{
		Kind:    "category_list",
		Message: fmt.Sprintf("%d categoría(s) en el catálogo.", len(views)),
		Data:    views,
	}, nil
}

func (e *Executor) listProducts(cmd ListProductsCmd) (*Result, error) {
	list, err := e.products.List(repository.ProductFilter{
		CategoryID: cmd.CategoryID,
		Active:     cmd.Active,
	})
	if err != nil {
		return nil, errInternal(err)
	}
	views := make([]ProductView, 0, len(list))
	for _, p := range list {
		views = append(views, productView(p))
	}
	return &Result{
		Kind:    "product_list",
		Message: fmt.Sprintf("%d producto(s) encontrados.", len(views)),
		Data:    views,
	}, nil
}

// ── Escrituras (transaccionales) ──────────────────────────────────────────────

func (e *Executor) createCategory(ctx context.Context, cmd CreateCategoryCmd) (*Result, error) {
	var out *entity.Category
	err := e.tx.Run(ctx, func(cats repository.CategoryRepository, _ repository.ProductRepository) error {
		existing, err := cats.GetByName(cmd.Name)
		if err != nil {
			return errInternal(err)
		}
		if existing != nil {
			return errConflict(fmt.Sprintf("Ya existe una categoría llamada '%s'.", existing.Name))
		}
		base := cmd.Slug
		if base == "" {
			base = cmd.Name
		}
		s, err := UniqueSlug(base, cats.SlugExists, 0)
		if err != nil {
			return errInternal(err)
		}
		now := time.Now()
		cat := &entity.Category{Name: cmd.Name, Slug: s, CreatedAt: now, UpdatedAt: now}
		if err := cats.Create(cat); err != nil {
			return mapRepoError(err)
		}
		out = cat
		return nil
	})
	if err != nil {
		return nil, asCommandError(err)
	}
	return &Result{
		Kind:    "category",
		ID:      out.ID,
		Slug:    out.Slug,
		Message: fmt.Sprintf("Categoría '%s' creada (slug: %s).", out.Name, out.Slug),
		Data:    categoryView(out),
	}, nil
}

func (e *Executor) updateCategory(ctx context.Context, cmd UpdateCategoryCmd) (*Result, error) {
	var out *entity.Category
	err := e.tx.Run(ctx, func(cats repository.CategoryRepository, _ repository.ProductRepository) error {
		cat, err := cats.GetByID(cmd.CategoryID)
		if err != nil {
			return errInternal(err)
		}
		if cat == nil {
			return errNotFound("Categoría", fmt.Sprint(cmd.CategoryID))
		}
		renamed := false
		if cmd.Name != nil && *cmd.Name != cat.Name {
			other, err := cats.GetByName(*cmd.Name)
			if err != nil {
				return errInternal(err)
			}
			if other != nil && other.ID != cat.ID {
				return errConflict(fmt.Sprintf("Ya existe una categoría llamada '%s'.", other.Name))
			}
			cat.Name = *cmd.Name
			renamed = true
		}
		// El slug se regenera solo al renombrar sin slug explícito.
		switch {
		case cmd.Slug != nil:
			s, err := UniqueSlug(*cmd.Slug, cats.SlugExists, cat.ID)
			if err != nil {
				return errInternal(err)
			}
			cat.Slug = s
		case renamed:
			s, err := UniqueSlug(cat.Name, cats.SlugExists, cat.ID)
			if err != nil {
				return errInternal(err)
			}
			cat.Slug = s
		}
		cat.UpdatedAt = time.Now()
		if err := cats.Update(cat); err != nil {
			return mapRepoError(err)
		}
		out = cat
		return nil
	})
	if err != nil {
		return nil, asCommandError(err)
	}
	return &Result{
		Kind:    "category",
		ID:      out.ID,
		Slug:    out.Slug,
		Message: fmt.Sprintf("Categoría '%s' actualizada (slug: %s).", out.Name, out.Slug),
		Data:    categoryView(out),
	}, nil
}

func (e *Executor) deleteCategory(ctx context.Context, cmd DeleteCategoryCmd) (*Result, error) {
	var out *entity.Category
	err := e.tx.Run(ctx, func(cats repository.CategoryRepository, _ repository.ProductRepository) error {
		cat, err := cats.GetByID(cmd.CategoryID)
		if err != nil {
			return errInternal(err)
		}
		if cat == nil {
			return errNotFound("Categoría", fmt.Sprint(cmd.CategoryID))
		}
		if err := cats.Delete(cat.ID); err != nil {
			return mapRepoError(err)
		}
		out = cat
		return nil
	})
	if err != nil {
		return nil, asCommandError(err)
	}
	return &Result{
		Kind:    "category",
		ID:      out.ID,
		Slug:    out.Slug,
		Message: fmt.Sprintf("Categoría '%s' eliminada; sus productos quedaron desvinculados.", out.Name),
	}, nil
}

func (e *Executor) createProduct(ctx context.Context, cmd CreateProductCmd) (*Result, error) {
	var out *entity.Product
	err := e.tx.Run(ctx, func(_ repository.CategoryRepository, prods repository.ProductRepository) error {
		s, err := UniqueSlug(cmd.Name, prods.SlugExists, 0)
		if err != nil {
			return errInternal(err)
		}
		now := time.Now()
		p := &entity.Product{
			Name:      cmd.Name,
			Slug:      s,
			Price:     cmd.Price,
			Stock:     cmd.Stock,
			Active:    cmd.Active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := prods.Create(p); err != nil {
			return mapRepoError(err)
		}
		if len(cmd.CategoryIDs) > 0 {
			if err := prods.ReplaceCategories(p.ID, cmd.CategoryIDs); err != nil {
				return mapRepoError(err)
			}
		}
		full, err := prods.GetByID(p.ID)
		if err != nil {
			return errInternal(err)
		}
		out = full
		return nil
	})
	if err != nil {
		return nil, asCommandError(err)
	}
	return &Result{
		Kind: "product",
		ID:   out.ID,
		Slug: out.Slug,
		Message: fmt.Sprintf("Producto '%s' creado (slug: %s, precio: %s).",
			out.Name, out.Slug, out.Price.StringFixed(2)),
		Data: productView(out),
	}, nil
}

func (e *Executor) updateProduct(ctx context.Context, cmd UpdateProductCmd) (*Result, error) {
	var out *entity.Product
	err := e.tx.Run(ctx, func(_ repository.CategoryRepository, prods repository.ProductRepository) error {
		p, err := prods.GetByID(cmd.ProductID)
		if err != nil {
			return errInternal(err)
		}
		if p == nil {
			return errNotFound("Producto", fmt.Sprint(cmd.ProductID))
		}
		renamed := cmd.Name != nil && *cmd.Name != p.Name
		if cmd.Name != nil {
			p.Name = *cmd.Name
		}
		if renamed {
			s, err := UniqueSlug(p.Name, prods.SlugExists, p.ID)
			if err != nil {
				return errInternal(err)
			}
			p.Slug = s
		}
		if cmd.Price != nil {
			p.Price = *cmd.Price
		}
		if cmd.Stock != nil {
			p.Stock = *cmd.Stock
		}
		if cmd.Active != nil {
			p.Active = *cmd.Active
		}
		p.UpdatedAt = time.Now()
		if err := prods.Update(p); err != nil {
			return mapRepoError(err)
		}
		if cmd.SetCategories {
			if err := prods.ReplaceCategories(p.ID, cmd.CategoryIDs); err != nil {
				return mapRepoError(err)
			}
		}
		full, err := prods.GetByID(p.ID)
		if err != nil {
			return errInternal(err)
		}
		out = full
		return nil
	})
	if err != nil {
		return nil, asCommandError(err)
	}
	return &Result{
		Kind:    "product",
		ID:      out.ID,
		Slug:    out.Slug,
		Message: fmt.Sprintf("Producto '%s' actualizado.", out.Name),
		Data:    productView(out),
	}, nil
}

func (e *Executor) deleteProduct(ctx context.Context, cmd DeleteProductCmd) (*Result, error) {
	var out *entity.Product
	err := e.tx.Run(ctx, func(_ repository.CategoryRepository, prods repository.ProductRepository) error {
		p, err := prods.GetByID(cmd.ProductID)
		if err != nil {
			return errInternal(err)
		}
		if p == nil {
			return errNotFound("Producto", fmt.Sprint(cmd.ProductID))
		}
		if err := prods.Delete(p.ID); err != nil {
			return mapRepoError(err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, asCommandError(err)
	}
	return &Result{
		Kind:    "product",
		ID:      out.ID,
		Slug:    out.Slug,
		Message: fmt.Sprintf("Producto '%s' eliminado.", out.Name),
	}, nil
}

func (e *Executor) assignCategory(ctx context.Context, cmd AssignCategoryCmd) (*Result, error) {
	var (
		product *entity.Product
		cat     *entity.Category
		added   bool
	)
	err := e.tx.Run(ctx, func(cats repository.CategoryRepository, prods repository.ProductRepository) error {
		var err error
		product, err = prods.GetByID(cmd.ProductID)
		if err != nil {
			return errInternal(err)
		}
		if product == nil {
			return errNotFound("Producto", fmt.Sprint(cmd.ProductID))
		}
		cat, err = cats.GetByID(cmd.CategoryID)
		if err != nil {
			return errInternal(err)
		}
		if cat == nil {
			return errNotFound("Categoría", fmt.Sprint(cmd.CategoryID))
		}
		added, err = prods.AddCategory(product.ID, cat.ID)
		if err != nil {
			return mapRepoError(err)
		}
		return nil
	})
	if err != nil {
		return nil, asCommandError(err)
	}
	msg := fmt.Sprintf("Categoría '%s' asignada al producto '%s'.", cat.Name, product.Name)
	if !added {
		msg = fmt.Sprintf("El producto '%s' ya tenía la categoría '%s' (sin cambios).", product.Name, cat.Name)
	}
	return &Result{Kind: "product", ID: product.ID, Slug: product.Slug, Message: msg}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// UniqueSlug deriva el slug con gosimple/slug y, ante colisión, añade un
// sufijo incremental determinista: base, base-2, base-3, ...
// Exportado porque los casos de uso REST derivan slugs con la misma regla.
func UniqueSlug(raw string, exists func(s string, excludeID int64) (bool, error), excludeID int64) (string, error) {
	base := slug.Make(raw)
	if base == "" {
		base = "item"
	}
	candidate := base
	for n := 2; ; n++ {
		taken, err := exists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// mapRepoError traduce errores de persistencia al vocabulario del intérprete.
// La violación de unicidad en commit (23505 bajo concurrencia) aborta la
// transacción y llega aquí como domain.ErrDuplicate.
func mapRepoError(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return errConflict("El nombre o el slug ya está en uso.")
	}
	return errInternal(err)
}

// asCommandError garantiza que todo error que sale del Executor esté tipado.
func asCommandError(err error) error {
	if _, ok := AsCommandError(err); ok {
		return err
	}
	return errInternal(err)
}
