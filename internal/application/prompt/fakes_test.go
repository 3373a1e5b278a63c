package prompt_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/prompt"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo en memoria para los tests del intérprete: implementa los puertos
// de persistencia sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memCatalog struct {
	cats     map[int64]*entity.Category
	prods    map[int64]*entity.Product
	links    map[int64][]int64 // productID -> categoryIDs
	nextCat  int64
	nextProd int64
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		cats:  map[int64]*entity.Category{},
		prods: map[int64]*entity.Product{},
		links: map[int64][]int64{},
	}
}

func (s *memCatalog) categoryRepo() repository.CategoryRepository { return &memCategoryRepo{s: s} }
func (s *memCatalog) productRepo() repository.ProductRepository   { return &memProductRepo{s: s} }

// seedCategory inserta una categoría directamente.
func (s *memCatalog) seedCategory(name, slug string) *entity.Category {
	s.nextCat++
	now := time.Now()
	c := &entity.Category{ID: s.nextCat, Name: name, Slug: slug, CreatedAt: now, UpdatedAt: now}
	s.cats[c.ID] = c
	return c
}

// seedProduct inserta un producto directamente.
func (s *memCatalog) seedProduct(name, slug string, catIDs ...int64) *entity.Product {
	s.nextProd++
	now := time.Now()
	p := &entity.Product{ID: s.nextProd, Name: name, Slug: slug, Active: true, CreatedAt: now, UpdatedAt: now}
	s.prods[p.ID] = p
	s.links[p.ID] = append([]int64{}, catIDs...)
	return p
}

func (s *memCatalog) categoriesOf(productID int64) []entity.Category {
	out := make([]entity.Category, 0, len(s.links[productID]))
	for _, id := range s.links[productID] {
		if c, ok := s.cats[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// ── CategoryRepository ────────────────────────────────────────────────────────

type memCategoryRepo struct{ s *memCatalog }

var _ repository.CategoryRepository = (*memCategoryRepo)(nil)

func (r *memCategoryRepo) Create(c *entity.Category) error {
	for _, existing := range r.s.cats {
		if existing.Slug == c.Slug || strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.nextCat++
	c.ID = r.s.nextCat
	cp := *c
	r.s.cats[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	if c, ok := r.s.cats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	for _, c := range r.s.cats {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.s.cats {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) List() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.s.cats))
	for _, c := range r.s.cats {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	for _, existing := range r.s.cats {
		if existing.ID != c.ID && (existing.Slug == c.Slug || strings.EqualFold(existing.Name, c.Name)) {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.cats[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) Delete(id int64) error {
	delete(r.s.cats, id)
	for pid, ids := range r.s.links {
		kept := ids[:0]
		for _, cid := range ids {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		r.s.links[pid] = kept
	}
	return nil
}

func (r *memCategoryRepo) SlugExists(slug string, excludeID int64) (bool, error) {
	for _, c := range r.s.cats {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type memProductRepo struct{ s *memCatalog }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.s.prods {
		if existing.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	r.s.nextProd++
	p.ID = r.s.nextProd
	cp := *p
	r.s.prods[p.ID] = &cp
	r.s.links[p.ID] = nil
	return nil
}

func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	if p, ok := r.s.prods[id]; ok {
		cp := *p
		cp.Categories = r.s.categoriesOf(id)
		return &cp, nil
	}
	return nil, nil
}

func (r *memProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	for _, p := range r.s.prods {
		if p.Slug == slug {
			return r.GetByID(p.ID)
		}
	}
	return nil, nil
}

func (r *memProductRepo) ListByName(name string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.prods {
		if strings.EqualFold(p.Name, name) {
			full, _ := r.GetByID(p.ID)
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.prods {
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		if filter.CategoryID != nil {
			found := false
			for _, cid := range r.s.links[p.ID] {
				if cid == *filter.CategoryID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		full, _ := r.GetByID(p.ID)
		out = append(out, full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	for _, existing := range r.s.prods {
		if existing.ID != p.ID && existing.Slug == p.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	cp.Categories = nil
	r.s.prods[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(id int64) error {
	delete(r.s.prods, id)
	delete(r.s.links, id)
	return nil
}

func (r *memProductRepo) SlugExists(slug string, excludeID int64) (bool, error) {
	for _, p := range r.s.prods {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) ReplaceCategories(productID int64, categoryIDs []int64) error {
	if _, ok := r.s.prods[productID]; !ok {
		return domain.ErrInvalidInput
	}
	for _, cid := range categoryIDs {
		if _, ok := r.s.cats[cid]; !ok {
			return domain.ErrInvalidInput
		}
	}
	r.s.links[productID] = append([]int64{}, categoryIDs...)
	return nil
}

func (r *memProductRepo) AddCategory(productID, categoryID int64) (bool, error) {
	if _, ok := r.s.cats[categoryID]; !ok {
		return false, domain.ErrInvalidInput
	}
	for _, cid := range r.s.links[productID] {
		if cid == categoryID {
			return false, nil
		}
	}
	r.s.links[productID] = append(r.s.links[productID], categoryID)
	return true, nil
}

// ── TxRunner y LLM falsos ─────────────────────────────────────────────────────

// memTxRunner ejecuta el callback directamente contra el store en memoria.
type memTxRunner struct{ s *memCatalog }

var _ prompt.TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) Run(_ context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
) error) error {
	return fn(t.s.categoryRepo(), t.s.productRepo())
}

// fakeLLM devuelve una respuesta fija o un error.
type fakeLLM struct {
	reply string
	err   error
	asked bool
}

func (f *fakeLLM) Ask(_ context.Context, _ string, _ string) (string, error) {
	f.asked = true
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
