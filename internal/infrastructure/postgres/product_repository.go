package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Las lecturas pueblan Product.Categories con un segundo query sobre la tabla puente.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna el ID generado.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (name, slug, price, stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.Slug, product.Price, product.Stock, product.Active,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con sus categorías.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetBySlug obtiene un producto por slug con sus categorías.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	return r.getOne(`WHERE slug = $1`, slug)
}

func (r *ProductRepo) getOne(where string, arg any) (*entity.Product, error) {
	query := `SELECT id, name, slug, price, stock, active, created_at, updated_at FROM products ` + where
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Price, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.loadCategories([]*entity.Product{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByName busca productos por nombre sin distinguir mayúsculas. Puede devolver varias filas.
func (r *ProductRepo) ListByName(name string) ([]*entity.Product, error) {
	return r.list(`WHERE LOWER(name) = LOWER($1)`, name)
}

// List lista productos con filtros opcionales por categoría y estado.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	where := ""
	args := []any{}
	n := 0
	if filter.CategoryID != nil {
		n++
		where = fmt.Sprintf(`WHERE id IN (SELECT product_id FROM product_categories WHERE category_id = $%d)`, n)
		args = append(args, *filter.CategoryID)
	}
	if filter.Active != nil {
		n++
		if where == "" {
			where = fmt.Sprintf(`WHERE active = $%d`, n)
		} else {
			where += fmt.Sprintf(` AND active = $%d`, n)
		}
		args = append(args, *filter.Active)
	}
	return r.list(where, args...)
}

func (r *ProductRepo) list(where string, args ...any) ([]*entity.Product, error) {
	query := `SELECT id, name, slug, price, stock, active, created_at, updated_at FROM products ` +
		where + ` ORDER BY name, id`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadCategories(list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadCategories puebla Categories de los productos dados en un solo query.
func (r *ProductRepo) loadCategories(products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(products))
	byID := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}
	query := `
		SELECT pc.product_id, c.id, c.name, c.slug, c.created_at, c.updated_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)
		ORDER BY c.name`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load product categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID int64
		var c entity.Category
		if err := rows.Scan(&productID, &c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return fmt.Errorf("scan product category: %w", err)
		}
		if p, ok := byID[productID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return rows.Err()
}

// Update actualiza los campos editables de un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, slug = $3, price = $4, stock = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Slug, product.Price, product.Stock, product.Active,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina el producto; sus filas en product_categories caen por cascade.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// SlugExists indica si otro registro (distinto de excludeID) ya usa el slug.
func (r *ProductRepo) SlugExists(slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product slug exists: %w", err)
	}
	return exists, nil
}

// ReplaceCategories sustituye el set completo de categorías del producto.
func (r *ProductRepo) ReplaceCategories(productID int64, categoryIDs []int64) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product categories: %w", err)
	}
	for _, categoryID := range categoryIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			productID, categoryID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert product category: %w", err)
		}
	}
	return nil
}

// AddCategory añade una categoría al set. Devuelve false si ya estaba (idempotente).
func (r *ProductRepo) AddCategory(productID, categoryID int64) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		productID, categoryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrInvalidInput
		}
		return false, fmt.Errorf("add product category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
