package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// ProductFilter filtros opcionales para listar productos.
type ProductFilter struct {
	CategoryID *int64
	Active     *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila y pueblan Categories.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	// ListByName busca por nombre sin distinguir mayúsculas. Los nombres de
	// producto no son únicos: puede devolver varias filas.
	ListByName(name string) ([]*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// Delete elimina el producto y sus asociaciones (cascade en la tabla puente).
	Delete(id int64) error
	SlugExists(slug string, excludeID int64) (bool, error)
	// ReplaceCategories sustituye el set completo de categorías del producto.
	ReplaceCategories(productID int64, categoryIDs []int64) error
	// AddCategory añade una categoría al set. Devuelve false si ya estaba
	// (operación idempotente, no es error).
	AddCategory(productID, categoryID int64) (bool, error)
}
