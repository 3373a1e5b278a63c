package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest alta de categoría vía REST.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"` // opcional; vacío = derivar del nombre
}

// UpdateCategoryRequest actualización parcial de categoría.
type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest alta de producto vía REST.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Active     *bool           `json:"active"`     // nil = true
	Categories []int64         `json:"categories"` // ids de categorías existentes
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *int             `json:"stock"`
	Active     *bool            `json:"active"`
	Categories *[]int64         `json:"categories"` // nil = no tocar el set
}

// ProductResponse producto en respuestas (precio con escala fija de 2).
type ProductResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Price      string    `json:"price"`
	Stock      int       `json:"stock"`
	Active     bool      `json:"active"`
	Categories []string  `json:"categories"` // slugs
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CatalogProduct entrada del endpoint público de catálogo.
type CatalogProduct struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Price      string   `json:"price"`
	Stock      int      `json:"stock"`
	Categories []string `json:"categories"`
}
