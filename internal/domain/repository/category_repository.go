package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	// GetByName busca por nombre sin distinguir mayúsculas. El store fuerza
	// unicidad de nombre, así que a lo sumo hay una fila.
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	// Delete elimina la categoría; las filas de product_categories caen por
	// cascade (desvincula, nunca borra productos).
	Delete(id int64) error
	// SlugExists indica si otro registro (distinto de excludeID) ya usa el slug.
	SlugExists(slug string, excludeID int64) (bool, error)
}
