package entity

import "time"

// Category representa una categoría del catálogo.
// El nombre es único sin distinguir mayúsculas; el slug se deriva del nombre
// y solo cambia al renombrar (salvo que el comando fije uno explícito).
type Category struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
