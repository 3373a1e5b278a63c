package entity

import "time"

// Roles de usuario para el panel de administración.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User representa un usuario del panel (no participa en el catálogo público).
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | editor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
