package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User representa un usuario del directorio interno. La identidad la provee
// un proveedor externo (sesión/webhook); ExternalID es el ID estable de ese proveedor.
type User struct {
	ID         string
	ExternalID string // ID del proveedor de identidad, único
	Email      string
	Name       string
	Role       string // admin, manager, user
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidRole indica si el rol es uno de los soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleUser
}
