package dto

import "time"

// UpsertUserRequest alta/actualización de usuario desde el webhook de identidad.
type UpsertUserRequest struct {
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"` // por defecto "user" si viene vacío
}

// UpdateUserRoleRequest cambio de rol (solo admin).
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
