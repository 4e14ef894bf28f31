package repository

import "github.com/jhoicas/almacen-pro/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// ExternalID es el identificador del proveedor de identidad (webhook).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByExternalID(externalID string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateRole(id, role string) error
	List(limit, offset int) ([]*entity.User, error)
	DeleteByExternalID(externalID string) error
}
