package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

// UserUseCase mantiene el directorio interno de usuarios. Las altas, bajas y
// cambios llegan desde el webhook del proveedor de identidad; el directorio
// existe para atribuir operaciones (created_by, approved_by, user_id en el libro).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// UpsertByExternalID crea o actualiza el usuario según su ID externo.
// Idempotente: repetir el mismo evento no duplica filas. El rol solo se
// asigna en el alta (por defecto "user"); los cambios de rol van por UpdateRole.
func (uc *UserUseCase) UpsertByExternalID(in dto.UpsertUserRequest) (*dto.UserResponse, error) {
	if in.ExternalID == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByExternalID(in.ExternalID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if existing != nil {
		existing.Email = in.Email
		existing.Name = in.Name
		existing.UpdatedAt = now
		if err := uc.repo.Update(existing); err != nil {
			return nil, err
		}
		return toUserResponse(existing), nil
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	user := &entity.User{
		ID:         uuid.New().String(),
		ExternalID: in.ExternalID,
		Email:      in.Email,
		Name:       in.Name,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteByExternalID elimina el usuario; ID externo desconocido es no-op.
func (uc *UserUseCase) DeleteByExternalID(externalID string) error {
	if externalID == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.DeleteByExternalID(externalID)
}

// GetByID obtiene un usuario por ID interno.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// GetByExternalID obtiene un usuario por su ID del proveedor de identidad.
func (uc *UserUseCase) GetByExternalID(externalID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateRole cambia el rol de un usuario (operación de admin).
func (uc *UserUseCase) UpdateRole(id, role string) error {
	if !entity.ValidRole(role) {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.UpdateRole(id, role)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
