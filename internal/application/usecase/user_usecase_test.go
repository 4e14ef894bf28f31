package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble de prueba: directorio en memoria indexado por external_id
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*entity.User // external_id → user
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*entity.User{}}
}

func (r *stubUserRepo) Create(user *entity.User) error {
	if _, ok := r.users[user.ExternalID]; ok {
		return domain.ErrDuplicate
	}
	cp := *user
	r.users[user.ExternalID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) GetByExternalID(externalID string) (*entity.User, error) {
	u, ok := r.users[externalID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Update(user *entity.User) error {
	cp := *user
	r.users[user.ExternalID] = &cp
	return nil
}

func (r *stubUserRepo) UpdateRole(id, role string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return nil
}

func (r *stubUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubUserRepo) DeleteByExternalID(externalID string) error {
	delete(r.users, externalID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertByExternalID_AltaConRolPorDefecto(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo)

	out, err := uc.UpsertByExternalID(dto.UpsertUserRequest{
		ExternalID: "ext-1",
		Email:      "ana@acme.co",
		Name:       "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role, "sin rol explícito se asigna user")
	assert.NotEmpty(t, out.ID)
}

func TestUpsertByExternalID_ActualizaSinCambiarRol(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo)

	first, err := uc.UpsertByExternalID(dto.UpsertUserRequest{
		ExternalID: "ext-1", Email: "ana@acme.co", Name: "Ana", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	require.Equal(t, entity.RoleAdmin, first.Role)

	// El evento de actualización trae otro rol: se ignora, el rol solo
	// se toca vía UpdateRole.
	second, err := uc.UpsertByExternalID(dto.UpsertUserRequest{
		ExternalID: "ext-1", Email: "ana.maria@acme.co", Name: "Ana María", Role: entity.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "mismo external_id, misma fila")
	assert.Equal(t, "ana.maria@acme.co", second.Email)
	assert.Equal(t, entity.RoleAdmin, second.Role)
	assert.Len(t, repo.users, 1)
}

func TestUpsertByExternalID_RolInvalido(t *testing.T) {
	uc := NewUserUseCase(newStubUserRepo())

	_, err := uc.UpsertByExternalID(dto.UpsertUserRequest{
		ExternalID: "ext-1", Email: "ana@acme.co", Role: "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteByExternalID_NoOpSiNoExiste(t *testing.T) {
	uc := NewUserUseCase(newStubUserRepo())

	assert.NoError(t, uc.DeleteByExternalID("ext-fantasma"))
	assert.ErrorIs(t, uc.DeleteByExternalID(""), domain.ErrInvalidInput)
}

func TestUpdateRole_Validaciones(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo)

	created, err := uc.UpsertByExternalID(dto.UpsertUserRequest{
		ExternalID: "ext-1", Email: "ana@acme.co",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.UpdateRole(created.ID, "rol-falso"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateRole("usr-fantasma", entity.RoleAdmin), domain.ErrUserNotFound)

	require.NoError(t, uc.UpdateRole(created.ID, entity.RoleManager))
	assert.Equal(t, entity.RoleManager, repo.users["ext-1"].Role)
}
