package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type stubInvRepo struct {
	items map[string]*entity.InventoryItem
}

func newStubInvRepo() *stubInvRepo {
	return &stubInvRepo{items: map[string]*entity.InventoryItem{}}
}

func (r *stubInvRepo) Create(item *entity.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubInvRepo) GetByID(id string) (*entity.InventoryItem, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *stubInvRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, i := range r.items {
		if i.SKU == sku {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubInvRepo) GetForUpdate(id string) (*entity.InventoryItem, error) { return r.GetByID(id) }

func (r *stubInvRepo) Update(item *entity.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *stubInvRepo) UpdateQuantity(id string, quantity int64) error {
	r.items[id].Quantity = quantity
	return nil
}

func (r *stubInvRepo) List(limit, offset int) ([]*entity.InventoryItem, error) { return nil, nil }
func (r *stubInvRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error) {
	return nil, nil
}

func (r *stubInvRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, i := range r.items {
		if i.IsLowStock() {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubInvRepo) SumQuantityByWarehouse(warehouseID string) (int64, error) {
	var sum int64
	for _, i := range r.items {
		if i.WarehouseID == warehouseID {
			sum += i.Quantity
		}
	}
	return sum, nil
}

type stubMovRepo struct{}

func (r *stubMovRepo) Create(movement *entity.InventoryMovement) error { return nil }
func (r *stubMovRepo) ListByInventory(inventoryID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *stubMovRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *stubMovRepo) ListRecent(limit int) ([]*entity.InventoryMovement, error) { return nil, nil }

type stubWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newStubWarehouseRepo() *stubWarehouseRepo {
	return &stubWarehouseRepo{warehouses: map[string]*entity.Warehouse{}}
}

func (r *stubWarehouseRepo) Create(warehouse *entity.Warehouse) error {
	cp := *warehouse
	r.warehouses[warehouse.ID] = &cp
	return nil
}

func (r *stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *stubWarehouseRepo) GetByName(name string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.Name == name {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubWarehouseRepo) Update(warehouse *entity.Warehouse) error {
	cp := *warehouse
	r.warehouses[warehouse.ID] = &cp
	return nil
}

func (r *stubWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) { return nil, nil }

func validCreateItem(sku string) dto.CreateInventoryItemRequest {
	return dto.CreateInventoryItemRequest{
		Name:         "Tornillo 3mm",
		SKU:          sku,
		CostPrice:    decimal.RequireFromString("0.10"),
		SellingPrice: decimal.RequireFromString("0.25"),
		Quantity:     50,
		SupplierID:   "sup-1",
		WarehouseID:  "wh-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// InventoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryCreate_SKUDuplicado(t *testing.T) {
	uc := NewInventoryUseCase(newStubInvRepo(), &stubMovRepo{})

	_, err := uc.Create(validCreateItem("TOR-3MM"))
	require.NoError(t, err)

	_, err = uc.Create(validCreateItem("TOR-3MM"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU es único global")
}

func TestInventoryCreate_BarcodeOpcional(t *testing.T) {
	repo := newStubInvRepo()
	uc := NewInventoryUseCase(repo, &stubMovRepo{})

	// El barcode es opcional: un alta sin él debe persistir y leerse bien.
	in := validCreateItem("TOR-3MM")
	in.Barcode = ""
	created, err := uc.Create(in)
	require.NoError(t, err)
	assert.Empty(t, created.Barcode)

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Barcode)
}

func TestInventoryCreate_Validaciones(t *testing.T) {
	uc := NewInventoryUseCase(newStubInvRepo(), &stubMovRepo{})

	in := validCreateItem("TOR-3MM")
	in.Name = ""
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validCreateItem("TOR-3MM")
	in.Quantity = -1
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validCreateItem("TOR-3MM")
	in.CostPrice = decimal.NewFromInt(-1)
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryUpdate_CambioDeSKUVerificaUnicidad(t *testing.T) {
	repo := newStubInvRepo()
	uc := NewInventoryUseCase(repo, &stubMovRepo{})

	a, err := uc.Create(validCreateItem("SKU-A"))
	require.NoError(t, err)
	_, err = uc.Create(validCreateItem("SKU-B"))
	require.NoError(t, err)

	taken := "SKU-B"
	_, err = uc.Update(a.ID, dto.UpdateInventoryItemRequest{SKU: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	free := "SKU-C"
	out, err := uc.Update(a.ID, dto.UpdateInventoryItemRequest{SKU: &free})
	require.NoError(t, err)
	assert.Equal(t, "SKU-C", out.SKU)
}

func TestInventoryUpdate_NoTocaElStock(t *testing.T) {
	repo := newStubInvRepo()
	uc := NewInventoryUseCase(repo, &stubMovRepo{})

	created, err := uc.Create(validCreateItem("TOR-3MM"))
	require.NoError(t, err)

	name := "Tornillo 3mm galvanizado"
	out, err := uc.Update(created.ID, dto.UpdateInventoryItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(50), out.Quantity,
		"la actualización de datos maestros no muta el stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// WarehouseUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseCreate_NombreDuplicado(t *testing.T) {
	uc := NewWarehouseUseCase(newStubWarehouseRepo(), newStubInvRepo())

	_, err := uc.Create(dto.CreateWarehouseRequest{Name: "Bodega Central"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateWarehouseRequest{Name: "Bodega Central"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestWarehouseCapacityReport(t *testing.T) {
	whRepo := newStubWarehouseRepo()
	invRepo := newStubInvRepo()
	uc := NewWarehouseUseCase(whRepo, invRepo)

	created, err := uc.Create(dto.CreateWarehouseRequest{Name: "Bodega Central", Capacity: 200})
	require.NoError(t, err)

	invRepo.items["inv-1"] = &entity.InventoryItem{ID: "inv-1", WarehouseID: created.ID, Quantity: 30}
	invRepo.items["inv-2"] = &entity.InventoryItem{ID: "inv-2", WarehouseID: created.ID, Quantity: 20}
	invRepo.items["inv-3"] = &entity.InventoryItem{ID: "inv-3", WarehouseID: "otra", Quantity: 999}

	report, err := uc.CapacityReport(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), report.TotalCapacity)
	assert.Equal(t, int64(50), report.UsedCapacity)
	assert.Equal(t, int64(150), report.AvailableCapacity)
	assert.InDelta(t, 25.0, report.UtilizationPercentage, 0.001)

	_, err = uc.CapacityReport("wh-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
