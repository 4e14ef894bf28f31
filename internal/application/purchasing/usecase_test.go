package purchasing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba: almacén en memoria con semántica transaccional (snapshot
// antes de fn, restauración si fn falla) para verificar atomicidad sin DB.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	orders    map[string]*entity.PurchaseOrder
	items     map[string]*entity.PurchaseOrderItem
	inventory map[string]*entity.InventoryItem
	movements []*entity.InventoryMovement
	users     map[string]*entity.User
	suppliers map[string]*entity.Supplier
}

func newMemStore() *memStore {
	return &memStore{
		orders:    map[string]*entity.PurchaseOrder{},
		items:     map[string]*entity.PurchaseOrderItem{},
		inventory: map[string]*entity.InventoryItem{},
		users:     map[string]*entity.User{},
		suppliers: map[string]*entity.Supplier{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range s.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range s.inventory {
		cp := *v
		c.inventory[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		c.suppliers[k] = &cp
	}
	c.movements = append([]*entity.InventoryMovement{}, s.movements...)
	return c
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(order *entity.PurchaseOrder) error {
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *memOrderRepo) UpdateStatus(id, status string, approvedBy *string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	if approvedBy != nil {
		o.ApprovedBy = *approvedBy
	}
	o.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) ListByStatus(status string) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetItemByID(id string) (*entity.PurchaseOrderItem, error) {
	i, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *memOrderRepo) GetItemForUpdate(id string) (*entity.PurchaseOrderItem, error) {
	return r.GetItemByID(id)
}

func (r *memOrderRepo) UpdateItemReceived(id string, receivedQuantity int64) error {
	i, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.ReceivedQuantity = receivedQuantity
	return nil
}

func (r *memOrderRepo) ListItemsByOrder(orderID string) ([]*entity.PurchaseOrderItem, error) {
	var out []*entity.PurchaseOrderItem
	for _, i := range r.s.items {
		if i.OrderID == orderID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memInvRepo struct{ s *memStore }

func (r *memInvRepo) Create(item *entity.InventoryItem) error {
	cp := *item
	r.s.inventory[item.ID] = &cp
	return nil
}

func (r *memInvRepo) GetByID(id string) (*entity.InventoryItem, error) {
	i, ok := r.s.inventory[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *memInvRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, i := range r.s.inventory {
		if i.SKU == sku {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInvRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *memInvRepo) Update(item *entity.InventoryItem) error {
	cp := *item
	r.s.inventory[item.ID] = &cp
	return nil
}

func (r *memInvRepo) UpdateQuantity(id string, quantity int64) error {
	i, ok := r.s.inventory[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Quantity = quantity
	return nil
}

func (r *memInvRepo) List(limit, offset int) ([]*entity.InventoryItem, error) { return nil, nil }
func (r *memInvRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (r *memInvRepo) ListLowStock() ([]*entity.InventoryItem, error)          { return nil, nil }
func (r *memInvRepo) SumQuantityByWarehouse(warehouseID string) (int64, error) { return 0, nil }

type memMovRepo struct{ s *memStore }

func (r *memMovRepo) Create(movement *entity.InventoryMovement) error {
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovRepo) ListByInventory(inventoryID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *memMovRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *memMovRepo) ListRecent(limit int) ([]*entity.InventoryMovement, error) { return nil, nil }

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(user *entity.User) error {
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByExternalID(externalID string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(user *entity.User) error                          { return nil }
func (r *memUserRepo) UpdateRole(id, role string) error                        { return nil }
func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error)          { return nil, nil }
func (r *memUserRepo) DeleteByExternalID(externalID string) error              { return nil }

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(supplier *entity.Supplier) error { return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}
func (r *memSupplierRepo) GetByName(name string) (*entity.Supplier, error)    { return nil, nil }
func (r *memSupplierRepo) Update(supplier *entity.Supplier) error             { return nil }
func (r *memSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }
func (r *memSupplierRepo) Delete(id string) error                             { return nil }

// memTxRunner simula la transacción: si fn falla, restaura el snapshot
// previo (equivalente a un ROLLBACK).
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunPurchase(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	snap := r.s.clone()
	err := fn(&memOrderRepo{r.s}, &memInvRepo{r.s}, &memMovRepo{r.s})
	if err != nil {
		*r.s = *snap
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const (
	testActorID     = "usr-1"
	testSupplierID  = "sup-1"
	testWarehouseID = "wh-1"
	testInventoryID = "inv-1"
)

// newFixture arma un caso de uso con un usuario, un proveedor y un artículo
// de inventario con 100 unidades en stock.
func newFixture(t *testing.T) (*PurchaseOrderUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	s.users[testActorID] = &entity.User{ID: testActorID, Email: "ana@acme.co", Role: entity.RoleManager}
	s.suppliers[testSupplierID] = &entity.Supplier{ID: testSupplierID, Name: "Distribuidora Norte"}
	s.inventory[testInventoryID] = &entity.InventoryItem{
		ID:          testInventoryID,
		Name:        "Tornillo 3mm",
		SKU:         "TOR-3MM",
		Quantity:    100,
		WarehouseID: testWarehouseID,
	}
	uc := NewPurchaseOrderUseCase(&memTxRunner{s}, &memOrderRepo{s}, &memSupplierRepo{s}, &memUserRepo{s})
	return uc, s
}

// createDraft crea una orden de 10 unidades a $5 y devuelve su ID y el ID de la línea.
func createDraft(t *testing.T, uc *PurchaseOrderUseCase, s *memStore) (orderID, itemID string) {
	t.Helper()
	orderID, err := uc.CreateOrder(context.Background(), testActorID, dto.CreatePurchaseOrderRequest{
		SupplierID:           testSupplierID,
		ExpectedDeliveryDate: time.Now().Add(72 * time.Hour),
		Items: []dto.OrderLineRequest{
			{InventoryID: testInventoryID, Quantity: 10, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	for id, it := range s.items {
		if it.OrderID == orderID {
			return orderID, id
		}
	}
	t.Fatal("la orden no tiene líneas")
	return "", ""
}

func approve(t *testing.T, uc *PurchaseOrderUseCase, orderID string) {
	t.Helper()
	require.NoError(t, uc.ApproveOrder(context.Background(), testActorID, orderID))
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_NaceEnDraftConTotalDeLineas(t *testing.T) {
	uc, s := newFixture(t)

	orderID, err := uc.CreateOrder(context.Background(), testActorID, dto.CreatePurchaseOrderRequest{
		SupplierID:           testSupplierID,
		ExpectedDeliveryDate: time.Now().Add(72 * time.Hour),
		Items: []dto.OrderLineRequest{
			{InventoryID: testInventoryID, Quantity: 10, UnitPrice: decimal.NewFromInt(5)},
			{InventoryID: testInventoryID, Quantity: 3, UnitPrice: decimal.RequireFromString("2.50")},
		},
		TaxAmount:      decimal.NewFromInt(11),
		ShippingAmount: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	order := s.orders[orderID]
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusDraft, order.Status, "toda orden nace en draft")
	// Total = 10×5 + 3×2.50 = 57.50; impuestos y envío NO se suman al total.
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("57.5")),
		"el total debe ser el subtotal de líneas, fue %s", order.TotalAmount)
	assert.Equal(t, testActorID, order.CreatedBy)

	var lines int
	for _, it := range s.items {
		if it.OrderID == orderID {
			lines++
			assert.Zero(t, it.ReceivedQuantity, "las líneas nacen sin cantidad recibida")
		}
	}
	assert.Equal(t, 2, lines)
}

func TestCreateOrder_Validaciones(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	// Sin líneas
	_, err := uc.CreateOrder(ctx, testActorID, dto.CreatePurchaseOrderRequest{SupplierID: testSupplierID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva
	_, err = uc.CreateOrder(ctx, testActorID, dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items:      []dto.OrderLineRequest{{InventoryID: testInventoryID, Quantity: 0, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Precio negativo
	_, err = uc.CreateOrder(ctx, testActorID, dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items:      []dto.OrderLineRequest{{InventoryID: testInventoryID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Proveedor inexistente
	_, err = uc.CreateOrder(ctx, testActorID, dto.CreatePurchaseOrderRequest{
		SupplierID: "sup-fantasma",
		Items:      []dto.OrderLineRequest{{InventoryID: testInventoryID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Actor desconocido
	_, err = uc.CreateOrder(ctx, "usr-fantasma", dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items:      []dto.OrderLineRequest{{InventoryID: testInventoryID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApproveOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveOrder_RegistraAprobador(t *testing.T) {
	uc, s := newFixture(t)
	orderID, _ := createDraft(t, uc, s)

	require.NoError(t, uc.ApproveOrder(context.Background(), testActorID, orderID))

	order := s.orders[orderID]
	assert.Equal(t, entity.OrderStatusApproved, order.Status)
	assert.Equal(t, testActorID, order.ApprovedBy)
}

func TestApproveOrder_DobleAprobacionFalla(t *testing.T) {
	uc, s := newFixture(t)
	orderID, _ := createDraft(t, uc, s)
	approve(t, uc, orderID)

	err := uc.ApproveOrder(context.Background(), testActorID, orderID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"aprobar dos veces la misma orden debe fallar")
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveItems
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveItems_ParcialPasaAShipped(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)
	approve(t, uc, orderID)

	err := uc.ReceiveItems(context.Background(), testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusShipped, s.orders[orderID].Status,
		"recepción parcial deja la orden en shipped")
	assert.Equal(t, int64(4), s.items[itemID].ReceivedQuantity)
	assert.Equal(t, int64(104), s.inventory[testInventoryID].Quantity,
		"el stock debe subir exactamente lo recibido")

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.Equal(t, orderID, mov.ReferenceID)
	assert.Equal(t, int64(4), mov.Quantity)
	assert.True(t, strings.HasPrefix(mov.Notes, "Recibido de OC "), "notas: %s", mov.Notes)
}

func TestReceiveItems_CompletaPasaADelivered(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)
	approve(t, uc, orderID)
	ctx := context.Background()

	require.NoError(t, uc.ReceiveItems(ctx, testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 4}},
	}))
	require.NoError(t, uc.ReceiveItems(ctx, testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 6}},
	}))

	assert.Equal(t, entity.OrderStatusDelivered, s.orders[orderID].Status,
		"con todas las líneas completas la orden queda delivered")
	assert.Equal(t, int64(10), s.items[itemID].ReceivedQuantity)
	assert.Equal(t, int64(110), s.inventory[testInventoryID].Quantity)
	assert.Len(t, s.movements, 2, "un movimiento por recepción aplicada")
}

func TestReceiveItems_SobreReciboAbortaTodo(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)
	approve(t, uc, orderID)

	err := uc.ReceiveItems(context.Background(), testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 11}},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)

	// Nada se confirmó: ni stock, ni línea, ni movimientos, ni estado.
	assert.Equal(t, entity.OrderStatusApproved, s.orders[orderID].Status)
	assert.Zero(t, s.items[itemID].ReceivedQuantity)
	assert.Equal(t, int64(100), s.inventory[testInventoryID].Quantity)
	assert.Empty(t, s.movements)
}

func TestReceiveItems_SobreReciboAcumuladoTambienFalla(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)
	approve(t, uc, orderID)
	ctx := context.Background()

	require.NoError(t, uc.ReceiveItems(ctx, testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 7}},
	}))

	// 7 ya recibidas + 4 > 10 ordenadas
	err := uc.ReceiveItems(ctx, testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
	assert.Equal(t, int64(7), s.items[itemID].ReceivedQuantity)
	assert.Equal(t, int64(107), s.inventory[testInventoryID].Quantity)
}

func TestReceiveItems_RecibosIgnoradosSoloRecalculan(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)
	approve(t, uc, orderID)
	ctx := context.Background()

	require.NoError(t, uc.ReceiveItems(ctx, testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 4}},
	}))

	// Cantidad cero y línea de otra orden: ambas se ignoran sin error.
	require.NoError(t, uc.ReceiveItems(ctx, testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{
			{ItemID: itemID, ReceivedQuantity: 0},
			{ItemID: "item-ajeno", ReceivedQuantity: 5},
		},
	}))

	assert.Equal(t, entity.OrderStatusShipped, s.orders[orderID].Status,
		"el recálculo es idempotente cuando nada cambia")
	assert.Equal(t, int64(4), s.items[itemID].ReceivedQuantity)
	assert.Len(t, s.movements, 1)
}

func TestReceiveItems_EnDraftFalla(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)

	err := uc.ReceiveItems(context.Background(), testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"no se puede recibir contra una orden sin aprobar")
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_DesdeDraftYApproved(t *testing.T) {
	uc, s := newFixture(t)
	ctx := context.Background()

	draftID, _ := createDraft(t, uc, s)
	require.NoError(t, uc.CancelOrder(ctx, testActorID, draftID))
	assert.Equal(t, entity.OrderStatusCancelled, s.orders[draftID].Status)

	approvedID, _ := createDraft(t, uc, s)
	approve(t, uc, approvedID)
	require.NoError(t, uc.CancelOrder(ctx, testActorID, approvedID))
	assert.Equal(t, entity.OrderStatusCancelled, s.orders[approvedID].Status)
}

func TestCancelOrder_ConMercanciaRecibidaFalla(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)
	approve(t, uc, orderID)
	ctx := context.Background()

	require.NoError(t, uc.ReceiveItems(ctx, testActorID, orderID, dto.ReceiveItemsRequest{
		Items: []dto.ReceiptRequest{{ItemID: itemID, ReceivedQuantity: 4}},
	}))

	err := uc.CancelOrder(ctx, testActorID, orderID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"con mercancía recibida la orden ya no se puede cancelar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_IncluyeLineas(t *testing.T) {
	uc, s := newFixture(t)
	orderID, itemID := createDraft(t, uc, s)

	out, err := uc.GetOrder(orderID)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Items, 1)
	assert.Equal(t, itemID, out.Items[0].ID)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(50)))
}

func TestList_FiltraPorEstado(t *testing.T) {
	uc, s := newFixture(t)
	draftID, _ := createDraft(t, uc, s)
	approvedID, _ := createDraft(t, uc, s)
	approve(t, uc, approvedID)

	out, err := uc.List(entity.OrderStatusDraft, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, draftID, out.Items[0].ID)
}
