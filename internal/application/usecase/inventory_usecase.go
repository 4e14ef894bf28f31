package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

// InventoryUseCase casos de uso CRUD y consultas para artículos de inventario.
// El stock NO se muta aquí: ver purchasing.ReceiveItems e inventory.Adjust.
type InventoryUseCase struct {
	repo    repository.InventoryRepository
	movRepo repository.InventoryMovementRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, movRepo repository.InventoryMovementRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, movRepo: movRepo}
}

// Create crea un artículo. El SKU es único global.
func (uc *InventoryUseCase) Create(in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if in.Name == "" || in.SKU == "" || in.SupplierID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.MinStockLevel < 0 || in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		SKU:           in.SKU,
		Barcode:       in.Barcode,
		Category:      in.Category,
		Unit:          in.Unit,
		CostPrice:     in.CostPrice,
		SellingPrice:  in.SellingPrice,
		Quantity:      in.Quantity,
		MinStockLevel: in.MinStockLevel,
		SupplierID:    in.SupplierID,
		WarehouseID:   in.WarehouseID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// Update actualiza los datos maestros de un artículo (no el stock).
func (uc *InventoryUseCase) Update(id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.SKU != nil && *in.SKU != item.SKU {
		other, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
		item.SKU = *in.SKU
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Barcode != nil {
		item.Barcode = *in.Barcode
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		item.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		item.SellingPrice = *in.SellingPrice
	}
	if in.MinStockLevel != nil {
		item.MinStockLevel = *in.MinStockLevel
	}
	if in.SupplierID != nil {
		item.SupplierID = *in.SupplierID
	}
	if in.WarehouseID != nil {
		item.WarehouseID = *in.WarehouseID
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toInventoryItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *InventoryUseCase) GetByID(id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toInventoryItemResponse(item), nil
}

// List lista artículos con paginación.
func (uc *InventoryUseCase) List(limit, offset int) (*dto.InventoryListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toInventoryListResponse(list, limit, offset), nil
}

// ListLowStock lista artículos con stock por debajo de su mínimo.
func (uc *InventoryUseCase) ListLowStock() (*dto.InventoryListResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return toInventoryListResponse(list, 0, 0), nil
}

// ListByWarehouse lista artículos de una bodega.
func (uc *InventoryUseCase) ListByWarehouse(warehouseID string) (*dto.InventoryListResponse, error) {
	list, err := uc.repo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	return toInventoryListResponse(list, 0, 0), nil
}

// MovementHistory devuelve el historial de movimientos de un artículo (desc).
func (uc *InventoryUseCase) MovementHistory(inventoryID string, limit, offset int) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListByInventory(inventoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse mapea un movimiento del libro a su DTO de salida.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		InventoryID: m.InventoryID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		Type:        m.Type,
		ReferenceID: m.ReferenceID,
		Date:        m.Date,
		Notes:       m.Notes,
		UserID:      m.UserID,
	}
}

func toInventoryItemResponse(i *entity.InventoryItem) *dto.InventoryItemResponse {
	if i == nil {
		return nil
	}
	return &dto.InventoryItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		Description:   i.Description,
		SKU:           i.SKU,
		Barcode:       i.Barcode,
		Category:      i.Category,
		Unit:          i.Unit,
		CostPrice:     i.CostPrice,
		SellingPrice:  i.SellingPrice,
		Quantity:      i.Quantity,
		MinStockLevel: i.MinStockLevel,
		SupplierID:    i.SupplierID,
		WarehouseID:   i.WarehouseID,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toInventoryListResponse(list []*entity.InventoryItem, limit, offset int) *dto.InventoryListResponse {
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInventoryItemResponse(i))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
