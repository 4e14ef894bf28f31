package repository

import "github.com/jhoicas/almacen-pro/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para InventoryItem (DIP).
// UpdateQuantity es la única vía de mutación del stock; se usa dentro de
// transacciones tras GetForUpdate para evitar lost updates.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del artículo (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	UpdateQuantity(id string, quantity int64) error
	List(limit, offset int) ([]*entity.InventoryItem, error)
	ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error)
	ListLowStock() ([]*entity.InventoryItem, error)
	SumQuantityByWarehouse(warehouseID string) (int64, error)
}
