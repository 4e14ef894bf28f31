package repository

import "github.com/jhoicas/almacen-pro/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia para el libro
// de movimientos. Solo inserciones y lecturas: el libro es append-only.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByInventory(inventoryID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListRecent(limit int) ([]*entity.InventoryMovement, error)
}
