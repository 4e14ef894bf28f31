package repository

import "github.com/jhoicas/almacen-pro/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra y sus líneas. La orden es dueña exclusiva de sus líneas: el borrado
// en cascada es responsabilidad de quien crea (FK ON DELETE CASCADE en SQL).
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para
	// serializar aprobaciones/recepciones concurrentes sobre la misma orden.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id, status string, approvedBy *string) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByStatus(status string) ([]*entity.PurchaseOrder, error)

	CreateItem(item *entity.PurchaseOrderItem) error
	GetItemByID(id string) (*entity.PurchaseOrderItem, error)
	// GetItemForUpdate bloquea la línea (SELECT FOR UPDATE).
	GetItemForUpdate(id string) (*entity.PurchaseOrderItem, error)
	UpdateItemReceived(id string, receivedQuantity int64) error
	ListItemsByOrder(orderID string) ([]*entity.PurchaseOrderItem, error)
}
