package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `id, supplier_id, order_date, expected_delivery_date, status,
	total_amount, tax_amount, shipping_amount, notes, created_by, approved_by,
	created_at, updated_at`

const orderItemColumns = `id, order_id, inventory_id, quantity, unit_price, total_price, received_quantity`

// PurchaseOrderRepo implementación sobre PostgreSQL para órdenes de compra y
// sus líneas (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una nueva orden de compra.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, order_date, expected_delivery_date, status,
			total_amount, tax_amount, shipping_amount, notes, created_by, approved_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.OrderDate, order.ExpectedDeliveryDate, order.Status,
		order.TotalAmount, order.TaxAmount, order.ShippingAmount, nullIfEmpty(order.Notes),
		order.CreatedBy, nullIfEmpty(order.ApprovedBy), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.scanOrder(r.q.QueryRow(context.Background(), query, id), "get purchase order")
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE) para
// serializar aprobaciones y recepciones concurrentes.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.scanOrder(r.q.QueryRow(context.Background(), query, id), "get purchase order for update")
}

// UpdateStatus cambia el estado de la orden; approvedBy solo se escribe si no es nil.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string, approvedBy *string) error {
	var err error
	if approvedBy != nil {
		query := `UPDATE purchase_orders SET status = $2, approved_by = $3, updated_at = now() WHERE id = $1`
		_, err = r.q.Exec(context.Background(), query, id, status, *approvedBy)
	} else {
		query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
		_, err = r.q.Exec(context.Background(), query, id, status)
	}
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// List lista órdenes con paginación (más recientes primero).
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders ORDER BY order_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	return r.scanOrders(rows)
}

// ListByStatus lista órdenes por estado.
func (r *PurchaseOrderRepo) ListByStatus(status string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE status = $1 ORDER BY order_date DESC`
	rows, err := r.q.Query(context.Background(), query, status)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders by status: %w", err)
	}
	return r.scanOrders(rows)
}

// CreateItem persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, order_id, inventory_id, quantity, unit_price, total_price, received_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.InventoryID, item.Quantity,
		item.UnitPrice, item.TotalPrice, item.ReceivedQuantity,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// GetItemByID obtiene una línea por ID.
func (r *PurchaseOrderRepo) GetItemByID(id string) (*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE id = $1`
	return r.scanItem(r.q.QueryRow(context.Background(), query, id), "get purchase order item")
}

// GetItemForUpdate obtiene la línea y bloquea la fila (SELECT FOR UPDATE).
func (r *PurchaseOrderRepo) GetItemForUpdate(id string) (*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE id = $1 FOR UPDATE`
	return r.scanItem(r.q.QueryRow(context.Background(), query, id), "get purchase order item for update")
}

// UpdateItemReceived fija la cantidad recibida de la línea. Usar dentro de
// una tx tras GetItemForUpdate.
func (r *PurchaseOrderRepo) UpdateItemReceived(id string, receivedQuantity int64) error {
	query := `UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, receivedQuantity)
	if err != nil {
		return fmt.Errorf("update item received quantity: %w", err)
	}
	return nil
}

// ListItemsByOrder lista las líneas de una orden.
func (r *PurchaseOrderRepo) ListItemsByOrder(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM purchase_order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list items by order: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var i entity.PurchaseOrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.InventoryID, &i.Quantity,
			&i.UnitPrice, &i.TotalPrice, &i.ReceivedQuantity); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) scanOrder(row pgx.Row, op string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var notes, approvedBy *string
	err := row.Scan(
		&o.ID, &o.SupplierID, &o.OrderDate, &o.ExpectedDeliveryDate, &o.Status,
		&o.TotalAmount, &o.TaxAmount, &o.ShippingAmount, &notes, &o.CreatedBy,
		&approvedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if notes != nil {
		o.Notes = *notes
	}
	if approvedBy != nil {
		o.ApprovedBy = *approvedBy
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) scanOrders(rows pgx.Rows) ([]*entity.PurchaseOrder, error) {
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		var notes, approvedBy *string
		if err := rows.Scan(
			&o.ID, &o.SupplierID, &o.OrderDate, &o.ExpectedDeliveryDate, &o.Status,
			&o.TotalAmount, &o.TaxAmount, &o.ShippingAmount, &notes, &o.CreatedBy,
			&approvedBy, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		if notes != nil {
			o.Notes = *notes
		}
		if approvedBy != nil {
			o.ApprovedBy = *approvedBy
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) scanItem(row pgx.Row, op string) (*entity.PurchaseOrderItem, error) {
	var i entity.PurchaseOrderItem
	err := row.Scan(&i.ID, &i.OrderID, &i.InventoryID, &i.Quantity,
		&i.UnitPrice, &i.TotalPrice, &i.ReceivedQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}
