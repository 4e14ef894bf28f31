package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, name, description, sku, barcode, category, unit,
	cost_price, selling_price, quantity, min_stock_level, supplier_id, warehouse_id,
	created_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un nuevo artículo de inventario.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, description, sku, barcode, category, unit,
			cost_price, selling_price, quantity, min_stock_level, supplier_id, warehouse_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.SKU, nullIfEmpty(item.Barcode),
		item.Category, item.Unit, item.CostPrice, item.SellingPrice,
		item.Quantity, item.MinStockLevel, item.SupplierID, item.WarehouseID,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory item")
}

// GetBySKU obtiene un artículo por SKU (índice único).
func (r *InventoryRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get inventory item by sku")
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory item for update")
}

// Update actualiza los datos maestros del artículo. quantity NO se toca aquí.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, description = $3, sku = $4, barcode = $5,
			category = $6, unit = $7, cost_price = $8, selling_price = $9,
			min_stock_level = $10, supplier_id = $11, warehouse_id = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.SKU, nullIfEmpty(item.Barcode),
		item.Category, item.Unit, item.CostPrice, item.SellingPrice,
		item.MinStockLevel, item.SupplierID, item.WarehouseID, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateQuantity fija el stock del artículo. Usar solo dentro de una tx
// tras GetForUpdate.
func (r *InventoryRepo) UpdateQuantity(id string, quantity int64) error {
	query := `UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// List lista artículos con paginación.
func (r *InventoryRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return r.scanMany(rows)
}

// ListByWarehouse lista artículos de una bodega.
func (r *InventoryRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE warehouse_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by warehouse: %w", err)
	}
	return r.scanMany(rows)
}

// ListLowStock lista artículos con quantity < min_stock_level.
func (r *InventoryRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE quantity < min_stock_level ORDER BY quantity - min_stock_level`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return r.scanMany(rows)
}

// SumQuantityByWarehouse suma el stock de todos los artículos de una bodega.
func (r *InventoryRepo) SumQuantityByWarehouse(warehouseID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventory_items WHERE warehouse_id = $1`
	var sum int64
	if err := r.q.QueryRow(context.Background(), query, warehouseID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum quantity by warehouse: %w", err)
	}
	return sum, nil
}

func (r *InventoryRepo) scanOne(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	var barcode *string
	err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.SKU, &barcode, &i.Category, &i.Unit,
		&i.CostPrice, &i.SellingPrice, &i.Quantity, &i.MinStockLevel,
		&i.SupplierID, &i.WarehouseID, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if barcode != nil {
		i.Barcode = *barcode
	}
	return &i, nil
}

func (r *InventoryRepo) scanMany(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var i entity.InventoryItem
		var barcode *string
		if err := rows.Scan(
			&i.ID, &i.Name, &i.Description, &i.SKU, &barcode, &i.Category, &i.Unit,
			&i.CostPrice, &i.SellingPrice, &i.Quantity, &i.MinStockLevel,
			&i.SupplierID, &i.WarehouseID, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		if barcode != nil {
			i.Barcode = *barcode
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// nullIfEmpty convierte "" a NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
