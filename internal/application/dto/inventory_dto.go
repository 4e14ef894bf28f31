package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest entrada para crear un artículo de inventario.
type CreateInventoryItemRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	SupplierID    string          `json:"supplier_id"`
	WarehouseID   string          `json:"warehouse_id"`
}

// UpdateInventoryItemRequest entrada para actualizar un artículo.
// Quantity no aparece aquí a propósito: el stock solo cambia vía recepción o ajuste.
type UpdateInventoryItemRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	SKU           *string          `json:"sku"`
	Barcode       *string          `json:"barcode"`
	Category      *string          `json:"category"`
	Unit          *string          `json:"unit"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	MinStockLevel *int64           `json:"min_stock_level"`
	SupplierID    *string          `json:"supplier_id"`
	WarehouseID   *string          `json:"warehouse_id"`
}

// AdjustQuantityRequest ajuste manual de stock (delta con signo).
type AdjustQuantityRequest struct {
	Quantity int64  `json:"quantity"`
	Notes    string `json:"notes"`
}

// InventoryItemResponse salida de un artículo.
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode,omitempty"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int64           `json:"quantity"`
	MinStockLevel int64           `json:"min_stock_level"`
	SupplierID    string          `json:"supplier_id"`
	WarehouseID   string          `json:"warehouse_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InventoryListResponse lista paginada de artículos.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID          string    `json:"id"`
	InventoryID string    `json:"inventory_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	Type        string    `json:"type"`
	ReferenceID string    `json:"reference_id"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
	UserID      string    `json:"user_id"`
}
