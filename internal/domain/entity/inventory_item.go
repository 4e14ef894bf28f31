package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo de inventario (SKU único global).
// Quantity solo se muta a través de la recepción de órdenes de compra o de
// un ajuste explícito (AdjustQuantity), nunca por el CRUD genérico.
type InventoryItem struct {
	ID            string
	Name          string
	Description   string
	SKU           string // único
	Barcode       string
	Category      string
	Unit          string
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	Quantity      int64 // stock actual, >= 0
	MinStockLevel int64
	SupplierID    string
	WarehouseID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el artículo está por debajo de su stock mínimo.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity < i.MinStockLevel
}
