package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypePurchase   = "purchase"
	MovementTypeSale       = "sale"
	MovementTypeTransfer   = "transfer"
	MovementTypeAdjustment = "adjustment"
)

// InventoryMovement es una entrada inmutable del libro de movimientos:
// solo se inserta, nunca se actualiza ni se borra.
type InventoryMovement struct {
	ID          string
	InventoryID string
	WarehouseID string
	Quantity    int64 // delta con signo: positivo entrada, negativo salida
	Type        string
	ReferenceID string // ej. ID de la orden de compra, o "ADJ-<ts>" en ajustes
	Date        time.Time
	Notes       string
	UserID      string
	CreatedAt   time.Time
}
