package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de compra.
const (
	OrderStatusDraft     = "draft"
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// PurchaseOrder representa una orden de compra a un proveedor.
// TotalAmount es el subtotal de las líneas (cantidad × precio unitario);
// los impuestos y el envío se guardan aparte y no se suman al total persistido.
type PurchaseOrder struct {
	ID                   string
	SupplierID           string
	OrderDate            time.Time
	ExpectedDeliveryDate time.Time
	Status               string
	TotalAmount          decimal.Decimal
	TaxAmount            decimal.Decimal
	ShippingAmount       decimal.Decimal
	Notes                string
	CreatedBy            string
	ApprovedBy           string // vacío hasta la aprobación
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PurchaseOrderItem es una línea de la orden. ReceivedQuantity es monótona
// no decreciente y nunca supera Quantity.
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	InventoryID      string
	Quantity         int64
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal // Quantity × UnitPrice
	ReceivedQuantity int64
}

// CanApprove indica si la orden puede pasar a approved.
func (o *PurchaseOrder) CanApprove() bool {
	return o.Status == OrderStatusDraft
}

// CanReceive indica si la orden puede recibir mercancía. Una orden approved
// pasa a shipped en la primera recepción parcial y sigue recibiendo hasta delivered.
func (o *PurchaseOrder) CanReceive() bool {
	return o.Status == OrderStatusApproved || o.Status == OrderStatusShipped
}

// CanCancel indica si la orden puede cancelarse. Una vez recibida mercancía
// (shipped/delivered) la cancelación deja de ser válida.
func (o *PurchaseOrder) CanCancel() bool {
	return o.Status == OrderStatusDraft || o.Status == OrderStatusApproved
}

// IsTerminal indica si el estado es final.
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// FullyReceived indica si toda línea quedó completamente recibida.
func (i *PurchaseOrderItem) FullyReceived() bool {
	return i.ReceivedQuantity >= i.Quantity
}
