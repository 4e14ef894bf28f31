package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden de compra nueva.
type OrderLineRequest struct {
	InventoryID string          `json:"inventory_id"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
type CreatePurchaseOrderRequest struct {
	SupplierID           string             `json:"supplier_id"`
	ExpectedDeliveryDate time.Time          `json:"expected_delivery_date"`
	Items                []OrderLineRequest `json:"items"`
	TaxAmount            decimal.Decimal    `json:"tax_amount"`
	ShippingAmount       decimal.Decimal    `json:"shipping_amount"`
	Notes                string             `json:"notes"`
}

// ReceiptRequest cantidad recibida contra una línea existente.
type ReceiptRequest struct {
	ItemID           string `json:"item_id"`
	ReceivedQuantity int64  `json:"received_quantity"`
}

// ReceiveItemsRequest entrada para registrar una recepción (parcial o total).
type ReceiveItemsRequest struct {
	Items []ReceiptRequest `json:"items"`
}

// PurchaseOrderItemResponse salida de una línea de orden.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"order_id"`
	InventoryID      string          `json:"inventory_id"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	ReceivedQuantity int64           `json:"received_quantity"`
}

// PurchaseOrderResponse salida de una orden de compra con sus líneas.
type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	SupplierID           string                      `json:"supplier_id"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate time.Time                   `json:"expected_delivery_date"`
	Status               string                      `json:"status"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	TaxAmount            decimal.Decimal             `json:"tax_amount"`
	ShippingAmount       decimal.Decimal             `json:"shipping_amount"`
	Notes                string                      `json:"notes,omitempty"`
	CreatedBy            string                      `json:"created_by"`
	ApprovedBy           string                      `json:"approved_by,omitempty"`
	Items                []PurchaseOrderItemResponse `json:"items,omitempty"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
