package entity

import "time"

// Supplier representa un proveedor al que se le emiten órdenes de compra.
type Supplier struct {
	ID           string
	Name         string // único
	Contact      string
	Email        string
	Address      string
	TaxID        string
	PaymentTerms int // días de plazo de pago
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
