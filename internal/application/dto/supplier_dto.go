package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	TaxID        string `json:"tax_id"`
	PaymentTerms int    `json:"payment_terms"`
	Notes        string `json:"notes"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor (campos opcionales).
type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	Contact      *string `json:"contact"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	TaxID        *string `json:"tax_id"`
	PaymentTerms *int    `json:"payment_terms"`
	Notes        *string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	TaxID        string    `json:"tax_id,omitempty"`
	PaymentTerms int       `json:"payment_terms"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
