package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// Capacity es el tope informativo de stock agregado; no se valida en mutaciones.
type Warehouse struct {
	ID        string
	Name      string // único
	Location  string
	Capacity  int64
	ManagerID string
	Contact   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
