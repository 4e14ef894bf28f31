package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Capacity  int64  `json:"capacity"`
	ManagerID string `json:"manager_id"`
	Contact   string `json:"contact"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega (campos opcionales).
type UpdateWarehouseRequest struct {
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Capacity  *int64  `json:"capacity"`
	ManagerID *string `json:"manager_id"`
	Contact   *string `json:"contact"`
	IsActive  *bool   `json:"is_active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int64     `json:"capacity"`
	ManagerID string    `json:"manager_id"`
	Contact   string    `json:"contact"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// WarehouseCapacityResponse reporte de ocupación de una bodega.
// UsedCapacity es la suma del stock de sus artículos.
type WarehouseCapacityResponse struct {
	TotalCapacity         int64   `json:"total_capacity"`
	UsedCapacity          int64   `json:"used_capacity"`
	AvailableCapacity     int64   `json:"available_capacity"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
}
