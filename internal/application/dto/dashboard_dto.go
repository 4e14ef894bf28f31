package dto

// DashboardStatsResponse conteos agregados para el tablero.
type DashboardStatsResponse struct {
	TotalItems      int64 `json:"total_items"`
	TotalWarehouses int64 `json:"total_warehouses"`
	TotalSuppliers  int64 `json:"total_suppliers"`
	LowStockItems   int64 `json:"low_stock_items"`
}

// RecentActivityResponse últimos movimientos del libro (más recientes primero).
type RecentActivityResponse struct {
	Movements []MovementResponse `json:"movements"`
}
