package repository

import "context"

// DashboardStats conteos agregados para el tablero.
type DashboardStats struct {
	TotalItems      int64
	TotalWarehouses int64
	TotalSuppliers  int64
	LowStockItems   int64
}

// AnalyticsRepository define el puerto de consultas agregadas del tablero.
type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}
