package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas del tablero sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardStats calcula los conteos del tablero en una sola consulta.
func (r *AnalyticsRepo) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM inventory_items),
			(SELECT COUNT(*) FROM warehouses),
			(SELECT COUNT(*) FROM suppliers),
			(SELECT COUNT(*) FROM inventory_items WHERE quantity < min_stock_level)`
	var stats repository.DashboardStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.TotalItems, &stats.TotalWarehouses, &stats.TotalSuppliers, &stats.LowStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("get dashboard stats: %w", err)
	}
	return &stats, nil
}
