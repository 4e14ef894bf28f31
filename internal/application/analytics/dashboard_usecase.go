package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/application/usecase"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
	"github.com/jhoicas/almacen-pro/pkg/cache"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// DashboardUseCase agrega los datos del tablero: conteos globales y
// actividad reciente del libro de movimientos. Los conteos se sirven con
// cache-aside sobre Redis cuando hay cliente configurado; el cache es
// opcional y sus fallos nunca rompen la consulta.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	movRepo       repository.InventoryMovementRepository
	cache         cache.Client // puede ser nil
}

// NewDashboardUseCase construye el caso de uso. cacheClient puede ser nil.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	movRepo repository.InventoryMovementRepository,
	cacheClient cache.Client,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		movRepo:       movRepo,
		cache:         cacheClient,
	}
}

// GetStats devuelve los conteos del tablero, con TTL corto en cache.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, statsCacheKey); err == nil {
			var cached dto.DashboardStatsResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	stats, err := uc.analyticsRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardStatsResponse{
		TotalItems:      stats.TotalItems,
		TotalWarehouses: stats.TotalWarehouses,
		TotalSuppliers:  stats.TotalSuppliers,
		LowStockItems:   stats.LowStockItems,
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			_ = uc.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL)
		}
	}
	return out, nil
}

// GetRecentActivity devuelve los últimos 10 movimientos del libro.
func (uc *DashboardUseCase) GetRecentActivity(ctx context.Context) (*dto.RecentActivityResponse, error) {
	movs, err := uc.movRepo.ListRecent(10)
	if err != nil {
		return nil, err
	}
	out := &dto.RecentActivityResponse{Movements: make([]dto.MovementResponse, 0, len(movs))}
	for _, m := range movs {
		out.Movements = append(out.Movements, usecase.ToMovementResponse(m))
	}
	return out, nil
}
