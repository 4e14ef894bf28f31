package purchasing

import (
	"context"

	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ciclo de compra atados a esa tx. Cada operación pública
// del ciclo (crear, aprobar, recibir, cancelar) corre como una unidad atómica:
// o se confirma todo o no se persiste nada.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
