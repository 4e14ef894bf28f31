package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

// AdjustQuantityUseCase aplica ajustes manuales de stock de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el artículo
// para que dos ajustes concurrentes no se pisen el stock.
type AdjustQuantityUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
}

// NewAdjustQuantityUseCase construye el caso de uso.
func NewAdjustQuantityUseCase(txRunner TxRunner, userRepo repository.UserRepository) *AdjustQuantityUseCase {
	return &AdjustQuantityUseCase{txRunner: txRunner, userRepo: userRepo}
}

// Adjust suma delta (con signo) al stock del artículo. El resultado no puede
// quedar negativo. Registra un movimiento `adjustment` con referencia
// "ADJ-<unix-ms>" en el libro.
func (uc *AdjustQuantityUseCase) Adjust(ctx context.Context, actorID, inventoryID string, delta int64, notes string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if delta == 0 {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// Bloquea la fila del artículo para serializar ajustes concurrentes.
		item, err := invRepo.GetForUpdate(inventoryID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		newQuantity := item.Quantity + delta
		if newQuantity < 0 {
			return domain.ErrNegativeStock
		}
		if err := invRepo.UpdateQuantity(item.ID, newQuantity); err != nil {
			return err
		}
		mov := &entity.InventoryMovement{
			ID:          uuid.New().String(),
			InventoryID: item.ID,
			WarehouseID: item.WarehouseID,
			Quantity:    delta,
			Type:        entity.MovementTypeAdjustment,
			ReferenceID: fmt.Sprintf("ADJ-%d", now.UnixMilli()),
			Date:        now,
			Notes:       notes,
			UserID:      actor.ID,
			CreatedAt:   now,
		}
		return movRepo.Create(mov)
	})
}
