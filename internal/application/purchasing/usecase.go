package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/internal/domain/repository"
)

// PurchaseOrderUseCase gestiona el ciclo de vida de las órdenes de compra:
// creación (draft), aprobación, recepción de mercancía con actualización de
// stock y libro de movimientos, y cancelación. Cada operación corre en una
// transacción con bloqueo de fila (SELECT FOR UPDATE) sobre la orden, sus
// líneas y los artículos tocados.
type PurchaseOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
	}
}

// resolveActor convierte el ID del actor autenticado en un usuario del
// directorio. Sin actor resoluble no hay operación.
func (uc *PurchaseOrderUseCase) resolveActor(actorID string) (*entity.User, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// CreateOrder valida la entrada, calcula el total (subtotal de líneas, sin
// impuestos ni envío) y persiste orden + líneas en una sola transacción.
// La orden nace en draft y cada línea con received_quantity = 0.
func (uc *PurchaseOrderUseCase) CreateOrder(ctx context.Context, actorID string, in dto.CreatePurchaseOrderRequest) (string, error) {
	actor, err := uc.resolveActor(actorID)
	if err != nil {
		return "", err
	}
	if len(in.Items) == 0 {
		return "", domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.InventoryID == "" || line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return "", domain.ErrInvalidInput
		}
	}
	if in.TaxAmount.IsNegative() || in.ShippingAmount.IsNegative() {
		return "", domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return "", err
	}
	if supplier == nil {
		return "", domain.ErrNotFound
	}

	total := decimal.Zero
	for _, line := range in.Items {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:                   uuid.New().String(),
		SupplierID:           in.SupplierID,
		OrderDate:            now,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Status:               entity.OrderStatusDraft,
		TotalAmount:          total,
		TaxAmount:            in.TaxAmount,
		ShippingAmount:       in.ShippingAmount,
		Notes:                in.Notes,
		CreatedBy:            actor.ID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryRepository,
		_ repository.InventoryMovementRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, line := range in.Items {
			item := &entity.PurchaseOrderItem{
				ID:               uuid.New().String(),
				OrderID:          order.ID,
				InventoryID:      line.InventoryID,
				Quantity:         line.Quantity,
				UnitPrice:        line.UnitPrice,
				TotalPrice:       line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)),
				ReceivedQuantity: 0,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return order.ID, nil
}

// ApproveOrder pasa la orden de draft a approved y registra quién aprueba.
func (uc *PurchaseOrderUseCase) ApproveOrder(ctx context.Context, actorID, orderID string) error {
	actor, err := uc.resolveActor(actorID)
	if err != nil {
		return err
	}
	return uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryRepository,
		_ repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanApprove() {
			return domain.ErrInvalidTransition
		}
		approver := actor.ID
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusApproved, &approver)
	})
}

// ReceiveItems registra una recepción parcial o total contra una orden
// approved (o shipped, si ya hubo recepción parcial). Por cada recibo con
// cantidad > 0: actualiza received_quantity de la línea, suma el stock del
// artículo y añade un movimiento `purchase` al libro. Un sobre-recibo aborta
// la llamada completa (nada se confirma). Al final recalcula el estado de la
// orden de forma incondicional: delivered si toda línea quedó completa,
// shipped en caso contrario.
func (uc *PurchaseOrderUseCase) ReceiveItems(ctx context.Context, actorID, orderID string, in dto.ReceiveItemsRequest) error {
	actor, err := uc.resolveActor(actorID)
	if err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanReceive() {
			return domain.ErrInvalidTransition
		}

		for _, receipt := range in.Items {
			if receipt.ReceivedQuantity <= 0 {
				continue
			}
			item, err := orderRepo.GetItemForUpdate(receipt.ItemID)
			if err != nil {
				return err
			}
			// Referencia obsoleta o de otra orden: se ignora, no es error.
			if item == nil || item.OrderID != orderID {
				continue
			}
			newReceived := item.ReceivedQuantity + receipt.ReceivedQuantity
			if newReceived > item.Quantity {
				return domain.ErrOverReceipt
			}
			if err := orderRepo.UpdateItemReceived(item.ID, newReceived); err != nil {
				return err
			}

			inv, err := invRepo.GetForUpdate(item.InventoryID)
			if err != nil {
				return err
			}
			if inv == nil {
				continue
			}
			if err := invRepo.UpdateQuantity(inv.ID, inv.Quantity+receipt.ReceivedQuantity); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				ID:          uuid.New().String(),
				InventoryID: inv.ID,
				WarehouseID: inv.WarehouseID,
				Quantity:    receipt.ReceivedQuantity,
				Type:        entity.MovementTypePurchase,
				ReferenceID: orderID,
				Date:        now,
				Notes:       fmt.Sprintf("Recibido de OC %s", orderID),
				UserID:      actor.ID,
				CreatedAt:   now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		// Recalcular estado siempre, incluso si todos los recibos se ignoraron:
		// llamadas repetidas son idempotentes mientras las líneas no cambien.
		items, err := orderRepo.ListItemsByOrder(orderID)
		if err != nil {
			return err
		}
		fully := true
		for _, it := range items {
			if !it.FullyReceived() {
				fully = false
				break
			}
		}
		status := entity.OrderStatusShipped
		if fully {
			status = entity.OrderStatusDelivered
		}
		return orderRepo.UpdateStatus(orderID, status, nil)
	})
}

// CancelOrder cancela una orden en draft o approved. Con mercancía ya
// recibida (shipped/delivered) la cancelación no es válida.
func (uc *PurchaseOrderUseCase) CancelOrder(ctx context.Context, actorID, orderID string) error {
	if _, err := uc.resolveActor(actorID); err != nil {
		return err
	}
	return uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryRepository,
		_ repository.InventoryMovementRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanCancel() {
			return domain.ErrInvalidTransition
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled, nil)
	})
}

// GetOrder devuelve la orden con sus líneas.
func (uc *PurchaseOrderUseCase) GetOrder(orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	items, err := uc.orderRepo.ListItemsByOrder(orderID)
	if err != nil {
		return nil, err
	}
	out := toOrderResponse(order)
	out.Items = make([]dto.PurchaseOrderItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, toOrderItemResponse(it))
	}
	return out, nil
}

// List devuelve órdenes paginadas, o filtradas por estado si status no es vacío.
func (uc *PurchaseOrderUseCase) List(status string, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	var (
		orders []*entity.PurchaseOrder
		err    error
	)
	if status != "" {
		orders, err = uc.orderRepo.ListByStatus(status)
	} else {
		orders, err = uc.orderRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.PurchaseOrderResponse{
		ID:                   o.ID,
		SupplierID:           o.SupplierID,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Status:               o.Status,
		TotalAmount:          o.TotalAmount,
		TaxAmount:            o.TaxAmount,
		ShippingAmount:       o.ShippingAmount,
		Notes:                o.Notes,
		CreatedBy:            o.CreatedBy,
		ApprovedBy:           o.ApprovedBy,
	}
}

func toOrderItemResponse(i *entity.PurchaseOrderItem) dto.PurchaseOrderItemResponse {
	return dto.PurchaseOrderItemResponse{
		ID:               i.ID,
		OrderID:          i.OrderID,
		InventoryID:      i.InventoryID,
		Quantity:         i.Quantity,
		UnitPrice:        i.UnitPrice,
		TotalPrice:       i.TotalPrice,
		ReceivedQuantity: i.ReceivedQuantity,
	}
}
