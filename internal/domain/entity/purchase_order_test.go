package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tabla de transiciones válidas del ciclo de vida de la orden.
func TestPurchaseOrder_Transiciones(t *testing.T) {
	cases := []struct {
		status     string
		canApprove bool
		canReceive bool
		canCancel  bool
		isTerminal bool
	}{
		{OrderStatusDraft, true, false, true, false},
		{OrderStatusPending, false, false, false, false},
		{OrderStatusApproved, false, true, true, false},
		{OrderStatusShipped, false, true, false, false},
		{OrderStatusDelivered, false, false, false, true},
		{OrderStatusCancelled, false, false, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			o := &PurchaseOrder{Status: tc.status}
			assert.Equal(t, tc.canApprove, o.CanApprove(), "CanApprove")
			assert.Equal(t, tc.canReceive, o.CanReceive(), "CanReceive")
			assert.Equal(t, tc.canCancel, o.CanCancel(), "CanCancel")
			assert.Equal(t, tc.isTerminal, o.IsTerminal(), "IsTerminal")
		})
	}
}

func TestPurchaseOrderItem_FullyReceived(t *testing.T) {
	assert.False(t, (&PurchaseOrderItem{Quantity: 10, ReceivedQuantity: 9}).FullyReceived())
	assert.True(t, (&PurchaseOrderItem{Quantity: 10, ReceivedQuantity: 10}).FullyReceived())
	assert.False(t, (&PurchaseOrderItem{Quantity: 10, ReceivedQuantity: 0}).FullyReceived())
}
