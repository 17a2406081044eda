package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. CLOSED y CANCELLED son terminales.
const (
	POStatusDraft             = "DRAFT"
	POStatusApproved          = "APPROVED"
	POStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POStatusClosed            = "CLOSED"
	POStatusCancelled         = "CANCELLED"
)

// PurchaseOrder cabecera de orden de compra (entrada de mercancía).
// Se crea APPROVED: el flujo actual de recepción omite DRAFT.
type PurchaseOrder struct {
	ID           int64
	SupplierID   int64
	LocationID   int64 // ubicación de recepción
	OrderDate    time.Time
	ExpectedDate *time.Time
	Status       string
	TotalAmount  decimal.Decimal
	CreatedBy    int64
	CreatedAt    time.Time
	Items        []PurchaseOrderItem
}

// PurchaseOrderItem línea de orden de compra, única por (po, producto).
// Invariante: 0 <= ReceivedQty <= OrderedQty en todo momento.
type PurchaseOrderItem struct {
	POID        int64
	ProductID   int64
	OrderedQty  int64
	ReceivedQty int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Outstanding devuelve la cantidad pendiente de recibir en la línea.
// Aislado para que una futura recepción parcial lo reutilice.
func (it *PurchaseOrderItem) Outstanding() int64 {
	return it.OrderedQty - it.ReceivedQty
}

// FullyReceived indica si todas las líneas quedaron recibidas por completo.
func (po *PurchaseOrder) FullyReceived() bool {
	for i := range po.Items {
		if po.Items[i].Outstanding() > 0 {
			return false
		}
	}
	return true
}
