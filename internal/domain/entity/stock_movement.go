package entity

import "time"

// Tipos de movimiento del ledger. El tipo determina el signo: la cantidad
// se almacena siempre positiva para evitar desacuerdos entre signo y tipo.
const (
	MovementTypePurchaseReceipt = "PURCHASE_RECEIPT" // entrada por recepción de compra
	MovementTypeSalesIssue      = "SALES_ISSUE"      // salida por venta
	MovementTypeAdjustment      = "ADJUSTMENT"       // ajuste (entrada)
	MovementTypeTransferOut     = "TRANSFER_OUT"     // salida por traslado
	MovementTypeTransferIn      = "TRANSFER_IN"      // entrada por traslado
)

// Tipos de documento relacionado.
const (
	DocumentTypePurchaseOrder = "PURCHASE_ORDER"
	DocumentTypeSalesOrder    = "SALES_ORDER"
	DocumentTypeTransfer      = "TRANSFER"
)

// StockMovement es una entrada del ledger: inmutable una vez escrita.
// Las correcciones se hacen con nuevas entradas, nunca editando.
type StockMovement struct {
	ID            int64
	ProductID     int64
	LocationID    int64
	Quantity      int64  // siempre > 0; el signo lo da MovementType
	MovementType  string // PURCHASE_RECEIPT, SALES_ISSUE, ADJUSTMENT, TRANSFER_OUT, TRANSFER_IN
	RelatedDocType string // PURCHASE_ORDER / SALES_ORDER / TRANSFER, vacío si no aplica
	RelatedDocID  int64  // 0 si no aplica; en traslados, ambas piernas comparten el id correlacionador
	TransactionID string // uuid que agrupa los movimientos de una misma unidad atómica
	MovementDate  time.Time
	CreatedBy     int64
	CreatedAt     time.Time
}

// ValidMovementType verifica que el tipo pertenezca al conjunto cerrado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchaseReceipt, MovementTypeSalesIssue, MovementTypeAdjustment,
		MovementTypeTransferOut, MovementTypeTransferIn:
		return true
	}
	return false
}

// Direction devuelve +1 o -1 según el tipo de movimiento.
// PURCHASE_RECEIPT, TRANSFER_IN y ADJUSTMENT suman; SALES_ISSUE y TRANSFER_OUT restan.
func Direction(movementType string) int64 {
	switch movementType {
	case MovementTypeSalesIssue, MovementTypeTransferOut:
		return -1
	default:
		return 1
	}
}

// SignedQuantity devuelve la cantidad con el signo que aporta al stock.
func (m *StockMovement) SignedQuantity() int64 {
	return Direction(m.MovementType) * m.Quantity
}
