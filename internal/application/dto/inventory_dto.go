package dto

import "time"

// AdjustmentRequest body para POST /api/inventory/adjustments.
// Los ajustes son siempre entradas positivas: las salidas las generan
// las órdenes de venta y los traslados.
type AdjustmentRequest struct {
	ProductID  int64 `json:"product_id"`
	LocationID int64 `json:"location_id"`
	Quantity   int64 `json:"quantity"` // > 0
}

// InventoryLevelResponse proyección de stock por (producto, ubicación).
type InventoryLevelResponse struct {
	ProductID      int64     `json:"product_id"`
	LocationID     int64     `json:"location_id"`
	QuantityOnHand int64     `json:"quantity_on_hand"`
	LastUpdated    time.Time `json:"last_updated"`
}

// MovementResponse entrada del ledger en respuestas de historial.
type MovementResponse struct {
	ID             int64     `json:"movement_id"`
	ProductID      int64     `json:"product_id"`
	LocationID     int64     `json:"location_id"`
	Quantity       int64     `json:"quantity"`
	MovementType   string    `json:"movement_type"`
	RelatedDocType string    `json:"related_document_type,omitempty"`
	RelatedDocID   int64     `json:"related_document_id,omitempty"`
	TransactionID  string    `json:"transaction_id"`
	MovementDate   time.Time `json:"movement_date"`
	CreatedBy      int64     `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransferRequest body para POST /api/transfers.
type TransferRequest struct {
	ProductID      int64 `json:"product_id"`
	FromLocationID int64 `json:"from_location_id"`
	ToLocationID   int64 `json:"to_location_id"`
	Quantity       int64 `json:"quantity"`
}

// TransferResponse resultado de un traslado: ids de ambas piernas y
// cantidades resultantes en origen y destino.
type TransferResponse struct {
	OutMovementID int64 `json:"out_movement_id"`
	InMovementID  int64 `json:"in_movement_id"`
	FromQuantity  int64 `json:"from_quantity"`
	ToQuantity    int64 `json:"to_quantity"`
}

// TransferRecord fila del listado de traslados (más recientes primero).
type TransferRecord struct {
	TransferID     int64     `json:"transfer_id"` // id correlacionador (pierna OUT)
	ProductID      int64     `json:"product_id"`
	FromLocationID int64     `json:"from_location_id"`
	ToLocationID   int64     `json:"to_location_id"`
	Quantity       int64     `json:"quantity"`
	FromQtyAfter   int64     `json:"from_qty_after"` // histórico, reconstruido
	ToQtyAfter     int64     `json:"to_qty_after"`
	CreatedBy      int64     `json:"created_by"`
	MovementDate   time.Time `json:"movement_date"`
}
