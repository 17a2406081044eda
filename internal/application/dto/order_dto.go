package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderItemInput línea de entrada para crear una orden de venta.
// UnitPrice omitido = precio de lista del producto; Discount omitido = 0.
type SalesOrderItemInput struct {
	ProductID int64            `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Discount  *decimal.Decimal `json:"discount,omitempty"` // porcentaje 0..100
}

// CreateSalesOrderRequest body para POST /api/sales-orders.
// La orden se crea y se confirma (descuenta stock) en la misma petición.
type CreateSalesOrderRequest struct {
	LocationID   int64                 `json:"location_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	OrderDate    string                `json:"order_date,omitempty"` // YYYY-MM-DD, por defecto hoy
	Items        []SalesOrderItemInput `json:"items"`
}

// SalesOrderItemResponse línea de la orden de venta en respuestas.
type SalesOrderItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SalesOrderResponse cabecera + líneas.
type SalesOrderResponse struct {
	ID           int64                    `json:"so_id"`
	LocationID   int64                    `json:"location_id"`
	OrderDate    string                   `json:"order_date"`
	CustomerName string                   `json:"customer_name,omitempty"`
	Status       string                   `json:"status"`
	TotalAmount  decimal.Decimal          `json:"total_amount"`
	CreatedBy    int64                    `json:"created_by"`
	CreatedAt    time.Time                `json:"created_at"`
	Items        []SalesOrderItemResponse `json:"items"`
}

// PurchaseOrderItemInput línea de entrada para crear una orden de compra.
type PurchaseOrderItemInput struct {
	ProductID  int64            `json:"product_id"`
	OrderedQty int64            `json:"ordered_qty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID   int64                    `json:"supplier_id"`
	LocationID   int64                    `json:"location_id"`
	OrderDate    string                   `json:"order_date,omitempty"`    // YYYY-MM-DD
	ExpectedDate string                   `json:"expected_date,omitempty"` // YYYY-MM-DD
	Items        []PurchaseOrderItemInput `json:"items"`
}

// PurchaseOrderItemResponse línea de la orden de compra en respuestas.
type PurchaseOrderItemResponse struct {
	ProductID   int64           `json:"product_id"`
	OrderedQty  int64           `json:"ordered_qty"`
	ReceivedQty int64           `json:"received_qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse cabecera + líneas.
type PurchaseOrderResponse struct {
	ID           int64                       `json:"po_id"`
	SupplierID   int64                       `json:"supplier_id"`
	LocationID   int64                       `json:"location_id"`
	OrderDate    string                      `json:"order_date"`
	ExpectedDate string                      `json:"expected_date,omitempty"`
	Status       string                      `json:"status"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	CreatedBy    int64                       `json:"created_by"`
	CreatedAt    time.Time                   `json:"created_at"`
	Items        []PurchaseOrderItemResponse `json:"items"`
}
