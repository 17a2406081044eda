package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta. CLOSED y CANCELLED son terminales;
// solo CONFIRMED puede pasar a CANCELLED.
const (
	SOStatusDraft            = "DRAFT"
	SOStatusConfirmed        = "CONFIRMED"
	SOStatusPartiallyShipped = "PARTIALLY_SHIPPED"
	SOStatusClosed           = "CLOSED"
	SOStatusCancelled        = "CANCELLED"
)

// SalesOrder cabecera de orden de venta (salida de mercancía).
// Se crea DRAFT y se confirma sincrónicamente dentro de la misma petición;
// si la confirmación falla no queda orden persistida.
type SalesOrder struct {
	ID           int64
	LocationID   int64
	OrderDate    time.Time
	CustomerName string
	Status       string
	TotalAmount  decimal.Decimal
	CreatedBy    int64
	CreatedAt    time.Time
	Items        []SalesOrderItem
}

// SalesOrderItem línea de orden de venta, única por (so, producto).
type SalesOrderItem struct {
	SOID      int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // porcentaje 0..100
	LineTotal decimal.Decimal
}

// ComputeLineTotal calcula unit_price * quantity * (1 - discount/100)
// en aritmética decimal para evitar deriva de redondeo.
func ComputeLineTotal(unitPrice decimal.Decimal, quantity int64, discount decimal.Decimal) decimal.Decimal {
	qty := decimal.NewFromInt(quantity)
	factor := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
	return unitPrice.Mul(qty).Mul(factor)
}
