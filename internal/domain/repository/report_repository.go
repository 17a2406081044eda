package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// OverviewRow agregados para las tarjetas del dashboard.
type OverviewRow struct {
	TotalProducts   int64
	TotalStockValue decimal.Decimal
	LowStockCount   int64
}

// LowStockRow producto por debajo de su nivel de reorden.
type LowStockRow struct {
	ProductID      int64
	SKU            string
	ProductName    string
	ReorderLevel   int64
	QuantityOnHand int64
}

// StockPerLocationRow stock y valor por (producto, ubicación).
type StockPerLocationRow struct {
	ProductID      int64
	SKU            string
	ProductName    string
	LocationID     int64
	LocationName   string
	QuantityOnHand int64
	UnitPrice      decimal.Decimal
	StockValue     decimal.Decimal
}

// TopSellingRow unidades vendidas por producto en una ventana de días.
type TopSellingRow struct {
	ProductID   int64
	SKU         string
	ProductName string
	UnitsSold   int64
}

// ReportRepository puerto de solo lectura sobre la proyección y el ledger.
// Nunca escribe; los reportes no participan en unidades atómicas.
type ReportRepository interface {
	Overview(ctx context.Context) (*OverviewRow, error)
	LowStock(ctx context.Context) ([]LowStockRow, error)
	// StockPerLocation filtra por ubicación si locationID > 0.
	StockPerLocation(ctx context.Context, locationID int64) ([]StockPerLocationRow, error)
	TopSelling(ctx context.Context, days, limit int) ([]TopSellingRow, error)
}
