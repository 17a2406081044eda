package dto

import "github.com/shopspring/decimal"

// OverviewResponse tarjetas del dashboard.
type OverviewResponse struct {
	TotalProducts   int64           `json:"total_products"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	LowStockCount   int64           `json:"low_stock_count"`
}

// LowStockItem producto por debajo de su nivel de reorden.
type LowStockItem struct {
	ProductID      int64  `json:"product_id"`
	SKU            string `json:"sku"`
	ProductName    string `json:"product_name"`
	ReorderLevel   int64  `json:"reorder_level"`
	QuantityOnHand int64  `json:"quantity_on_hand"`
}

// StockPerLocationItem stock y valor por (producto, ubicación).
type StockPerLocationItem struct {
	ProductID      int64           `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	LocationID     int64           `json:"location_id"`
	LocationName   string          `json:"location_name"`
	QuantityOnHand int64           `json:"quantity_on_hand"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	StockValue     decimal.Decimal `json:"stock_value"`
}

// TopSellingItem unidades vendidas por producto (ventana de 30 días).
type TopSellingItem struct {
	ProductID   int64  `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	UnitsSold   int64  `json:"units_sold"`
}
