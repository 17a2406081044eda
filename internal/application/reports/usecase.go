package reports

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ventana y tope por defecto del reporte de más vendidos.
const (
	defaultTopSellingDays  = 30
	defaultTopSellingLimit = 10
)

// UseCase reportes de solo lectura sobre la proyección y el ledger.
type UseCase struct {
	repo repository.ReportRepository
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(repo repository.ReportRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Overview agregados para las tarjetas del dashboard.
func (uc *UseCase) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	row, err := uc.repo.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.OverviewResponse{
		TotalProducts:   row.TotalProducts,
		TotalStockValue: row.TotalStockValue,
		LowStockCount:   row.LowStockCount,
	}, nil
}

// LowStock productos activos cuyo stock total está en o bajo su nivel de
// reorden.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	rows, err := uc.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LowStockItem{
			ProductID:      r.ProductID,
			SKU:            r.SKU,
			ProductName:    r.ProductName,
			ReorderLevel:   r.ReorderLevel,
			QuantityOnHand: r.QuantityOnHand,
		})
	}
	return items, nil
}

// StockPerLocation stock y valor por (producto, ubicación); locationID 0
// significa todas las ubicaciones.
func (uc *UseCase) StockPerLocation(ctx context.Context, locationID int64) ([]dto.StockPerLocationItem, error) {
	rows, err := uc.repo.StockPerLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockPerLocationItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockPerLocationItem{
			ProductID:      r.ProductID,
			SKU:            r.SKU,
			ProductName:    r.ProductName,
			LocationID:     r.LocationID,
			LocationName:   r.LocationName,
			QuantityOnHand: r.QuantityOnHand,
			UnitPrice:      r.UnitPrice,
			StockValue:     r.StockValue,
		})
	}
	return items, nil
}

// TopSelling productos con más unidades vendidas en la ventana. Valores
// fuera de rango caen a los defaults.
func (uc *UseCase) TopSelling(ctx context.Context, days, limit int) ([]dto.TopSellingItem, error) {
	if days <= 0 {
		days = defaultTopSellingDays
	}
	if limit <= 0 || limit > 100 {
		limit = defaultTopSellingLimit
	}
	rows, err := uc.repo.TopSelling(ctx, days, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TopSellingItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TopSellingItem{
			ProductID:   r.ProductID,
			SKU:         r.SKU,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
		})
	}
	return items, nil
}
