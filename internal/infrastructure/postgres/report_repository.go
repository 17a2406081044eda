package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reporte de solo lectura sobre la proyección y el
// ledger. Corre siempre sobre el pool, nunca dentro de una transacción.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Overview agregados para las tarjetas del dashboard.
func (r *ReportRepo) Overview(ctx context.Context) (*repository.OverviewRow, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM product WHERE status = 'ACTIVE'),
			(SELECT COALESCE(SUM(il.quantity_on_hand * p.unit_price), 0)
			 FROM inventory_level il
			 JOIN product p ON p.product_id = il.product_id),
			(SELECT COUNT(*) FROM product p
			 WHERE p.status = 'ACTIVE'
			 AND p.reorder_level >= (
				SELECT COALESCE(SUM(il.quantity_on_hand), 0)
				FROM inventory_level il WHERE il.product_id = p.product_id))`
	var row repository.OverviewRow
	err := r.q.QueryRow(ctx, query).Scan(&row.TotalProducts, &row.TotalStockValue, &row.LowStockCount)
	if err != nil {
		return nil, fmt.Errorf("overview report: %w", err)
	}
	return &row, nil
}

// LowStock productos activos cuyo stock total está en o bajo su nivel de reorden.
func (r *ReportRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.product_id, p.sku, p.name, p.reorder_level,
		       COALESCE(SUM(il.quantity_on_hand), 0) AS on_hand
		FROM product p
		LEFT JOIN inventory_level il ON il.product_id = p.product_id
		WHERE p.status = 'ACTIVE'
		GROUP BY p.product_id, p.sku, p.name, p.reorder_level
		HAVING COALESCE(SUM(il.quantity_on_hand), 0) <= p.reorder_level
		ORDER BY on_hand, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock report: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.ReorderLevel, &row.QuantityOnHand)
		if err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// StockPerLocation stock y valor por (producto, ubicación); locationID 0 = todas.
func (r *ReportRepo) StockPerLocation(ctx context.Context, locationID int64) ([]repository.StockPerLocationRow, error) {
	query := `
		SELECT p.product_id, p.sku, p.name, l.location_id, l.name,
		       il.quantity_on_hand, p.unit_price,
		       il.quantity_on_hand * p.unit_price AS stock_value
		FROM inventory_level il
		JOIN product p ON p.product_id = il.product_id
		JOIN location l ON l.location_id = il.location_id
		WHERE ($1 = 0 OR il.location_id = $1)
		ORDER BY l.name, p.name`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("stock per location report: %w", err)
	}
	defer rows.Close()

	var list []repository.StockPerLocationRow
	for rows.Next() {
		var row repository.StockPerLocationRow
		err := rows.Scan(
			&row.ProductID, &row.SKU, &row.ProductName,
			&row.LocationID, &row.LocationName,
			&row.QuantityOnHand, &row.UnitPrice, &row.StockValue,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stock per location row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// TopSelling productos con más unidades SALES_ISSUE en la ventana de días.
func (r *ReportRepo) TopSelling(ctx context.Context, days, limit int) ([]repository.TopSellingRow, error) {
	query := `
		SELECT p.product_id, p.sku, p.name, SUM(sm.quantity) AS units_sold
		FROM stock_movement sm
		JOIN product p ON p.product_id = sm.product_id
		WHERE sm.movement_type = 'SALES_ISSUE'
		AND sm.movement_date > now() - make_interval(days => $1)
		GROUP BY p.product_id, p.sku, p.name
		ORDER BY units_sold DESC, p.name
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, days, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling report: %w", err)
	}
	defer rows.Close()

	var list []repository.TopSellingRow
	for rows.Next() {
		var row repository.TopSellingRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan top selling row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
