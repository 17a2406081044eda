package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación de órdenes de venta sobre PostgreSQL
// (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create inserta cabecera y líneas; escribe el id generado en so.ID.
func (r *SalesOrderRepo) Create(ctx context.Context, so *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_order
			(location_id, order_date, customer_name, status, total_amount, created_by, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, now())
		RETURNING so_id, created_at`
	err := r.q.QueryRow(ctx, query,
		so.LocationID, so.OrderDate, so.CustomerName, so.Status, so.TotalAmount, so.CreatedBy,
	).Scan(&so.ID, &so.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}
	for i := range so.Items {
		it := &so.Items[i]
		it.SOID = so.ID
		itemQuery := `
			INSERT INTO sales_order_item
				(so_id, product_id, quantity, unit_price, discount, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(ctx, itemQuery,
			it.SOID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert sales order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id int64) (*entity.SalesOrder, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate igual pero bloquea la cabecera (SELECT FOR UPDATE):
// serializa cancelaciones concurrentes de la misma orden.
func (r *SalesOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.SalesOrder, error) {
	return r.getByID(ctx, id, true)
}

func (r *SalesOrderRepo) getByID(ctx context.Context, id int64, forUpdate bool) (*entity.SalesOrder, error) {
	query := `
		SELECT so_id, location_id, order_date, COALESCE(customer_name, ''),
		       status, total_amount, created_by, created_at
		FROM sales_order WHERE so_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var so entity.SalesOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&so.ID, &so.LocationID, &so.OrderDate, &so.CustomerName,
		&so.Status, &so.TotalAmount, &so.CreatedBy, &so.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	items, err := r.loadItems(ctx, so.ID)
	if err != nil {
		return nil, err
	}
	so.Items = items
	return &so, nil
}

func (r *SalesOrderRepo) loadItems(ctx context.Context, soID int64) ([]entity.SalesOrderItem, error) {
	query := `
		SELECT so_id, product_id, quantity, unit_price, discount, line_total
		FROM sales_order_item WHERE so_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, soID)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()

	var items []entity.SalesOrderItem
	for rows.Next() {
		var it entity.SalesOrderItem
		err := rows.Scan(&it.SOID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Discount, &it.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List devuelve órdenes con sus líneas, más recientes primero.
func (r *SalesOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT so_id, location_id, order_date, COALESCE(customer_name, ''),
		       status, total_amount, created_by, created_at
		FROM sales_order ORDER BY so_id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.SalesOrder
	for rows.Next() {
		var so entity.SalesOrder
		err := rows.Scan(
			&so.ID, &so.LocationID, &so.OrderDate, &so.CustomerName,
			&so.Status, &so.TotalAmount, &so.CreatedBy, &so.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, &so)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, so := range list {
		items, err := r.loadItems(ctx, so.ID)
		if err != nil {
			return nil, err
		}
		so.Items = items
	}
	return list, nil
}

// UpdateStatus cambia el estado de la cabecera.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE sales_order SET status = $2 WHERE so_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}
