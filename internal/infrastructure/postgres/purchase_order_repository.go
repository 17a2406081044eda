package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL
// (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta cabecera y líneas; escribe el id generado en po.ID.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_order
			(supplier_id, location_id, order_date, expected_date, status,
			 total_amount, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING po_id, created_at`
	err := r.q.QueryRow(ctx, query,
		po.SupplierID, po.LocationID, po.OrderDate, po.ExpectedDate,
		po.Status, po.TotalAmount, po.CreatedBy,
	).Scan(&po.ID, &po.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range po.Items {
		it := &po.Items[i]
		it.POID = po.ID
		itemQuery := `
			INSERT INTO purchase_order_item
				(po_id, product_id, ordered_qty, received_qty, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(ctx, itemQuery,
			it.POID, it.ProductID, it.OrderedQty, it.ReceivedQty, it.UnitPrice, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate igual pero bloquea la cabecera (SELECT FOR UPDATE):
// serializa recepciones concurrentes de la misma orden.
func (r *PurchaseOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.getByID(ctx, id, true)
}

func (r *PurchaseOrderRepo) getByID(ctx context.Context, id int64, forUpdate bool) (*entity.PurchaseOrder, error) {
	query := `
		SELECT po_id, supplier_id, location_id, order_date, expected_date,
		       status, total_amount, created_by, created_at
		FROM purchase_order WHERE po_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.SupplierID, &po.LocationID, &po.OrderDate, &po.ExpectedDate,
		&po.Status, &po.TotalAmount, &po.CreatedBy, &po.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.loadItems(ctx, po.ID)
	if err != nil {
		return nil, err
	}
	po.Items = items
	return &po, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, poID int64) ([]entity.PurchaseOrderItem, error) {
	query := `
		SELECT po_id, product_id, ordered_qty, received_qty, unit_price, line_total
		FROM purchase_order_item WHERE po_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, poID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		err := rows.Scan(&it.POID, &it.ProductID, &it.OrderedQty, &it.ReceivedQty, &it.UnitPrice, &it.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List devuelve órdenes con sus líneas, más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT po_id, supplier_id, location_id, order_date, expected_date,
		       status, total_amount, created_by, created_at
		FROM purchase_order ORDER BY po_id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		err := rows.Scan(
			&po.ID, &po.SupplierID, &po.LocationID, &po.OrderDate, &po.ExpectedDate,
			&po.Status, &po.TotalAmount, &po.CreatedBy, &po.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range list {
		items, err := r.loadItems(ctx, po.ID)
		if err != nil {
			return nil, err
		}
		po.Items = items
	}
	return list, nil
}

// UpdateStatus cambia el estado de la cabecera.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE purchase_order SET status = $2 WHERE po_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// UpdateItemReceived fija la cantidad recibida de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, poID, productID, receivedQty int64) error {
	query := `
		UPDATE purchase_order_item SET received_qty = $3
		WHERE po_id = $1 AND product_id = $2`
	_, err := r.q.Exec(ctx, query, poID, productID, receivedQty)
	if err != nil {
		return fmt.Errorf("update purchase order item: %w", err)
	}
	return nil
}
