package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	// Create inserta cabecera y líneas; escribe el id generado en po.ID.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas, o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate igual pero bloquea la cabecera (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateItemReceived(ctx context.Context, poID, productID, receivedQty int64) error
}

// SalesOrderRepository define el puerto de persistencia de órdenes de venta.
type SalesOrderRepository interface {
	Create(ctx context.Context, so *entity.SalesOrder) error
	GetByID(ctx context.Context, id int64) (*entity.SalesOrder, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.SalesOrder, error)
	List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
