package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	SetStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Category, error)
}

// SupplierRepository puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	SetStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Supplier, error)
}

// LocationRepository puerto de persistencia para Location.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	Update(ctx context.Context, l *entity.Location) error
	SetStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Location, error)

	// LockByIDs bloquea las filas indicadas (SELECT FOR UPDATE) en orden
	// ascendente de id, para que todos los llamadores adquieran los
	// bloqueos en el mismo orden global y no haya deadlocks cruzados.
	LockByIDs(ctx context.Context, ids []int64) ([]*entity.Location, error)
}

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	SetStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Product, error)

	// LockByID bloquea la fila del producto (SELECT FOR UPDATE).
	// Primer bloqueo del orden global en traslados.
	LockByID(ctx context.Context, id int64) (*entity.Product, error)
}
