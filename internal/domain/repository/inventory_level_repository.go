package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryLevelRepository define el puerto de la proyección de stock.
// GetForUpdate es el punto de serialización: toda unidad atómica que
// modifica la pareja (producto, ubicación) debe bloquear su fila primero.
type InventoryLevelRepository interface {
	// Get devuelve la fila o una fila base en 0 si aún no existe.
	Get(ctx context.Context, productID, locationID int64) (*entity.InventoryLevel, error)

	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	// Una fila inexistente se materializa en 0 antes de bloquear, para que
	// el punto de serialización exista desde la primera escritura.
	GetForUpdate(ctx context.Context, productID, locationID int64) (*entity.InventoryLevel, error)

	Upsert(ctx context.Context, level *entity.InventoryLevel) error

	ListByLocation(ctx context.Context, locationID int64, limit, offset int) ([]*entity.InventoryLevel, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.InventoryLevel, error)
}
