package transfer

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner abre una transacción y entrega repositorios ligados a ella.
// Commit si fn devuelve nil, rollback en caso contrario.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error) error
}

// Recorder anota contadores de negocio. Puede ser nil.
type Recorder interface {
	ObserveTransfer()
	ObserveMovement(movementType string)
	ObserveRejection(reason string)
}
