package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad atómica del ledger: o se
// confirma todo (movimientos + proyección) o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error) error
}

// Recorder anota contadores de negocio. Puede ser nil.
type Recorder interface {
	ObserveMovement(movementType string)
}
