package orders

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del motor de órdenes atados a esa tx. Cabecera, líneas y
// movimientos del ledger de una misma acción comparten la unidad atómica:
// una recepción parcial por línea nunca puede dejar el ledger inconsistente
// con la cabecera.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
		poRepo repository.PurchaseOrderRepository,
		soRepo repository.SalesOrderRepository,
	) error) error
}

// Recorder anota contadores de negocio. Puede ser nil.
type Recorder interface {
	ObserveOrder(kind, result string)
	ObserveMovement(movementType string)
	ObserveRejection(reason string)
}
