package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransferPair agrupa las dos piernas (OUT/IN) de un traslado, unidas por el
// id correlacionador (RelatedDocID).
type TransferPair struct {
	Out entity.StockMovement
	In  entity.StockMovement
}

// StockMovementRepository define el puerto de persistencia del ledger.
// Solo inserción y lectura: las entradas nunca se actualizan ni se borran.
type StockMovementRepository interface {
	// Create inserta el movimiento. Si m.ID es 0 el id lo asigna la secuencia
	// y se escribe de vuelta en m.ID.
	Create(ctx context.Context, m *entity.StockMovement) error

	// NextID reserva el siguiente id de la secuencia sin insertar.
	// Usado por traslados para fijar el id correlacionador antes de escribir.
	NextID(ctx context.Context) (int64, error)

	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)

	// ListForKeyAfter devuelve los movimientos de (producto, ubicación)
	// estrictamente posteriores a t, del más nuevo al más viejo.
	ListForKeyAfter(ctx context.Context, productID, locationID int64, t time.Time) ([]*entity.StockMovement, error)

	// ListForKeyAfterID igual pero por id de movimiento (posteriores a afterID).
	ListForKeyAfterID(ctx context.Context, productID, locationID, afterID int64) ([]*entity.StockMovement, error)

	// SumForKey devuelve la suma con signo de todos los movimientos de la
	// pareja: la fuente de verdad para reconstruir la proyección.
	SumForKey(ctx context.Context, productID, locationID int64) (int64, error)

	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(ctx context.Context, locationID int64, limit, offset int) ([]*entity.StockMovement, error)

	// ListTransferPairs devuelve los traslados más recientes primero,
	// reconstruidos uniendo TRANSFER_OUT con su TRANSFER_IN.
	ListTransferPairs(ctx context.Context, limit int) ([]TransferPair, error)
}
