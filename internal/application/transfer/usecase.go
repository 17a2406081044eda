package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase ejecuta traslados entre ubicaciones: dos asientos correlacionados
// (TRANSFER_OUT y TRANSFER_IN) en una sola unidad atómica.
type UseCase struct {
	txRunner  TxRunner
	ledger    *ledger.Service
	movRepo   repository.StockMovementRepository // lecturas fuera de tx
	levelRepo repository.InventoryLevelRepository
	rec       Recorder // puede ser nil
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	ledgerSvc *ledger.Service,
	movRepo repository.StockMovementRepository,
	levelRepo repository.InventoryLevelRepository,
	rec Recorder,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		ledger:    ledgerSvc,
		movRepo:   movRepo,
		levelRepo: levelRepo,
		rec:       rec,
	}
}

// Transfer mueve quantity unidades de un producto entre dos ubicaciones.
// Las dos piernas comparten transaction_id y quedan correlacionadas por el
// id de la pierna OUT, reservado por adelantado en la secuencia. El orden
// de bloqueo es fijo para evitar interbloqueos entre traslados cruzados:
// primero la fila del producto, luego las ubicaciones por id ascendente.
func (uc *UseCase) Transfer(ctx context.Context, actorID int64, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, fmt.Errorf("%w: origen y destino no pueden ser la misma ubicación (%d)", domain.ErrInvalidInput, in.FromLocationID)
	}

	var resp dto.TransferResponse
	txID := uuid.New().String()

	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
	) error {
		product, err := productRepo.LockByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
		}
		if !product.IsActive() {
			return fmt.Errorf("%w: producto %d", domain.ErrInactiveResource, in.ProductID)
		}

		ids := []int64{in.FromLocationID, in.ToLocationID}
		if ids[0] > ids[1] {
			ids[0], ids[1] = ids[1], ids[0]
		}
		locations, err := locationRepo.LockByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[int64]*entity.Location, len(locations))
		for _, l := range locations {
			byID[l.ID] = l
		}
		for _, field := range []struct {
			name string
			id   int64
		}{
			{"from_location_id", in.FromLocationID},
			{"to_location_id", in.ToLocationID},
		} {
			loc, ok := byID[field.id]
			if !ok {
				return fmt.Errorf("%w: %s %d", domain.ErrNotFound, field.name, field.id)
			}
			if !loc.IsActive() {
				return fmt.Errorf("%w: %s %d", domain.ErrInactiveResource, field.name, field.id)
			}
		}

		// Corte temprano por stock insuficiente antes de reservar id de
		// secuencia; la verificación autoritativa sigue siendo la de la
		// pierna OUT bajo el bloqueo de fila.
		srcLevel, err := levelRepo.Get(ctx, in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		if srcLevel.QuantityOnHand < in.Quantity {
			return fmt.Errorf("%w: producto %d en ubicación %d (disponible %d, solicitado %d)",
				domain.ErrInsufficientStock, in.ProductID, in.FromLocationID, srcLevel.QuantityOnHand, in.Quantity)
		}

		// El id de la pierna OUT correlaciona ambas piernas, así que se
		// reserva antes de insertar cualquiera de las dos.
		transferID, err := movRepo.NextID(ctx)
		if err != nil {
			return err
		}

		out, err := uc.ledger.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
			MovementID:     transferID,
			ProductID:      in.ProductID,
			LocationID:     in.FromLocationID,
			Quantity:       in.Quantity,
			MovementType:   entity.MovementTypeTransferOut,
			RelatedDocType: entity.DocumentTypeTransfer,
			RelatedDocID:   transferID,
			TransactionID:  txID,
			ActorID:        actorID,
		})
		if err != nil {
			return err
		}
		inMov, err := uc.ledger.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
			ProductID:      in.ProductID,
			LocationID:     in.ToLocationID,
			Quantity:       in.Quantity,
			MovementType:   entity.MovementTypeTransferIn,
			RelatedDocType: entity.DocumentTypeTransfer,
			RelatedDocID:   transferID,
			TransactionID:  txID,
			ActorID:        actorID,
		})
		if err != nil {
			return err
		}

		fromLevel, err := levelRepo.Get(ctx, in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		toLevel, err := levelRepo.Get(ctx, in.ProductID, in.ToLocationID)
		if err != nil {
			return err
		}
		resp = dto.TransferResponse{
			OutMovementID: out.ID,
			InMovementID:  inMov.ID,
			FromQuantity:  fromLevel.QuantityOnHand,
			ToQuantity:    toLevel.QuantityOnHand,
		}
		return nil
	})
	if err != nil {
		if uc.rec != nil && errors.Is(err, domain.ErrInsufficientStock) {
			uc.rec.ObserveRejection("insufficient_stock")
		}
		return nil, err
	}
	if uc.rec != nil {
		uc.rec.ObserveTransfer()
		uc.rec.ObserveMovement(entity.MovementTypeTransferOut)
		uc.rec.ObserveMovement(entity.MovementTypeTransferIn)
	}
	return &resp, nil
}

// List devuelve traslados recientes, más nuevos primero. Las cantidades
// resultantes de cada pierna se reconstruyen desalojando del nivel actual
// los movimientos posteriores a la pierna.
func (uc *UseCase) List(ctx context.Context, limit int) ([]dto.TransferRecord, error) {
	pairs, err := uc.movRepo.ListTransferPairs(ctx, limit)
	if err != nil {
		return nil, err
	}
	records := make([]dto.TransferRecord, 0, len(pairs))
	for _, p := range pairs {
		fromAfter, err := uc.quantityAfter(ctx, &p.Out)
		if err != nil {
			return nil, err
		}
		toAfter, err := uc.quantityAfter(ctx, &p.In)
		if err != nil {
			return nil, err
		}
		records = append(records, dto.TransferRecord{
			TransferID:     p.Out.ID,
			ProductID:      p.Out.ProductID,
			FromLocationID: p.Out.LocationID,
			ToLocationID:   p.In.LocationID,
			Quantity:       p.Out.Quantity,
			FromQtyAfter:   fromAfter,
			ToQtyAfter:     toAfter,
			CreatedBy:      p.Out.CreatedBy,
			MovementDate:   p.Out.MovementDate,
		})
	}
	return records, nil
}

// quantityAfter reconstruye el nivel de la clave (producto, ubicación) tal
// como quedó inmediatamente después del movimiento dado.
func (uc *UseCase) quantityAfter(ctx context.Context, mov *entity.StockMovement) (int64, error) {
	level, err := uc.levelRepo.Get(ctx, mov.ProductID, mov.LocationID)
	if err != nil {
		return 0, err
	}
	later, err := uc.movRepo.ListForKeyAfterID(ctx, mov.ProductID, mov.LocationID, mov.ID)
	if err != nil {
		return 0, err
	}
	qty := level.QuantityOnHand
	for _, m := range later {
		qty -= m.SignedQuantity()
	}
	return qty, nil
}
