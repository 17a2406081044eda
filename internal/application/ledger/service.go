package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Service implementa el contrato del ledger: append de movimientos con la
// proyección actualizada en la misma unidad atómica, lectura O(1) de la
// cantidad actual y reconstrucción histórica O(movimientos).
type Service struct {
	txRunner     TxRunner
	movRepo      repository.StockMovementRepository   // lecturas fuera de tx
	levelRepo    repository.InventoryLevelRepository  // lecturas fuera de tx
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	rec          Recorder // puede ser nil
}

// NewService construye el servicio del ledger.
func NewService(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	levelRepo repository.InventoryLevelRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	rec Recorder,
) *Service {
	return &Service{
		txRunner:     txRunner,
		movRepo:      movRepo,
		levelRepo:    levelRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		rec:          rec,
	}
}

// AppendInput entrada para anotar un movimiento en el ledger.
// MovementID en 0 deja que la secuencia asigne el id; los traslados lo
// prealocan para usarlo como id correlacionador.
type AppendInput struct {
	MovementID     int64
	ProductID      int64
	LocationID     int64
	Quantity       int64 // siempre > 0; el signo lo determina MovementType
	MovementType   string
	RelatedDocType string
	RelatedDocID   int64
	TransactionID  string
	MovementDate   time.Time
	ActorID        int64
}

// AppendInTx anota un movimiento usando repositorios atados a la tx del
// caller: bloquea la fila de la proyección (SELECT FOR UPDATE), aplica el
// delta con signo y rechaza la operación completa si el resultado fuera
// negativo. La existencia de producto y ubicación la valida el caller antes
// de la unidad atómica; las FK respaldan el invariante dentro de ella.
func (s *Service) AppendInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	levelRepo repository.InventoryLevelRepository,
	in AppendInput,
) (*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementType(in.MovementType) {
		return nil, fmt.Errorf("%w: movement_type %q", domain.ErrInvalidInput, in.MovementType)
	}

	// Punto de serialización: la fila (producto, ubicación) queda bloqueada
	// hasta el commit o rollback de la unidad atómica.
	level, err := levelRepo.GetForUpdate(ctx, in.ProductID, in.LocationID)
	if err != nil {
		return nil, err
	}

	newQty := level.QuantityOnHand + entity.Direction(in.MovementType)*in.Quantity
	if newQty < 0 {
		return nil, fmt.Errorf("%w: producto %d en ubicación %d (disponible %d, solicitado %d)",
			domain.ErrInsufficientStock, in.ProductID, in.LocationID, level.QuantityOnHand, in.Quantity)
	}

	now := time.Now()
	movementDate := in.MovementDate
	if movementDate.IsZero() {
		movementDate = now
	}

	level.QuantityOnHand = newQty
	level.LastUpdated = now
	if err := levelRepo.Upsert(ctx, level); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             in.MovementID,
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		Quantity:       in.Quantity,
		MovementType:   in.MovementType,
		RelatedDocType: in.RelatedDocType,
		RelatedDocID:   in.RelatedDocID,
		TransactionID:  in.TransactionID,
		MovementDate:   movementDate,
		CreatedBy:      in.ActorID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterAdjustment anota un ajuste positivo de inventario en su propia
// unidad atómica. Valida existencia y estado del producto y la ubicación
// antes de abrir la transacción.
func (s *Service) RegisterAdjustment(ctx context.Context, actorID, productID, locationID, quantity int64) (*entity.StockMovement, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	if !product.IsActive() {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrInactiveResource, productID)
	}
	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, locationID)
	}
	if !location.IsActive() {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrInactiveResource, locationID)
	}

	var mov *entity.StockMovement
	err = s.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		var appendErr error
		mov, appendErr = s.AppendInTx(ctx, movRepo, levelRepo, AppendInput{
			ProductID:     productID,
			LocationID:    locationID,
			Quantity:      quantity,
			MovementType:  entity.MovementTypeAdjustment,
			TransactionID: uuid.New().String(),
			ActorID:       actorID,
		})
		return appendErr
	})
	if err != nil {
		return nil, err
	}
	if s.rec != nil {
		s.rec.ObserveMovement(entity.MovementTypeAdjustment)
	}
	return mov, nil
}

// CurrentQuantity devuelve la cantidad actual directamente de la proyección
// (lectura O(1); nunca se recalcula del ledger en el camino caliente).
func (s *Service) CurrentQuantity(ctx context.Context, productID, locationID int64) (int64, error) {
	level, err := s.levelRepo.Get(ctx, productID, locationID)
	if err != nil {
		return 0, err
	}
	return level.QuantityOnHand, nil
}

// QuantityAsOf reconstruye la cantidad en un instante pasado: parte del
// valor actual de la proyección y deshace, del más nuevo al más viejo, los
// deltas de cada movimiento estrictamente posterior a t.
func (s *Service) QuantityAsOf(ctx context.Context, productID, locationID int64, t time.Time) (int64, error) {
	level, err := s.levelRepo.Get(ctx, productID, locationID)
	if err != nil {
		return 0, err
	}
	movements, err := s.movRepo.ListForKeyAfter(ctx, productID, locationID, t)
	if err != nil {
		return 0, err
	}
	qty := level.QuantityOnHand
	for _, m := range movements {
		qty -= m.SignedQuantity()
	}
	return qty, nil
}

// RebuildLevel recalcula la proyección de una pareja desde el ledger
// completo, dentro de una unidad atómica. Camino de recuperación: el ledger
// retiene todo lo necesario para reconstruir InventoryLevel por replay.
func (s *Service) RebuildLevel(ctx context.Context, productID, locationID int64) (*entity.InventoryLevel, error) {
	var rebuilt *entity.InventoryLevel
	err := s.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		level, err := levelRepo.GetForUpdate(ctx, productID, locationID)
		if err != nil {
			return err
		}
		sum, err := movRepo.SumForKey(ctx, productID, locationID)
		if err != nil {
			return err
		}
		level.QuantityOnHand = sum
		level.LastUpdated = time.Now()
		if err := levelRepo.Upsert(ctx, level); err != nil {
			return err
		}
		rebuilt = level
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}

// GetLevel devuelve la fila de la proyección (base 0 si no existe).
func (s *Service) GetLevel(ctx context.Context, productID, locationID int64) (*entity.InventoryLevel, error) {
	return s.levelRepo.Get(ctx, productID, locationID)
}

// ListLevelsByLocation lista la proyección de una ubicación.
func (s *Service) ListLevelsByLocation(ctx context.Context, locationID int64, limit, offset int) ([]*entity.InventoryLevel, error) {
	return s.levelRepo.ListByLocation(ctx, locationID, limit, offset)
}

// ListMovementsByProduct historial del ledger para un producto (desc).
func (s *Service) ListMovementsByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return s.movRepo.ListByProduct(ctx, productID, limit, offset)
}

// ListMovementsByLocation historial del ledger para una ubicación (desc).
func (s *Service) ListMovementsByLocation(ctx context.Context, locationID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return s.movRepo.ListByLocation(ctx, locationID, limit, offset)
}
