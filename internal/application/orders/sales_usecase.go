package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// SalesUseCase maneja el ciclo de vida de órdenes de venta: creación con
// confirmación fusionada (descuento de stock) y cancelación compensada.
type SalesUseCase struct {
	txRunner     TxRunner
	ledger       *ledger.Service
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	soRepo       repository.SalesOrderRepository // lecturas fuera de tx
	rec          Recorder                        // puede ser nil
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(
	txRunner TxRunner,
	ledgerSvc *ledger.Service,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	soRepo repository.SalesOrderRepository,
	rec Recorder,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:     txRunner,
		ledger:       ledgerSvc,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		soRepo:       soRepo,
		rec:          rec,
	}
}

// CreateAndConfirm crea la orden de venta y la confirma en la misma unidad
// atómica: cabecera, líneas y un SALES_ISSUE por línea. Si alguna línea no
// tiene stock suficiente no queda nada persistido. La confirmación viene
// fusionada a la creación porque el descuento parcial entre líneas debe ser
// todo-o-nada con el estado de la cabecera.
func (uc *SalesUseCase) CreateAndConfirm(ctx context.Context, actorID int64, in dto.CreateSalesOrderRequest) (*entity.SalesOrder, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden debe tener al menos una línea", domain.ErrInvalidInput)
	}

	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, in.LocationID)
	}
	if !location.IsActive() {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrInactiveResource, in.LocationID)
	}

	orderDate, err := parseDateOrToday(in.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("%w: order_date %q", domain.ErrInvalidInput, in.OrderDate)
	}

	// Resolver productos y calcular totales por línea antes de abrir la tx.
	// unit_price omitido = precio de lista; discount omitido = 0.
	items := make([]entity.SalesOrderItem, 0, len(in.Items))
	total := decimal.Zero
	seen := make(map[int64]bool, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity debe ser > 0 (producto %d)", domain.ErrInvalidInput, it.ProductID)
		}
		if seen[it.ProductID] {
			return nil, fmt.Errorf("%w: producto %d repetido en la orden", domain.ErrInvalidInput, it.ProductID)
		}
		seen[it.ProductID] = true

		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, it.ProductID)
		}

		unitPrice := product.UnitPrice
		if it.UnitPrice != nil {
			unitPrice = *it.UnitPrice
		}
		if unitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit_price negativo (producto %d)", domain.ErrInvalidInput, it.ProductID)
		}
		discount := decimal.Zero
		if it.Discount != nil {
			discount = *it.Discount
		}
		if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: discount fuera de 0..100 (producto %d)", domain.ErrInvalidInput, it.ProductID)
		}

		lineTotal := entity.ComputeLineTotal(unitPrice, it.Quantity, discount)
		total = total.Add(lineTotal)
		items = append(items, entity.SalesOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: unitPrice,
			Discount:  discount,
			LineTotal: lineTotal,
		})
	}

	so := &entity.SalesOrder{
		LocationID:   in.LocationID,
		OrderDate:    orderDate,
		CustomerName: in.CustomerName,
		Status:       entity.SOStatusDraft,
		TotalAmount:  total,
		CreatedBy:    actorID,
		Items:        items,
	}
	txID := uuid.New().String()

	err = uc.txRunner.RunOrders(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
		_ repository.PurchaseOrderRepository,
		soRepo repository.SalesOrderRepository,
	) error {
		if err := soRepo.Create(ctx, so); err != nil {
			return err
		}
		// Un SALES_ISSUE por línea en la ubicación de la orden. Stock
		// insuficiente en cualquiera de ellas revierte la unidad completa.
		for i := range so.Items {
			it := &so.Items[i]
			if _, err := uc.ledger.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
				ProductID:      it.ProductID,
				LocationID:     so.LocationID,
				Quantity:       it.Quantity,
				MovementType:   entity.MovementTypeSalesIssue,
				RelatedDocType: entity.DocumentTypeSalesOrder,
				RelatedDocID:   so.ID,
				TransactionID:  txID,
				ActorID:        actorID,
			}); err != nil {
				return err
			}
		}
		if err := soRepo.UpdateStatus(ctx, so.ID, entity.SOStatusConfirmed); err != nil {
			return err
		}
		so.Status = entity.SOStatusConfirmed
		return nil
	})
	if err != nil {
		if uc.rec != nil {
			uc.rec.ObserveOrder("sales", "rejected")
			if errors.Is(err, domain.ErrInsufficientStock) {
				uc.rec.ObserveRejection("insufficient_stock")
			}
		}
		return nil, err
	}
	if uc.rec != nil {
		uc.rec.ObserveOrder("sales", "ok")
		for range so.Items {
			uc.rec.ObserveMovement(entity.MovementTypeSalesIssue)
		}
	}
	return so, nil
}

// Cancel transiciona CONFIRMED -> CANCELLED y compensa el ledger: un
// ADJUSTMENT positivo por línea que restituye lo descontado al confirmar,
// en la misma unidad atómica que el cambio de estado.
func (uc *SalesUseCase) Cancel(ctx context.Context, actorID, soID int64) (*entity.SalesOrder, error) {
	var so *entity.SalesOrder
	txID := uuid.New().String()

	err := uc.txRunner.RunOrders(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
		_ repository.PurchaseOrderRepository,
		soRepo repository.SalesOrderRepository,
	) error {
		var err error
		so, err = soRepo.GetByIDForUpdate(ctx, soID)
		if err != nil {
			return err
		}
		if so == nil {
			return fmt.Errorf("%w: orden de venta %d", domain.ErrNotFound, soID)
		}
		if so.Status != entity.SOStatusConfirmed {
			return fmt.Errorf("%w: la orden %d está %s", domain.ErrInvalidTransition, soID, so.Status)
		}
		for i := range so.Items {
			it := &so.Items[i]
			if _, err := uc.ledger.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
				ProductID:      it.ProductID,
				LocationID:     so.LocationID,
				Quantity:       it.Quantity,
				MovementType:   entity.MovementTypeAdjustment,
				RelatedDocType: entity.DocumentTypeSalesOrder,
				RelatedDocID:   so.ID,
				TransactionID:  txID,
				ActorID:        actorID,
			}); err != nil {
				return err
			}
		}
		if err := soRepo.UpdateStatus(ctx, so.ID, entity.SOStatusCancelled); err != nil {
			return err
		}
		so.Status = entity.SOStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.rec != nil {
		for range so.Items {
			uc.rec.ObserveMovement(entity.MovementTypeAdjustment)
		}
	}
	return so, nil
}

// GetByID devuelve la orden con líneas, o ErrNotFound.
func (uc *SalesUseCase) GetByID(ctx context.Context, soID int64) (*entity.SalesOrder, error) {
	so, err := uc.soRepo.GetByID(ctx, soID)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, fmt.Errorf("%w: orden de venta %d", domain.ErrNotFound, soID)
	}
	return so, nil
}

// List devuelve órdenes de venta, más recientes primero.
func (uc *SalesUseCase) List(ctx context.Context, limit, offset int) ([]*entity.SalesOrder, error) {
	return uc.soRepo.List(ctx, limit, offset)
}

// parseDateOrToday interpreta YYYY-MM-DD; vacío = hoy.
func parseDateOrToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse(dateLayout, s)
}

// parseDatePtr interpreta YYYY-MM-DD; vacío = nil.
func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
