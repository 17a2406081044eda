package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// PurchaseUseCase maneja órdenes de compra: creación aprobada y recepción
// total con generación de PURCHASE_RECEIPT por línea pendiente.
type PurchaseUseCase struct {
	txRunner     TxRunner
	ledger       *ledger.Service
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	locationRepo repository.LocationRepository
	poRepo       repository.PurchaseOrderRepository // lecturas fuera de tx
	rec          Recorder                           // puede ser nil
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	ledgerSvc *ledger.Service,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	locationRepo repository.LocationRepository,
	poRepo repository.PurchaseOrderRepository,
	rec Recorder,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		ledger:       ledgerSvc,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		locationRepo: locationRepo,
		poRepo:       poRepo,
		rec:          rec,
	}
}

// Create registra la orden de compra en estado APPROVED. No toca el ledger:
// el stock entra recién al recibir.
func (uc *PurchaseUseCase) Create(ctx context.Context, actorID int64, in dto.CreatePurchaseOrderRequest) (*entity.PurchaseOrder, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden debe tener al menos una línea", domain.ErrInvalidInput)
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, in.SupplierID)
	}
	if !supplier.IsActive() {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrInactiveResource, in.SupplierID)
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
	expectedDate, err := parseDatePtr(in.ExpectedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expected_date %q", domain.ErrInvalidInput, in.ExpectedDate)
	}

	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	total := decimal.Zero
	seen := make(map[int64]bool, len(in.Items))
	for _, it := range in.Items {
		if it.OrderedQty <= 0 {
			return nil, fmt.Errorf("%w: ordered_qty debe ser > 0 (producto %d)", domain.ErrInvalidInput, it.ProductID)
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

		lineTotal := unitPrice.Mul(decimal.NewFromInt(it.OrderedQty))
		total = total.Add(lineTotal)
		items = append(items, entity.PurchaseOrderItem{
			ProductID:  it.ProductID,
			OrderedQty: it.OrderedQty,
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
		})
	}

	po := &entity.PurchaseOrder{
		SupplierID:   in.SupplierID,
		LocationID:   in.LocationID,
		OrderDate:    orderDate,
		ExpectedDate: expectedDate,
		Status:       entity.POStatusApproved,
		TotalAmount:  total,
		CreatedBy:    actorID,
		Items:        items,
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	if uc.rec != nil {
		uc.rec.ObserveOrder("purchase", "ok")
	}
	return po, nil
}

// ReceiveAll marca como recibidas todas las cantidades pendientes de la
// orden y registra un PURCHASE_RECEIPT por línea pendiente en una sola
// unidad atómica. Recibir una orden ya cerrada es un no-op que devuelve la
// orden tal cual; si el estado quedó desalineado con las líneas se corrige.
func (uc *PurchaseUseCase) ReceiveAll(ctx context.Context, actorID, poID int64) (*entity.PurchaseOrder, error) {
	var po *entity.PurchaseOrder
	var receivedLines int
	txID := uuid.New().String()

	err := uc.txRunner.RunOrders(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.SalesOrderRepository,
	) error {
		var err error
		po, err = poRepo.GetByIDForUpdate(ctx, poID)
		if err != nil {
			return err
		}
		if po == nil {
			return fmt.Errorf("%w: orden de compra %d", domain.ErrNotFound, poID)
		}
		if po.Status == entity.POStatusCancelled {
			return fmt.Errorf("%w: la orden %d está %s", domain.ErrInvalidTransition, poID, po.Status)
		}
		if len(po.Items) == 0 {
			return fmt.Errorf("%w: la orden %d no tiene líneas", domain.ErrInvalidInput, poID)
		}

		for i := range po.Items {
			it := &po.Items[i]
			outstanding := it.Outstanding()
			if outstanding <= 0 {
				continue
			}
			if _, err := uc.ledger.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
				ProductID:      it.ProductID,
				LocationID:     po.LocationID,
				Quantity:       outstanding,
				MovementType:   entity.MovementTypePurchaseReceipt,
				RelatedDocType: entity.DocumentTypePurchaseOrder,
				RelatedDocID:   po.ID,
				TransactionID:  txID,
				ActorID:        actorID,
			}); err != nil {
				return err
			}
			it.ReceivedQty = it.OrderedQty
			if err := poRepo.UpdateItemReceived(ctx, po.ID, it.ProductID, it.ReceivedQty); err != nil {
				return err
			}
			receivedLines++
		}

		// Resincronizar el estado con las líneas aunque no hubiera nada
		// pendiente, para sanear órdenes con estado desalineado.
		want := entity.POStatusPartiallyReceived
		if po.FullyReceived() {
			want = entity.POStatusClosed
		}
		if po.Status != want {
			if err := poRepo.UpdateStatus(ctx, po.ID, want); err != nil {
				return err
			}
			po.Status = want
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.rec != nil {
		for i := 0; i < receivedLines; i++ {
			uc.rec.ObserveMovement(entity.MovementTypePurchaseReceipt)
		}
	}
	return po, nil
}

// GetByID devuelve la orden con líneas, o ErrNotFound.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, poID int64) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %d", domain.ErrNotFound, poID)
	}
	return po, nil
}

// List devuelve órdenes de compra, más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.poRepo.List(ctx, limit, offset)
}
