package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func TestPurchaseCreate_QuedaApprovedSinTocarStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	po, err := f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID:   f.supplier.ID,
		LocationID:   f.location.ID,
		ExpectedDate: "2026-09-15",
		Items:        []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 40}},
	})
	require.NoError(t, err)
	require.NotNil(t, po)

	assert.Equal(t, entity.POStatusApproved, po.Status)
	require.NotNil(t, po.ExpectedDate)
	assert.Equal(t, "2026-09-15", po.ExpectedDate.Format("2006-01-02"))

	// 12.50 * 40 = 500.00, con precio de lista por omisión.
	assert.True(t, decimal.RequireFromString("500.00").Equal(po.TotalAmount), po.TotalAmount.String())

	assert.Equal(t, int64(0), f.stock(t), "crear la orden no mueve inventario")
}

func TestPurchaseCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		LocationID: f.location.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: 9999,
		LocationID: f.location.ID,
		Items:      []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor inexistente")

	require.NoError(t, f.store.Suppliers().SetStatus(ctx, f.supplier.ID, entity.StatusInactive))
	_, err = f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		LocationID: f.location.ID,
		Items:      []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInactiveResource, "proveedor inactivo")
}

func TestReceiveAll_CierraYSubeStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	po, err := f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		LocationID: f.location.ID,
		Items:      []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 15}},
	})
	require.NoError(t, err)

	received, err := f.purchase.ReceiveAll(ctx, 1, po.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusClosed, received.Status)
	assert.Equal(t, int64(15), received.Items[0].ReceivedQty)
	assert.Equal(t, int64(15), f.stock(t))

	movs, err := f.store.Movements().ListByProduct(ctx, f.product.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypePurchaseReceipt, movs[0].MovementType)
	assert.Equal(t, entity.DocumentTypePurchaseOrder, movs[0].RelatedDocType)
	assert.Equal(t, po.ID, movs[0].RelatedDocID)
}

func TestReceiveAll_EsIdempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	po, err := f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		LocationID: f.location.ID,
		Items:      []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 8}},
	})
	require.NoError(t, err)

	_, err = f.purchase.ReceiveAll(ctx, 1, po.ID)
	require.NoError(t, err)

	// Repetir la recepción no genera movimientos ni stock adicional.
	again, err := f.purchase.ReceiveAll(ctx, 1, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusClosed, again.Status)
	assert.Equal(t, int64(8), f.stock(t))

	movs, err := f.store.Movements().ListByProduct(ctx, f.product.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestReceiveAll_RechazaCancelledEInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	po, err := f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		LocationID: f.location.ID,
		Items:      []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 5}},
	})
	require.NoError(t, err)
	require.NoError(t, f.store.PurchaseOrders().UpdateStatus(ctx, po.ID, entity.POStatusCancelled))

	_, err = f.purchase.ReceiveAll(ctx, 1, po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, int64(0), f.stock(t))

	_, err = f.purchase.ReceiveAll(ctx, 1, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos recepciones simultáneas sobre una pareja (producto, ubicación) sin
// fila de proyección todavía: la primera escritura también pasa por el
// punto de serialización y ninguna recepción pisa a la otra.
func TestReceiveAll_ConcurrentesEnParejaNueva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	poA, err := f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		LocationID: f.location.ID,
		Items:      []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 5}},
	})
	require.NoError(t, err)
	poB, err := f.purchase.Create(ctx, 1, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		LocationID: f.location.ID,
		Items:      []dto.PurchaseOrderItemInput{{ProductID: f.product.ID, OrderedQty: 10}},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{poA.ID, poB.ID} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = f.purchase.ReceiveAll(ctx, 1, id)
		}(i, id)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert.Equal(t, int64(15), f.stock(t))

	sum, err := f.store.Movements().SumForKey(ctx, f.product.ID, f.location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), sum, "la proyección debe igualar la suma del ledger")
}
