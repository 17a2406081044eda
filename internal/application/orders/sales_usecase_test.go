package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/memstore"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type fixture struct {
	store    *memstore.Store
	ledger   *ledger.Service
	sales    *orders.SalesUseCase
	purchase *orders.PurchaseUseCase
	product  *entity.Product
	location *entity.Location
	supplier *entity.Supplier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()

	product := &entity.Product{
		Name: "Aceite 1L", SKU: "ACE-1L",
		UnitPrice: decimal.RequireFromString("12.50"),
		Status:    entity.StatusActive,
	}
	require.NoError(t, store.Products().Create(ctx, product))

	location := &entity.Location{Name: "Tienda Norte", Type: "STORE", Status: entity.StatusActive}
	require.NoError(t, store.Locations().Create(ctx, location))

	supplier := &entity.Supplier{Name: "Distribuidora Sur", Status: entity.StatusActive}
	require.NoError(t, store.Suppliers().Create(ctx, supplier))

	runner := memstore.NewTxRunner(store)
	ledgerSvc := ledger.NewService(runner, store.Movements(), store.Levels(), store.Products(), store.Locations(), nil)
	return &fixture{
		store:    store,
		ledger:   ledgerSvc,
		sales:    orders.NewSalesUseCase(runner, ledgerSvc, store.Products(), store.Locations(), store.SalesOrders(), nil),
		purchase: orders.NewPurchaseUseCase(runner, ledgerSvc, store.Products(), store.Suppliers(), store.Locations(), store.PurchaseOrders(), nil),
		product:  product,
		location: location,
		supplier: supplier,
	}
}

// seedStock deja quantity unidades del producto en la ubicación.
func (f *fixture) seedStock(t *testing.T, quantity int64) {
	t.Helper()
	_, err := f.ledger.RegisterAdjustment(context.Background(), 1, f.product.ID, f.location.ID, quantity)
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T) int64 {
	t.Helper()
	qty, err := f.ledger.CurrentQuantity(context.Background(), f.product.ID, f.location.ID)
	require.NoError(t, err)
	return qty
}

func TestCreateAndConfirm_DescuentaStockYConfirma(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, 20)
	ctx := context.Background()

	so, err := f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID:   f.location.ID,
		CustomerName: "Cliente Mostrador",
		Items:        []dto.SalesOrderItemInput{{ProductID: f.product.ID, Quantity: 6}},
	})
	require.NoError(t, err)
	require.NotNil(t, so)

	assert.Equal(t, entity.SOStatusConfirmed, so.Status)
	assert.Equal(t, int64(14), f.stock(t))

	// Precio de lista por omisión: 12.50 * 6 = 75.00
	assert.True(t, decimal.RequireFromString("75.00").Equal(so.TotalAmount), so.TotalAmount.String())

	movs, err := f.store.Movements().ListByProduct(ctx, f.product.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeSalesIssue, movs[0].MovementType)
	assert.Equal(t, entity.DocumentTypeSalesOrder, movs[0].RelatedDocType)
	assert.Equal(t, so.ID, movs[0].RelatedDocID)
}

func TestCreateAndConfirm_StockInsuficienteNoDejaNada(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, 3)
	ctx := context.Background()

	_, err := f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID: f.location.ID,
		Items:      []dto.SalesOrderItemInput{{ProductID: f.product.ID, Quantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Revertido todo: ni orden, ni movimiento, ni descuento.
	assert.Equal(t, int64(3), f.stock(t))
	sos, err := f.store.SalesOrders().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sos)
	movs, err := f.store.Movements().ListByProduct(ctx, f.product.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo el ajuste de siembra")
}

func TestCreateAndConfirm_MultilineasTodoONada(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, 10)
	ctx := context.Background()

	// Segundo producto sin stock: la primera línea tampoco debe descontarse.
	otro := &entity.Product{Name: "Filtro", SKU: "FIL-01", UnitPrice: decimal.NewFromInt(5), Status: entity.StatusActive}
	require.NoError(t, f.store.Products().Create(ctx, otro))

	_, err := f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID: f.location.ID,
		Items: []dto.SalesOrderItemInput{
			{ProductID: f.product.ID, Quantity: 4},
			{ProductID: otro.ID, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), f.stock(t))
}

func TestCreateAndConfirm_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, 10)
	ctx := context.Background()

	// Sin líneas.
	_, err := f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{LocationID: f.location.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto repetido.
	_, err = f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID: f.location.ID,
		Items: []dto.SalesOrderItemInput{
			{ProductID: f.product.ID, Quantity: 1},
			{ProductID: f.product.ID, Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Descuento fuera de rango.
	bad := decimal.NewFromInt(120)
	_, err = f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID: f.location.ID,
		Items:      []dto.SalesOrderItemInput{{ProductID: f.product.ID, Quantity: 1, Discount: &bad}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ubicación inexistente.
	_, err = f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID: 9999,
		Items:      []dto.SalesOrderItemInput{{ProductID: f.product.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_CompensaElLedger(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, 10)
	ctx := context.Background()

	so, err := f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID: f.location.ID,
		Items:      []dto.SalesOrderItemInput{{ProductID: f.product.ID, Quantity: 7}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), f.stock(t))

	cancelled, err := f.sales.Cancel(ctx, 2, so.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SOStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(10), f.stock(t), "la cancelación restituye lo descontado")

	// La compensación es una entrada nueva, no una edición del ledger.
	movs, err := f.store.Movements().ListByProduct(ctx, f.product.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].MovementType)
	assert.Equal(t, entity.DocumentTypeSalesOrder, movs[0].RelatedDocType)
	assert.Equal(t, so.ID, movs[0].RelatedDocID)
}

func TestCancel_SoloDesdeConfirmed(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, 10)
	ctx := context.Background()

	so, err := f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
		LocationID: f.location.ID,
		Items:      []dto.SalesOrderItemInput{{ProductID: f.product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.sales.Cancel(ctx, 1, so.ID)
	require.NoError(t, err)

	// Una segunda cancelación choca con el estado CANCELLED.
	_, err = f.sales.Cancel(ctx, 1, so.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, int64(10), f.stock(t), "la compensación no debe aplicarse dos veces")

	_, err = f.sales.Cancel(ctx, 1, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos órdenes compiten por 10 unidades pidiendo 7 cada una: exactamente una
// debe confirmar y la otra rechazarse sin dejar rastro.
func TestCreateAndConfirm_ContencionConcurrente(t *testing.T) {
	f := newFixture(t)
	f.seedStock(t, 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.sales.CreateAndConfirm(ctx, 1, dto.CreateSalesOrderRequest{
				LocationID: f.location.ID,
				Items:      []dto.SalesOrderItemInput{{ProductID: f.product.ID, Quantity: 7}},
			})
		}(i)
	}
	wg.Wait()

	var okCount, rejectedCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		default:
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			rejectedCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una orden debe confirmar")
	assert.Equal(t, 1, rejectedCount)
	assert.Equal(t, int64(3), f.stock(t))

	sos, err := f.store.SalesOrders().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, sos, 1, "la orden rechazada no debe quedar persistida")
}
