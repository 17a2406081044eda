package transfer_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/memstore"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type fixture struct {
	store   *memstore.Store
	ledger  *ledger.Service
	uc      *transfer.UseCase
	product *entity.Product
	bodega  *entity.Location
	tienda  *entity.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()

	product := &entity.Product{Name: "Cable HDMI", SKU: "CAB-HDMI", Status: entity.StatusActive}
	require.NoError(t, store.Products().Create(ctx, product))

	bodega := &entity.Location{Name: "Bodega Central", Type: "WAREHOUSE", Status: entity.StatusActive}
	require.NoError(t, store.Locations().Create(ctx, bodega))
	tienda := &entity.Location{Name: "Tienda Sur", Type: "STORE", Status: entity.StatusActive}
	require.NoError(t, store.Locations().Create(ctx, tienda))

	runner := memstore.NewTxRunner(store)
	ledgerSvc := ledger.NewService(runner, store.Movements(), store.Levels(), store.Products(), store.Locations(), nil)
	return &fixture{
		store:   store,
		ledger:  ledgerSvc,
		uc:      transfer.NewUseCase(runner, ledgerSvc, store.Movements(), store.Levels(), nil),
		product: product,
		bodega:  bodega,
		tienda:  tienda,
	}
}

func (f *fixture) stockAt(t *testing.T, locationID int64) int64 {
	t.Helper()
	qty, err := f.ledger.CurrentQuantity(context.Background(), f.product.ID, locationID)
	require.NoError(t, err)
	return qty
}

func TestTransfer_MueveYConservaElTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.RegisterAdjustment(ctx, 1, f.product.ID, f.bodega.ID, 30)
	require.NoError(t, err)

	resp, err := f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID:      f.product.ID,
		FromLocationID: f.bodega.ID,
		ToLocationID:   f.tienda.ID,
		Quantity:       12,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(18), resp.FromQuantity)
	assert.Equal(t, int64(12), resp.ToQuantity)
	assert.Equal(t, int64(18), f.stockAt(t, f.bodega.ID))
	assert.Equal(t, int64(12), f.stockAt(t, f.tienda.ID))

	// Dos piernas correlacionadas por el id de la pierna OUT, con el mismo
	// transaction_id.
	out, err := f.store.Movements().GetByID(ctx, resp.OutMovementID)
	require.NoError(t, err)
	require.NotNil(t, out)
	in, err := f.store.Movements().GetByID(ctx, resp.InMovementID)
	require.NoError(t, err)
	require.NotNil(t, in)

	assert.Equal(t, entity.MovementTypeTransferOut, out.MovementType)
	assert.Equal(t, entity.MovementTypeTransferIn, in.MovementType)
	assert.Equal(t, out.ID, out.RelatedDocID)
	assert.Equal(t, out.ID, in.RelatedDocID)
	assert.Equal(t, out.TransactionID, in.TransactionID)
	assert.Equal(t, entity.DocumentTypeTransfer, out.RelatedDocType)
}

func TestTransfer_StockInsuficienteNoDejaPiernaSuelta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.RegisterAdjustment(ctx, 1, f.product.ID, f.bodega.ID, 5)
	require.NoError(t, err)

	_, err = f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID:      f.product.ID,
		FromLocationID: f.bodega.ID,
		ToLocationID:   f.tienda.ID,
		Quantity:       9,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Atómico: ninguna de las dos piernas quedó escrita.
	assert.Equal(t, int64(5), f.stockAt(t, f.bodega.ID))
	assert.Equal(t, int64(0), f.stockAt(t, f.tienda.ID))
	movs, err := f.store.Movements().ListByProduct(ctx, f.product.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo el ajuste de siembra")
}

func TestTransfer_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: f.product.ID, FromLocationID: f.bodega.ID, ToLocationID: f.tienda.ID, Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: f.product.ID, FromLocationID: f.bodega.ID, ToLocationID: f.bodega.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen y destino iguales")

	_, err = f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: 9999, FromLocationID: f.bodega.ID, ToLocationID: f.tienda.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: f.product.ID, FromLocationID: 9999, ToLocationID: f.tienda.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "ubicación origen inexistente")

	require.NoError(t, f.store.Locations().SetStatus(ctx, f.tienda.ID, entity.StatusInactive))
	_, err = f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: f.product.ID, FromLocationID: f.bodega.ID, ToLocationID: f.tienda.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInactiveResource, "destino inactivo")
}

// Dos traslados simultáneos en direcciones opuestas entre las mismas dos
// ubicaciones: ambos deben completar sin interbloqueo y las cantidades
// finales son la suma aritmética de los dos.
func TestTransfer_OpuestosConcurrentesConservanElTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.RegisterAdjustment(ctx, 1, f.product.ID, f.bodega.ID, 30)
	require.NoError(t, err)
	_, err = f.ledger.RegisterAdjustment(ctx, 1, f.product.ID, f.tienda.ID, 20)
	require.NoError(t, err)

	requests := []dto.TransferRequest{
		{ProductID: f.product.ID, FromLocationID: f.bodega.ID, ToLocationID: f.tienda.ID, Quantity: 10},
		{ProductID: f.product.ID, FromLocationID: f.tienda.ID, ToLocationID: f.bodega.ID, Quantity: 5},
	}
	var wg sync.WaitGroup
	errs := make([]error, len(requests))
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req dto.TransferRequest) {
			defer wg.Done()
			_, errs[i] = f.uc.Transfer(ctx, 1, req)
		}(i, req)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	assert.Equal(t, int64(25), f.stockAt(t, f.bodega.ID), "30 - 10 + 5")
	assert.Equal(t, int64(25), f.stockAt(t, f.tienda.ID), "20 + 10 - 5")

	records, err := f.uc.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 2, "cada traslado con sus dos piernas emparejadas")
}

// Un traslado rechazado por stock insuficiente no debe consumir ids de la
// secuencia de movimientos: el corte temprano ocurre antes de reservarlos.
func TestTransfer_RechazadoNoConsumeIdsDeSecuencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed, err := f.ledger.RegisterAdjustment(ctx, 1, f.product.ID, f.bodega.ID, 5)
	require.NoError(t, err)

	_, err = f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: f.product.ID, FromLocationID: f.bodega.ID, ToLocationID: f.tienda.ID, Quantity: 9,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	resp, err := f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: f.product.ID, FromLocationID: f.bodega.ID, ToLocationID: f.tienda.ID, Quantity: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, seed.ID+1, resp.OutMovementID, "sin huecos en la secuencia tras el rechazo")
	assert.Equal(t, seed.ID+2, resp.InMovementID)
}

func TestTransferList_ReconstruyeCantidadesResultantes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.ledger.RegisterAdjustment(ctx, 1, f.product.ID, f.bodega.ID, 50)
	require.NoError(t, err)

	_, err = f.uc.Transfer(ctx, 1, dto.TransferRequest{
		ProductID: f.product.ID, FromLocationID: f.bodega.ID, ToLocationID: f.tienda.ID, Quantity: 20,
	})
	require.NoError(t, err)

	// Movimiento posterior en la bodega: el listado debe seguir mostrando
	// la cantidad tal como quedó justo después del traslado.
	_, err = f.ledger.RegisterAdjustment(ctx, 1, f.product.ID, f.bodega.ID, 7)
	require.NoError(t, err)

	records, err := f.uc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, f.product.ID, rec.ProductID)
	assert.Equal(t, f.bodega.ID, rec.FromLocationID)
	assert.Equal(t, f.tienda.ID, rec.ToLocationID)
	assert.Equal(t, int64(20), rec.Quantity)
	assert.Equal(t, int64(30), rec.FromQtyAfter, "50 - 20, sin contar el ajuste posterior")
	assert.Equal(t, int64(20), rec.ToQtyAfter)
}
