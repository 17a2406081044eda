package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/memstore"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// newFixture arma el servicio sobre el store en memoria con un producto y
// una ubicación activos ya sembrados.
func newFixture(t *testing.T) (*ledger.Service, *memstore.Store, *entity.Product, *entity.Location) {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()

	product := &entity.Product{Name: "Tornillo M8", SKU: "TOR-M8", Status: entity.StatusActive}
	require.NoError(t, store.Products().Create(ctx, product))

	location := &entity.Location{Name: "Bodega Central", Type: "WAREHOUSE", Status: entity.StatusActive}
	require.NoError(t, store.Locations().Create(ctx, location))

	svc := ledger.NewService(
		memstore.NewTxRunner(store),
		store.Movements(), store.Levels(), store.Products(), store.Locations(),
		nil,
	)
	return svc, store, product, location
}

func TestRegisterAdjustment_ActualizaProyeccionYLedger(t *testing.T) {
	svc, store, product, location := newFixture(t)
	ctx := context.Background()

	mov, err := svc.RegisterAdjustment(ctx, 1, product.ID, location.ID, 25)
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, entity.MovementTypeAdjustment, mov.MovementType)
	assert.Equal(t, int64(25), mov.Quantity)
	assert.NotEmpty(t, mov.TransactionID)
	_, err = uuid.Parse(mov.TransactionID)
	assert.NoError(t, err, "transaction_id debe ser un uuid")

	qty, err := svc.CurrentQuantity(ctx, product.ID, location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), qty)

	movs, err := store.Movements().ListByProduct(ctx, product.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, mov.ID, movs[0].ID)
}

func TestRegisterAdjustment_CantidadInvalida(t *testing.T) {
	svc, _, product, location := newFixture(t)

	_, err := svc.RegisterAdjustment(context.Background(), 1, product.ID, location.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RegisterAdjustment(context.Background(), 1, product.ID, location.ID, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterAdjustment_ProductoInexistenteOInactivo(t *testing.T) {
	svc, store, product, location := newFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterAdjustment(ctx, 1, 9999, location.ID, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Products().SetStatus(ctx, product.ID, entity.StatusInactive))
	_, err = svc.RegisterAdjustment(ctx, 1, product.ID, location.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInactiveResource)
}

func TestAppendInTx_RechazaStockNegativoYRevierte(t *testing.T) {
	svc, store, product, location := newFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterAdjustment(ctx, 1, product.ID, location.ID, 5)
	require.NoError(t, err)

	runner := memstore.NewTxRunner(store)
	err = runner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		_, appendErr := svc.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
			ProductID:     product.ID,
			LocationID:    location.ID,
			Quantity:      8,
			MovementType:  entity.MovementTypeSalesIssue,
			TransactionID: uuid.New().String(),
			ActorID:       1,
		})
		return appendErr
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada persistido: ni movimiento ni cambio de proyección.
	qty, err := svc.CurrentQuantity(ctx, product.ID, location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty)

	movs, err := store.Movements().ListByProduct(ctx, product.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo debe quedar el ajuste inicial")
}

func TestAppendInTx_TipoInvalido(t *testing.T) {
	svc, store, product, location := newFixture(t)
	ctx := context.Background()

	runner := memstore.NewTxRunner(store)
	err := runner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		levelRepo repository.InventoryLevelRepository,
	) error {
		_, appendErr := svc.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
			ProductID:    product.ID,
			LocationID:   location.ID,
			Quantity:     1,
			MovementType: "DEVOLUCION",
		})
		return appendErr
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuantityAsOf_ReconstruyeHaciaAtras(t *testing.T) {
	svc, store, product, location := newFixture(t)
	ctx := context.Background()

	base := time.Now().Add(-3 * time.Hour)
	runner := memstore.NewTxRunner(store)
	appendAt := func(qty int64, movementType string, at time.Time) {
		t.Helper()
		err := runner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			levelRepo repository.InventoryLevelRepository,
		) error {
			_, appendErr := svc.AppendInTx(ctx, movRepo, levelRepo, ledger.AppendInput{
				ProductID:     product.ID,
				LocationID:    location.ID,
				Quantity:      qty,
				MovementType:  movementType,
				TransactionID: uuid.New().String(),
				MovementDate:  at,
				ActorID:       1,
			})
			return appendErr
		})
		require.NoError(t, err)
	}

	appendAt(10, entity.MovementTypePurchaseReceipt, base)
	appendAt(4, entity.MovementTypeSalesIssue, base.Add(time.Hour))
	appendAt(2, entity.MovementTypePurchaseReceipt, base.Add(2*time.Hour))

	now, err := svc.CurrentQuantity(ctx, product.ID, location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), now)

	// Entre la primera y la segunda entrada solo estaba la recepción de 10.
	qty, err := svc.QuantityAsOf(ctx, product.ID, location.ID, base.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)

	// Antes de todo movimiento la clave estaba en 0.
	qty, err = svc.QuantityAsOf(ctx, product.ID, location.ID, base.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestRebuildLevel_RecuperaProyeccionCorrupta(t *testing.T) {
	svc, store, product, location := newFixture(t)
	ctx := context.Background()

	_, err := svc.RegisterAdjustment(ctx, 1, product.ID, location.ID, 12)
	require.NoError(t, err)

	// Simular una proyección desalineada con el ledger.
	require.NoError(t, store.Levels().Upsert(ctx, &entity.InventoryLevel{
		ProductID:      product.ID,
		LocationID:     location.ID,
		QuantityOnHand: 999,
	}))

	rebuilt, err := svc.RebuildLevel(ctx, product.ID, location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), rebuilt.QuantityOnHand,
		"la proyección debe volver a la suma con signo del ledger")
}

func TestGetLevel_ClaveSinMovimientos(t *testing.T) {
	svc, _, product, location := newFixture(t)

	level, err := svc.GetLevel(context.Background(), product.ID, location.ID)
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Equal(t, int64(0), level.QuantityOnHand, "clave desconocida se lee como 0")
}
