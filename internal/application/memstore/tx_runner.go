package memstore

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta cada unidad atómica bajo el mutex global del store:
// las transacciones quedan serializadas (semántica más estricta que la de
// PostgreSQL, suficiente para los invariantes que prueban los tests) y un
// error de fn restaura el snapshot tomado al entrar.
type TxRunner struct {
	s *Store
}

var (
	_ ledger.TxRunner   = (*TxRunner)(nil)
	_ orders.TxRunner   = (*TxRunner)(nil)
	_ transfer.TxRunner = (*TxRunner)(nil)
)

// NewTxRunner crea el runner sobre el store dado.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (t *TxRunner) run(fn func() error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snap := t.s.snapshot()
	if err := fn(); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// Run implementa ledger.TxRunner.
func (t *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	levelRepo repository.InventoryLevelRepository,
) error) error {
	return t.run(func() error {
		return fn(&movementRepo{s: t.s, inTx: true}, &levelRepo{s: t.s, inTx: true})
	})
}

// RunOrders implementa orders.TxRunner.
func (t *TxRunner) RunOrders(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	levelRepo repository.InventoryLevelRepository,
	poRepo repository.PurchaseOrderRepository,
	soRepo repository.SalesOrderRepository,
) error) error {
	return t.run(func() error {
		return fn(
			&movementRepo{s: t.s, inTx: true},
			&levelRepo{s: t.s, inTx: true},
			&poRepo{s: t.s, inTx: true},
			&soRepo{s: t.s, inTx: true},
		)
	})
}

// RunTransfer implementa transfer.TxRunner.
func (t *TxRunner) RunTransfer(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	levelRepo repository.InventoryLevelRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) error) error {
	return t.run(func() error {
		return fn(
			&movementRepo{s: t.s, inTx: true},
			&levelRepo{s: t.s, inTx: true},
			&productRepo{s: t.s, inTx: true},
			&locationRepo{s: t.s, inTx: true},
		)
	})
}
