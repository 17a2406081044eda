// Package memstore implementa los puertos de persistencia en memoria.
// Lo usan las pruebas de los casos de uso: el TxRunner serializa las
// unidades atómicas con un mutex global y revierte por snapshot, emulando
// el commit/rollback y el bloqueo de filas de PostgreSQL.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

type levelKey struct {
	productID  int64
	locationID int64
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	categories map[int64]entity.Category
	suppliers  map[int64]entity.Supplier
	locations  map[int64]entity.Location
	products   map[int64]entity.Product
	users      map[int64]entity.User
	levels     map[levelKey]entity.InventoryLevel
	movements  []entity.StockMovement
	pos        map[int64]entity.PurchaseOrder
	sos        map[int64]entity.SalesOrder

	nextCategoryID int64
	nextSupplierID int64
	nextLocationID int64
	nextProductID  int64
	nextUserID     int64
	nextMovementID int64
	nextPOID       int64
	nextSOID       int64
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		categories: make(map[int64]entity.Category),
		suppliers:  make(map[int64]entity.Supplier),
		locations:  make(map[int64]entity.Location),
		products:   make(map[int64]entity.Product),
		users:      make(map[int64]entity.User),
		levels:     make(map[levelKey]entity.InventoryLevel),
		pos:        make(map[int64]entity.PurchaseOrder),
		sos:        make(map[int64]entity.SalesOrder),
	}
}

// lock adquiere el mutex global salvo que el repo opere dentro de una tx
// (el TxRunner ya lo tiene tomado).
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	categories map[int64]entity.Category
	suppliers  map[int64]entity.Supplier
	locations  map[int64]entity.Location
	products   map[int64]entity.Product
	users      map[int64]entity.User
	levels     map[levelKey]entity.InventoryLevel
	movements  []entity.StockMovement
	pos        map[int64]entity.PurchaseOrder
	sos        map[int64]entity.SalesOrder
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePO(po entity.PurchaseOrder) entity.PurchaseOrder {
	po.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return po
}

func cloneSO(so entity.SalesOrder) entity.SalesOrder {
	so.Items = append([]entity.SalesOrderItem(nil), so.Items...)
	return so
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		categories: cloneMap(s.categories),
		suppliers:  cloneMap(s.suppliers),
		locations:  cloneMap(s.locations),
		products:   cloneMap(s.products),
		users:      cloneMap(s.users),
		levels:     cloneMap(s.levels),
		movements:  append([]entity.StockMovement(nil), s.movements...),
		pos:        make(map[int64]entity.PurchaseOrder, len(s.pos)),
		sos:        make(map[int64]entity.SalesOrder, len(s.sos)),
	}
	for id, po := range s.pos {
		snap.pos[id] = clonePO(po)
	}
	for id, so := range s.sos {
		snap.sos[id] = cloneSO(so)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.categories = snap.categories
	s.suppliers = snap.suppliers
	s.locations = snap.locations
	s.products = snap.products
	s.users = snap.users
	s.levels = snap.levels
	s.movements = snap.movements
	s.pos = snap.pos
	s.sos = snap.sos
	// Los contadores de id no se revierten: las secuencias de PostgreSQL
	// tampoco son transaccionales.
}

// ──────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────

// Movements devuelve el repositorio del ledger (fuera de tx).
func (s *Store) Movements() repository.StockMovementRepository {
	return &movementRepo{s: s}
}

// Levels devuelve el repositorio de la proyección (fuera de tx).
func (s *Store) Levels() repository.InventoryLevelRepository {
	return &levelRepo{s: s}
}

// Products devuelve el repositorio de productos (fuera de tx).
func (s *Store) Products() repository.ProductRepository {
	return &productRepo{s: s}
}

// Locations devuelve el repositorio de ubicaciones (fuera de tx).
func (s *Store) Locations() repository.LocationRepository {
	return &locationRepo{s: s}
}

// Suppliers devuelve el repositorio de proveedores (fuera de tx).
func (s *Store) Suppliers() repository.SupplierRepository {
	return &supplierRepo{s: s}
}

// Categories devuelve el repositorio de categorías (fuera de tx).
func (s *Store) Categories() repository.CategoryRepository {
	return &categoryRepo{s: s}
}

// PurchaseOrders devuelve el repositorio de órdenes de compra (fuera de tx).
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository {
	return &poRepo{s: s}
}

// SalesOrders devuelve el repositorio de órdenes de venta (fuera de tx).
func (s *Store) SalesOrders() repository.SalesOrderRepository {
	return &soRepo{s: s}
}

// Users devuelve el repositorio de usuarios (fuera de tx).
func (s *Store) Users() repository.UserRepository {
	return &userRepo{s: s}
}

type movementRepo struct {
	s    *Store
	inTx bool
}

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lock(r.inTx)()
	if m.ID == 0 {
		r.s.nextMovementID++
		m.ID = r.s.nextMovementID
	} else if m.ID > r.s.nextMovementID {
		r.s.nextMovementID = m.ID
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) NextID(_ context.Context) (int64, error) {
	defer r.s.lock(r.inTx)()
	r.s.nextMovementID++
	return r.s.nextMovementID, nil
}

func (r *movementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			m := r.s.movements[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) filterKey(productID, locationID int64, keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.ProductID == productID && m.LocationID == locationID && keep(&m) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *movementRepo) ListForKeyAfter(_ context.Context, productID, locationID int64, t time.Time) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	return r.filterKey(productID, locationID, func(m *entity.StockMovement) bool {
		return m.MovementDate.After(t)
	}), nil
}

func (r *movementRepo) ListForKeyAfterID(_ context.Context, productID, locationID, afterID int64) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	return r.filterKey(productID, locationID, func(m *entity.StockMovement) bool {
		return m.ID > afterID
	}), nil
}

func (r *movementRepo) SumForKey(_ context.Context, productID, locationID int64) (int64, error) {
	defer r.s.lock(r.inTx)()
	var sum int64
	for i := range r.s.movements {
		m := &r.s.movements[i]
		if m.ProductID == productID && m.LocationID == locationID {
			sum += m.SignedQuantity()
		}
	}
	return sum, nil
}

func (r *movementRepo) listBy(match func(*entity.StockMovement) bool, limit, offset int) []*entity.StockMovement {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		m := r.s.movements[i]
		if match(&m) {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (r *movementRepo) ListByProduct(_ context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	return r.listBy(func(m *entity.StockMovement) bool { return m.ProductID == productID }, limit, offset), nil
}

func (r *movementRepo) ListByLocation(_ context.Context, locationID int64, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.s.lock(r.inTx)()
	return r.listBy(func(m *entity.StockMovement) bool { return m.LocationID == locationID }, limit, offset), nil
}

func (r *movementRepo) ListTransferPairs(_ context.Context, limit int) ([]repository.TransferPair, error) {
	defer r.s.lock(r.inTx)()
	ins := make(map[int64]entity.StockMovement)
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.MovementType == entity.MovementTypeTransferIn {
			ins[m.RelatedDocID] = m
		}
	}
	var pairs []repository.TransferPair
	for i := range r.s.movements {
		m := r.s.movements[i]
		if m.MovementType != entity.MovementTypeTransferOut {
			continue
		}
		in, ok := ins[m.RelatedDocID]
		if !ok {
			continue
		}
		pairs = append(pairs, repository.TransferPair{Out: m, In: in})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Out.ID > pairs[j].Out.ID })
	if limit > 0 && limit < len(pairs) {
		pairs = pairs[:limit]
	}
	return pairs, nil
}

type levelRepo struct {
	s    *Store
	inTx bool
}

func (r *levelRepo) get(productID, locationID int64) *entity.InventoryLevel {
	if lv, ok := r.s.levels[levelKey{productID, locationID}]; ok {
		out := lv
		return &out
	}
	return &entity.InventoryLevel{ProductID: productID, LocationID: locationID}
}

func (r *levelRepo) Get(_ context.Context, productID, locationID int64) (*entity.InventoryLevel, error) {
	defer r.s.lock(r.inTx)()
	return r.get(productID, locationID), nil
}

func (r *levelRepo) GetForUpdate(_ context.Context, productID, locationID int64) (*entity.InventoryLevel, error) {
	defer r.s.lock(r.inTx)()
	// Igual que en PostgreSQL, la fila se materializa en 0 al bloquearla
	// por primera vez.
	key := levelKey{productID, locationID}
	if _, ok := r.s.levels[key]; !ok {
		r.s.levels[key] = entity.InventoryLevel{ProductID: productID, LocationID: locationID, LastUpdated: time.Now()}
	}
	return r.get(productID, locationID), nil
}

func (r *levelRepo) Upsert(_ context.Context, level *entity.InventoryLevel) error {
	defer r.s.lock(r.inTx)()
	r.s.levels[levelKey{level.ProductID, level.LocationID}] = *level
	return nil
}

func (r *levelRepo) ListByLocation(_ context.Context, locationID int64, limit, offset int) ([]*entity.InventoryLevel, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.InventoryLevel
	for k, lv := range r.s.levels {
		if k.locationID == locationID {
			v := lv
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *levelRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.InventoryLevel, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.InventoryLevel
	for k, lv := range r.s.levels {
		if k.productID == productID {
			v := lv
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

type productRepo struct {
	s    *Store
	inTx bool
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.inTx)()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return fmt.Errorf("%w: sku %q", domain.ErrDuplicate, p.SKU)
		}
	}
	r.s.nextProductID++
	p.ID = r.s.nextProductID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	for _, p := range r.s.products {
		if p.SKU == sku {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.products[p.ID]; !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, p.ID)
	}
	p.UpdatedAt = time.Now()
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) SetStatus(_ context.Context, id int64, status string) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	p.Status = status
	r.s.products[id] = p
	return nil
}

func (r *productRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Product
	for _, p := range r.s.products {
		if status == "" || p.Status == status {
			v := p
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *productRepo) LockByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

type locationRepo struct {
	s    *Store
	inTx bool
}

func (r *locationRepo) Create(_ context.Context, l *entity.Location) error {
	defer r.s.lock(r.inTx)()
	r.s.nextLocationID++
	l.ID = r.s.nextLocationID
	l.CreatedAt = time.Now()
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	defer r.s.lock(r.inTx)()
	if l, ok := r.s.locations[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *locationRepo) Update(_ context.Context, l *entity.Location) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.locations[l.ID]; !ok {
		return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, l.ID)
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) SetStatus(_ context.Context, id int64, status string) error {
	defer r.s.lock(r.inTx)()
	l, ok := r.s.locations[id]
	if !ok {
		return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, id)
	}
	l.Status = status
	r.s.locations[id] = l
	return nil
}

func (r *locationRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Location, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Location
	for _, l := range r.s.locations {
		if status == "" || l.Status == status {
			v := l
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *locationRepo) LockByIDs(_ context.Context, ids []int64) ([]*entity.Location, error) {
	defer r.s.lock(r.inTx)()
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var out []*entity.Location
	for _, id := range sorted {
		if l, ok := r.s.locations[id]; ok {
			v := l
			out = append(out, &v)
		}
	}
	return out, nil
}

type supplierRepo struct {
	s    *Store
	inTx bool
}

func (r *supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	defer r.s.lock(r.inTx)()
	r.s.nextSupplierID++
	sp.ID = r.s.nextSupplierID
	sp.CreatedAt = time.Now()
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	defer r.s.lock(r.inTx)()
	if sp, ok := r.s.suppliers[id]; ok {
		return &sp, nil
	}
	return nil, nil
}

func (r *supplierRepo) Update(_ context.Context, sp *entity.Supplier) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.suppliers[sp.ID]; !ok {
		return fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, sp.ID)
	}
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r *supplierRepo) SetStatus(_ context.Context, id int64, status string) error {
	defer r.s.lock(r.inTx)()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	sp.Status = status
	r.s.suppliers[id] = sp
	return nil
}

func (r *supplierRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Supplier, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Supplier
	for _, sp := range r.s.suppliers {
		if status == "" || sp.Status == status {
			v := sp
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type categoryRepo struct {
	s    *Store
	inTx bool
}

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	defer r.s.lock(r.inTx)()
	r.s.nextCategoryID++
	c.ID = r.s.nextCategoryID
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	defer r.s.lock(r.inTx)()
	if c, ok := r.s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.categories[c.ID]; !ok {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, c.ID)
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) SetStatus(_ context.Context, id int64, status string) error {
	defer r.s.lock(r.inTx)()
	c, ok := r.s.categories[id]
	if !ok {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	c.Status = status
	r.s.categories[id] = c
	return nil
}

func (r *categoryRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Category, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if status == "" || c.Status == status {
			v := c
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type poRepo struct {
	s    *Store
	inTx bool
}

func (r *poRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	defer r.s.lock(r.inTx)()
	r.s.nextPOID++
	po.ID = r.s.nextPOID
	po.CreatedAt = time.Now()
	for i := range po.Items {
		po.Items[i].POID = po.ID
	}
	r.s.pos[po.ID] = clonePO(*po)
	return nil
}

func (r *poRepo) GetByID(_ context.Context, id int64) (*entity.PurchaseOrder, error) {
	defer r.s.lock(r.inTx)()
	if po, ok := r.s.pos[id]; ok {
		out := clonePO(po)
		return &out, nil
	}
	return nil, nil
}

func (r *poRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *poRepo) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.PurchaseOrder
	for _, po := range r.s.pos {
		v := clonePO(po)
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *poRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	defer r.s.lock(r.inTx)()
	po, ok := r.s.pos[id]
	if !ok {
		return fmt.Errorf("%w: orden de compra %d", domain.ErrNotFound, id)
	}
	po.Status = status
	r.s.pos[id] = po
	return nil
}

func (r *poRepo) UpdateItemReceived(_ context.Context, poID, productID, receivedQty int64) error {
	defer r.s.lock(r.inTx)()
	po, ok := r.s.pos[poID]
	if !ok {
		return fmt.Errorf("%w: orden de compra %d", domain.ErrNotFound, poID)
	}
	for i := range po.Items {
		if po.Items[i].ProductID == productID {
			po.Items[i].ReceivedQty = receivedQty
			r.s.pos[poID] = po
			return nil
		}
	}
	return fmt.Errorf("%w: línea de producto %d en orden %d", domain.ErrNotFound, productID, poID)
}

type soRepo struct {
	s    *Store
	inTx bool
}

func (r *soRepo) Create(_ context.Context, so *entity.SalesOrder) error {
	defer r.s.lock(r.inTx)()
	r.s.nextSOID++
	so.ID = r.s.nextSOID
	so.CreatedAt = time.Now()
	for i := range so.Items {
		so.Items[i].SOID = so.ID
	}
	r.s.sos[so.ID] = cloneSO(*so)
	return nil
}

func (r *soRepo) GetByID(_ context.Context, id int64) (*entity.SalesOrder, error) {
	defer r.s.lock(r.inTx)()
	if so, ok := r.s.sos[id]; ok {
		out := cloneSO(so)
		return &out, nil
	}
	return nil, nil
}

func (r *soRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *soRepo) List(_ context.Context, limit, offset int) ([]*entity.SalesOrder, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.SalesOrder
	for _, so := range r.s.sos {
		v := cloneSO(so)
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *soRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	defer r.s.lock(r.inTx)()
	so, ok := r.s.sos[id]
	if !ok {
		return fmt.Errorf("%w: orden de venta %d", domain.ErrNotFound, id)
	}
	so.Status = status
	r.s.sos[id] = so
	return nil
}

type userRepo struct {
	s    *Store
	inTx bool
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	defer r.s.lock(r.inTx)()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return fmt.Errorf("%w: username %q", domain.ErrDuplicate, u.Username)
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	defer r.s.lock(r.inTx)()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	defer r.s.lock(r.inTx)()
	for _, u := range r.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}
