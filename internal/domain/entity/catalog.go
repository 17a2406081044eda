package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de los recursos de catálogo (closed set).
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Tipos de ubicación.
const (
	LocationTypeWarehouse = "WAREHOUSE"
	LocationTypeStore     = "STORE"
)

// Category agrupa productos del catálogo.
type Category struct {
	ID          int64
	Name        string
	Description string
	Status      string // ACTIVE / INACTIVE
}

// Supplier representa un proveedor de órdenes de compra.
type Supplier struct {
	ID           int64
	Name         string
	ContactName  string
	Phone        string
	Email        string
	Address      string
	PaymentTerms string
	Status       string // ACTIVE / INACTIVE
	CreatedAt    time.Time
}

// Location representa una bodega o tienda donde se almacena inventario.
type Location struct {
	ID        int64
	Name      string
	Type      string // WAREHOUSE / STORE
	Address   string
	Status    string // ACTIVE / INACTIVE
	CreatedAt time.Time
}

// Product representa un producto o SKU del catálogo (multi-ubicación).
// El stock se maneja por ubicación en InventoryLevel, nunca aquí.
type Product struct {
	ID            int64
	CategoryID    int64
	Name          string
	SKU           string // único global
	Barcode       string
	Description   string
	UnitPrice     decimal.Decimal // precio de lista
	UnitOfMeasure string
	ReorderLevel  int64
	Status        string // ACTIVE / INACTIVE
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indica si el recurso puede participar en operaciones de inventario.
func (p *Product) IsActive() bool  { return p.Status == StatusActive }
func (l *Location) IsActive() bool { return l.Status == StatusActive }
func (s *Supplier) IsActive() bool { return s.Status == StatusActive }
