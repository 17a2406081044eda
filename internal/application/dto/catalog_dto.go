package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetStatusRequest body para los endpoints /:id/set-status.
type SetStatusRequest struct {
	Status string `json:"status"` // ACTIVE / INACTIVE
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID          int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name         string `json:"name"`
	ContactName  string `json:"contact_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	ID           int64     `json:"supplier_id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"` // WAREHOUSE / STORE
	Address string `json:"address,omitempty"`
}

// LocationResponse ubicación (bodega o tienda).
type LocationResponse struct {
	ID        int64     `json:"location_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	CategoryID    int64           `json:"category_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode,omitempty"`
	Description   string          `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitOfMeasure string          `json:"unit_of_measure,omitempty"`
	ReorderLevel  int64           `json:"reorder_level"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	CategoryID    *int64           `json:"category_id,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Barcode       *string          `json:"barcode,omitempty"`
	Description   *string          `json:"description,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	UnitOfMeasure *string          `json:"unit_of_measure,omitempty"`
	ReorderLevel  *int64           `json:"reorder_level,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID            int64           `json:"product_id"`
	CategoryID    int64           `json:"category_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode,omitempty"`
	Description   string          `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitOfMeasure string          `json:"unit_of_measure,omitempty"`
	ReorderLevel  int64           `json:"reorder_level"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
