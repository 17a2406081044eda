package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto en estado ACTIVE. El SKU es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, fmt.Errorf("%w: name y sku son obligatorios", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price negativo", domain.ErrInvalidInput)
	}
	if in.ReorderLevel < 0 {
		return nil, fmt.Errorf("%w: reorder_level negativo", domain.ErrInvalidInput)
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, in.CategoryID)
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %q", domain.ErrDuplicate, in.SKU)
	}
	now := time.Now()
	product := &entity.Product{
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		SKU:           in.SKU,
		Barcode:       in.Barcode,
		Description:   in.Description,
		UnitPrice:     in.UnitPrice,
		UnitOfMeasure: in.UnitOfMeasure,
		ReorderLevel:  in.ReorderLevel,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto, o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// GetBySKU obtiene un producto por SKU, o ErrNotFound.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: sku %q", domain.ErrNotFound, sku)
	}
	return toProductResponse(product), nil
}

// Update actualiza campos presentes. El SKU no cambia después de creado.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: categoría %d", domain.ErrNotFound, *in.CategoryID)
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit_price negativo", domain.ErrInvalidInput)
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, fmt.Errorf("%w: reorder_level negativo", domain.ErrInvalidInput)
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SetStatus activa o desactiva el producto. Un producto inactivo conserva
// su historial y su stock; solo se bloquean operaciones nuevas.
func (uc *ProductUseCase) SetStatus(ctx context.Context, id int64, status string) error {
	if status != entity.StatusActive && status != entity.StatusInactive {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return uc.repo.SetStatus(ctx, id, status)
}

// List lista productos, opcionalmente filtrados por status.
func (uc *ProductUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Description:   p.Description,
		UnitPrice:     p.UnitPrice,
		UnitOfMeasure: p.UnitOfMeasure,
		ReorderLevel:  p.ReorderLevel,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
