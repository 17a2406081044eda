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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor en estado ACTIVE.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	supplier := &entity.Supplier{
		Name:         in.Name,
		ContactName:  in.ContactName,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		PaymentTerms: in.PaymentTerms,
		Status:       entity.StatusActive,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor, o ErrNotFound.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza los datos de contacto del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	if in.Name != "" {
		supplier.Name = in.Name
	}
	supplier.ContactName = in.ContactName
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Address = in.Address
	supplier.PaymentTerms = in.PaymentTerms
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// SetStatus activa o desactiva el proveedor. Las órdenes de compra
// existentes no se ven afectadas; solo se bloquean órdenes nuevas.
func (uc *SupplierUseCase) SetStatus(ctx context.Context, id int64, status string) error {
	if status != entity.StatusActive && status != entity.StatusInactive {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	return uc.repo.SetStatus(ctx, id, status)
}

// List lista proveedores, opcionalmente filtrados por status.
func (uc *SupplierUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactName:  s.ContactName,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
		PaymentTerms: s.PaymentTerms,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
	}
}
