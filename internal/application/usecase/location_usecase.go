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

// LocationUseCase casos de uso CRUD para ubicaciones (bodegas y tiendas).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación en estado ACTIVE.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Type != entity.LocationTypeWarehouse && in.Type != entity.LocationTypeStore {
		return nil, fmt.Errorf("%w: type %q", domain.ErrInvalidInput, in.Type)
	}
	location := &entity.Location{
		Name:      in.Name,
		Type:      in.Type,
		Address:   in.Address,
		Status:    entity.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación, o ErrNotFound.
func (uc *LocationUseCase) GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, id)
	}
	return toLocationResponse(location), nil
}

// Update actualiza nombre y dirección. El tipo no cambia después de creada.
func (uc *LocationUseCase) Update(ctx context.Context, id int64, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, id)
	}
	if in.Name != "" {
		location.Name = in.Name
	}
	if in.Address != "" {
		location.Address = in.Address
	}
	if err := uc.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// SetStatus activa o desactiva la ubicación. Una ubicación inactiva no
// participa en órdenes ni traslados nuevos; su stock histórico queda.
func (uc *LocationUseCase) SetStatus(ctx context.Context, id int64, status string) error {
	if status != entity.StatusActive && status != entity.StatusInactive {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, status)
	}
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location == nil {
		return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, id)
	}
	return uc.repo.SetStatus(ctx, id, status)
}

// List lista ubicaciones, opcionalmente filtradas por status.
func (uc *LocationUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Type:      l.Type,
		Address:   l.Address,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
	}
}
