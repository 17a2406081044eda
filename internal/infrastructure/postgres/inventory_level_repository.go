package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de la proyección de stock sobre PostgreSQL
// (usable con pool o tx).
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador de la proyección. Pasar pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// Get obtiene el nivel actual de la pareja (producto, ubicación).
// Una fila inexistente se devuelve como base en 0.
func (r *InventoryLevelRepo) Get(ctx context.Context, productID, locationID int64) (*entity.InventoryLevel, error) {
	query := `
		SELECT product_id, location_id, quantity_on_hand, last_updated
		FROM inventory_level WHERE product_id = $1 AND location_id = $2`
	var l entity.InventoryLevel
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&l.ProductID, &l.LocationID, &l.QuantityOnHand, &l.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryLevel{ProductID: productID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return &l, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE).
// Punto de serialización de todas las escrituras sobre la pareja. Un
// SELECT FOR UPDATE sobre una fila inexistente no bloquea nada, así que
// la fila se materializa en 0 primero: dos primeras escrituras
// concurrentes sobre la misma pareja chocan en el índice único y la
// segunda espera a la primera en vez de partir de una base obsoleta.
func (r *InventoryLevelRepo) GetForUpdate(ctx context.Context, productID, locationID int64) (*entity.InventoryLevel, error) {
	seed := `
		INSERT INTO inventory_level (product_id, location_id, quantity_on_hand, last_updated)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, seed, productID, locationID); err != nil {
		return nil, fmt.Errorf("seed inventory level: %w", err)
	}

	query := `
		SELECT product_id, location_id, quantity_on_hand, last_updated
		FROM inventory_level WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var l entity.InventoryLevel
	err := r.q.QueryRow(ctx, query, productID, locationID).Scan(
		&l.ProductID, &l.LocationID, &l.QuantityOnHand, &l.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get inventory level for update: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza la cantidad proyectada de la pareja.
func (r *InventoryLevelRepo) Upsert(ctx context.Context, level *entity.InventoryLevel) error {
	query := `
		INSERT INTO inventory_level (product_id, location_id, quantity_on_hand, last_updated)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand, last_updated = now()`
	_, err := r.q.Exec(ctx, query, level.ProductID, level.LocationID, level.QuantityOnHand)
	if err != nil {
		return fmt.Errorf("upsert inventory level: %w", err)
	}
	return nil
}

// ListByLocation niveles de una ubicación, por producto ascendente.
func (r *InventoryLevelRepo) ListByLocation(ctx context.Context, locationID int64, limit, offset int) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT product_id, location_id, quantity_on_hand, last_updated
		FROM inventory_level WHERE location_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list levels by location: %w", err)
	}
	defer rows.Close()
	return collectLevels(rows)
}

// ListByProduct niveles de un producto en todas las ubicaciones.
func (r *InventoryLevelRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.InventoryLevel, error) {
	query := `
		SELECT product_id, location_id, quantity_on_hand, last_updated
		FROM inventory_level WHERE product_id = $1
		ORDER BY location_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list levels by product: %w", err)
	}
	defer rows.Close()
	return collectLevels(rows)
}

func collectLevels(rows pgx.Rows) ([]*entity.InventoryLevel, error) {
	var list []*entity.InventoryLevel
	for rows.Next() {
		var l entity.InventoryLevel
		if err := rows.Scan(&l.ProductID, &l.LocationID, &l.QuantityOnHand, &l.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
