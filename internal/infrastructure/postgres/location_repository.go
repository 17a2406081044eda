package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `location_id, name, type, COALESCE(address, ''), status, created_at`

// Create persiste una ubicación nueva; escribe el id generado en l.ID.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO location (name, type, address, status, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, now())
		RETURNING location_id, created_at`
	err := r.q.QueryRow(ctx, query, l.Name, l.Type, l.Address, l.Status).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por id, o nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM location WHERE location_id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(&l.ID, &l.Name, &l.Type, &l.Address, &l.Status, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza nombre y dirección.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `
		UPDATE location SET name = $2, address = NULLIF($3, '')
		WHERE location_id = $1`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Address)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// SetStatus activa o desactiva la ubicación.
func (r *LocationRepo) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE location SET status = $2 WHERE location_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set location status: %w", err)
	}
	return nil
}

// List lista ubicaciones; status vacío = todas.
func (r *LocationRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM location
		WHERE ($1 = '' OR status = $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

// LockByIDs bloquea las filas indicadas (SELECT FOR UPDATE) en orden
// ascendente de id. Todos los llamadores adquieren los bloqueos en el
// mismo orden global, evitando deadlocks entre traslados cruzados.
func (r *LocationRepo) LockByIDs(ctx context.Context, ids []int64) ([]*entity.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM location WHERE location_id = ANY($1)
		ORDER BY location_id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock locations: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

func collectLocations(rows pgx.Rows) ([]*entity.Location, error) {
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Type, &l.Address, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
