package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva; escribe el id generado en c.ID.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO category (name, description, status)
		VALUES ($1, NULLIF($2, ''), $3)
		RETURNING category_id`
	err := r.q.QueryRow(ctx, query, c.Name, c.Description, c.Status).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por id, o nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	query := `
		SELECT category_id, name, COALESCE(description, ''), status
		FROM category WHERE category_id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza nombre y descripción.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE category SET name = $2, description = NULLIF($3, '')
		WHERE category_id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: categoría %q", domain.ErrDuplicate, c.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// SetStatus activa o desactiva la categoría.
func (r *CategoryRepo) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE category SET status = $2 WHERE category_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set category status: %w", err)
	}
	return nil
}

// List lista categorías; status vacío = todas.
func (r *CategoryRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT category_id, name, COALESCE(description, ''), status
		FROM category
		WHERE ($1 = '' OR status = $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Status); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
