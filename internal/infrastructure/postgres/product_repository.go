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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	product_id, category_id, name, sku, COALESCE(barcode, ''),
	COALESCE(description, ''), unit_price, COALESCE(unit_of_measure, ''),
	reorder_level, status, created_at, updated_at`

// Create persiste un producto nuevo; escribe el id generado en p.ID.
// El SKU tiene constraint único: la violación se mapea a ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO product
			(category_id, name, sku, barcode, description, unit_price,
			 unit_of_measure, reorder_level, status, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, now(), now())
		RETURNING product_id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.CategoryID, p.Name, p.SKU, p.Barcode, p.Description, p.UnitPrice,
		p.UnitOfMeasure, p.ReorderLevel, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %q", domain.ErrDuplicate, p.SKU)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, p.CategoryID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por id, o nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE product_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get product")
}

// GetBySKU obtiene un producto por SKU, o nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sku), "get product by sku")
}

// LockByID obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Primer bloqueo del orden global en traslados.
func (r *ProductRepo) LockByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE product_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "lock product")
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.SKU, &p.Barcode,
		&p.Description, &p.UnitPrice, &p.UnitOfMeasure,
		&p.ReorderLevel, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// Update actualiza los campos editables. El SKU no cambia.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE product SET
			category_id = $2, name = $3, barcode = NULLIF($4, ''),
			description = NULLIF($5, ''), unit_price = $6,
			unit_of_measure = NULLIF($7, ''), reorder_level = $8, updated_at = $9
		WHERE product_id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Barcode, p.Description,
		p.UnitPrice, p.UnitOfMeasure, p.ReorderLevel, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, p.CategoryID)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetStatus activa o desactiva el producto.
func (r *ProductRepo) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE product SET status = $2, updated_at = now() WHERE product_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set product status: %w", err)
	}
	return nil
}

// List lista productos; status vacío = todos.
func (r *ProductRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM product
		WHERE ($1 = '' OR status = $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.SKU, &p.Barcode,
			&p.Description, &p.UnitPrice, &p.UnitOfMeasure,
			&p.ReorderLevel, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
