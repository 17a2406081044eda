package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `
	supplier_id, name, COALESCE(contact_name, ''), COALESCE(phone, ''),
	COALESCE(email, ''), COALESCE(address, ''), COALESCE(payment_terms, ''),
	status, created_at`

// Create persiste un proveedor nuevo; escribe el id generado en s.ID.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO supplier
			(name, contact_name, phone, email, address, payment_terms, status, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, now())
		RETURNING supplier_id, created_at`
	err := r.q.QueryRow(ctx, query,
		s.Name, s.ContactName, s.Phone, s.Email, s.Address, s.PaymentTerms, s.Status,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por id, o nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM supplier WHERE supplier_id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address,
		&s.PaymentTerms, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update actualiza los datos de contacto.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE supplier SET
			name = $2, contact_name = NULLIF($3, ''), phone = NULLIF($4, ''),
			email = NULLIF($5, ''), address = NULLIF($6, ''), payment_terms = NULLIF($7, '')
		WHERE supplier_id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.ContactName, s.Phone, s.Email, s.Address, s.PaymentTerms,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// SetStatus activa o desactiva el proveedor.
func (r *SupplierRepo) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE supplier SET status = $2 WHERE supplier_id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set supplier status: %w", err)
	}
	return nil
}

// List lista proveedores; status vacío = todos.
func (r *SupplierRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM supplier
		WHERE ($1 = '' OR status = $1)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		err := rows.Scan(
			&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address,
			&s.PaymentTerms, &s.Status, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
