package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla es de solo inserción: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	movement_id, product_id, location_id, quantity, movement_type,
	COALESCE(related_document_type, ''), COALESCE(related_document_id, 0),
	transaction_id, movement_date, created_by, created_at`

// Create inserta el movimiento. Con m.ID en 0 el id lo asigna la secuencia
// y se escribe de vuelta en m.ID; los traslados traen el id ya reservado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == 0 {
		query := `
			INSERT INTO stock_movement
				(product_id, location_id, quantity, movement_type,
				 related_document_type, related_document_id,
				 transaction_id, movement_date, created_by, created_at)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, 0), $7, $8, $9, $10)
			RETURNING movement_id`
		err := r.q.QueryRow(ctx, query,
			m.ProductID, m.LocationID, m.Quantity, m.MovementType,
			m.RelatedDocType, m.RelatedDocID,
			m.TransactionID, m.MovementDate, m.CreatedBy, m.CreatedAt,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("insert stock movement: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO stock_movement
			(movement_id, product_id, location_id, quantity, movement_type,
			 related_document_type, related_document_id,
			 transaction_id, movement_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, 0), $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.LocationID, m.Quantity, m.MovementType,
		m.RelatedDocType, m.RelatedDocID,
		m.TransactionID, m.MovementDate, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// NextID reserva el siguiente id de la secuencia sin insertar.
func (r *StockMovementRepo) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `SELECT nextval('stock_movement_movement_id_seq')`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next movement id: %w", err)
	}
	return id, nil
}

// GetByID obtiene un movimiento por id, o nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movement WHERE movement_id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListForKeyAfter movimientos de la pareja estrictamente posteriores a t,
// del más nuevo al más viejo.
func (r *StockMovementRepo) ListForKeyAfter(ctx context.Context, productID, locationID int64, t time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movement
		WHERE product_id = $1 AND location_id = $2 AND movement_date > $3
		ORDER BY movement_id DESC`
	rows, err := r.q.Query(ctx, query, productID, locationID, t)
	if err != nil {
		return nil, fmt.Errorf("list movements after date: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListForKeyAfterID movimientos de la pareja con id mayor a afterID,
// del más nuevo al más viejo.
func (r *StockMovementRepo) ListForKeyAfterID(ctx context.Context, productID, locationID, afterID int64) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movement
		WHERE product_id = $1 AND location_id = $2 AND movement_id > $3
		ORDER BY movement_id DESC`
	rows, err := r.q.Query(ctx, query, productID, locationID, afterID)
	if err != nil {
		return nil, fmt.Errorf("list movements after id: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// SumForKey suma con signo todos los movimientos de la pareja: la fuente
// de verdad para reconstruir la proyección.
func (r *StockMovementRepo) SumForKey(ctx context.Context, productID, locationID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN movement_type IN ('SALES_ISSUE', 'TRANSFER_OUT')
				THEN -quantity ELSE quantity END), 0)
		FROM stock_movement
		WHERE product_id = $1 AND location_id = $2`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID, locationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

// ListByProduct historial de un producto en todas las ubicaciones, más nuevos primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movement
		WHERE product_id = $1
		ORDER BY movement_id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByLocation historial de una ubicación, más nuevos primero.
func (r *StockMovementRepo) ListByLocation(ctx context.Context, locationID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movement
		WHERE location_id = $1
		ORDER BY movement_id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by location: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListTransferPairs une cada TRANSFER_OUT con su TRANSFER_IN por el id
// correlacionador, más recientes primero.
func (r *StockMovementRepo) ListTransferPairs(ctx context.Context, limit int) ([]repository.TransferPair, error) {
	query := `
		SELECT
			o.movement_id, o.product_id, o.location_id, o.quantity, o.movement_type,
			COALESCE(o.related_document_type, ''), COALESCE(o.related_document_id, 0),
			o.transaction_id, o.movement_date, o.created_by, o.created_at,
			i.movement_id, i.product_id, i.location_id, i.quantity, i.movement_type,
			COALESCE(i.related_document_type, ''), COALESCE(i.related_document_id, 0),
			i.transaction_id, i.movement_date, i.created_by, i.created_at
		FROM stock_movement o
		JOIN stock_movement i
			ON i.related_document_type = 'TRANSFER'
			AND i.related_document_id = o.related_document_id
			AND i.movement_type = 'TRANSFER_IN'
		WHERE o.movement_type = 'TRANSFER_OUT'
		ORDER BY o.movement_id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list transfer pairs: %w", err)
	}
	defer rows.Close()

	var pairs []repository.TransferPair
	for rows.Next() {
		var p repository.TransferPair
		err := rows.Scan(
			&p.Out.ID, &p.Out.ProductID, &p.Out.LocationID, &p.Out.Quantity, &p.Out.MovementType,
			&p.Out.RelatedDocType, &p.Out.RelatedDocID,
			&p.Out.TransactionID, &p.Out.MovementDate, &p.Out.CreatedBy, &p.Out.CreatedAt,
			&p.In.ID, &p.In.ProductID, &p.In.LocationID, &p.In.Quantity, &p.In.MovementType,
			&p.In.RelatedDocType, &p.In.RelatedDocID,
			&p.In.TransactionID, &p.In.MovementDate, &p.In.CreatedBy, &p.In.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transfer pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.LocationID, &m.Quantity, &m.MovementType,
		&m.RelatedDocType, &m.RelatedDocID,
		&m.TransactionID, &m.MovementDate, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
