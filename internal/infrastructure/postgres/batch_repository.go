package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/pinturas-b2b/internal/domain"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/entity"
	"github.com/tu-usuario/pinturas-b2b/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de partidas. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `b.id, b.product_id, b.color_code, b.quantity, b.produced_at, COALESCE(b.analysis_id, ''), b.created_at, b.updated_at`

// Create persiste una partida nueva.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO batches (id, product_id, color_code, quantity, produced_at, analysis_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ProductID, batch.ColorCode, batch.Quantity, batch.ProducedAt,
		batch.AnalysisID, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene una partida por ID.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches b WHERE b.id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la partida bloqueando la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *BatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches b WHERE b.id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste cantidad, color y análisis asociado de la partida.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	query := `
		UPDATE batches
		SET color_code = $2, quantity = $3, produced_at = $4, analysis_id = NULLIF($5, ''), updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ColorCode, batch.Quantity, batch.ProducedAt, batch.AnalysisID, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAvailable devuelve partidas con existencias, agrupadas por
// nomenclatura+color y fecha de producción ascendente.
func (r *BatchRepo) ListAvailable() ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches b
		JOIN products p ON p.id = b.product_id
		WHERE b.quantity > 0
		ORDER BY p.nomenclature, b.color_code, b.produced_at`
	return r.list(query)
}

// ListAll incluye partidas agotadas (vista de administración/auditoría).
func (r *BatchRepo) ListAll() ([]*entity.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches b
		JOIN products p ON p.id = b.product_id
		ORDER BY p.nomenclature, b.color_code, b.produced_at`
	return r.list(query)
}

// ListByProduct devuelve las partidas de un producto.
func (r *BatchRepo) ListByProduct(productID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches b WHERE b.product_id = $1 ORDER BY b.produced_at`
	return r.list(query, productID)
}

// Delete elimina una partida.
func (r *BatchRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) list(query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(
			&b.ID, &b.ProductID, &b.ColorCode, &b.Quantity, &b.ProducedAt,
			&b.AnalysisID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.ProductID, &b.ColorCode, &b.Quantity, &b.ProducedAt,
		&b.AnalysisID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}
