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

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// Una fila por identidad (usuario, producto, color, partida); el color y la
// partida vacíos forman parte de la clave.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador del carrito. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Upsert crea la entrada o reemplaza su cantidad si la identidad ya existe.
func (r *CartRepo) Upsert(entry *entity.CartEntry) error {
	query := `
		INSERT INTO cart_entries (user_id, product_id, color_code, batch_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, product_id, color_code, batch_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		entry.UserID, entry.ProductID, entry.ColorCode, entry.BatchID, entry.Quantity, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert cart entry: %w", err)
	}
	return nil
}

// Get obtiene una entrada por su identidad completa.
func (r *CartRepo) Get(userID, productID, colorCode, batchID string) (*entity.CartEntry, error) {
	query := `
		SELECT user_id, product_id, color_code, batch_id, quantity, updated_at
		FROM cart_entries
		WHERE user_id = $1 AND product_id = $2 AND color_code = $3 AND batch_id = $4`
	var e entity.CartEntry
	err := r.q.QueryRow(context.Background(), query, userID, productID, colorCode, batchID).Scan(
		&e.UserID, &e.ProductID, &e.ColorCode, &e.BatchID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cart entry: %w", err)
	}
	return &e, nil
}

// ListByUser devuelve las entradas del carrito del usuario, más antiguas primero.
func (r *CartRepo) ListByUser(userID string) ([]*entity.CartEntry, error) {
	query := `
		SELECT user_id, product_id, color_code, batch_id, quantity, updated_at
		FROM cart_entries WHERE user_id = $1 ORDER BY updated_at`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.CartEntry
	for rows.Next() {
		var e entity.CartEntry
		if err := rows.Scan(&e.UserID, &e.ProductID, &e.ColorCode, &e.BatchID, &e.Quantity, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Delete elimina una entrada por su identidad.
func (r *CartRepo) Delete(userID, productID, colorCode, batchID string) error {
	query := `
		DELETE FROM cart_entries
		WHERE user_id = $1 AND product_id = $2 AND color_code = $3 AND batch_id = $4`
	tag, err := r.q.Exec(context.Background(), query, userID, productID, colorCode, batchID)
	if err != nil {
		return fmt.Errorf("delete cart entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear vacía el carrito del usuario.
func (r *CartRepo) Clear(userID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_entries WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
