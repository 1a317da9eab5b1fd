package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o conexión (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock por id, o (nil, nil) si no existe.
func (r *StockRepo) Get(ctx context.Context, id string) (*entity.Stock, error) {
	query := `
		SELECT id, name, type, status, quantity, lat, lon, last_updated
		FROM stocks WHERE id = $1`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Type, &s.Status, &s.Quantity, &s.Location.Lat, &s.Location.Lon, &s.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get stock", err)
	}
	return &s, nil
}

// List devuelve todos los registros de stock.
func (r *StockRepo) List(ctx context.Context) ([]entity.Stock, error) {
	query := `
		SELECT id, name, type, status, quantity, lat, lon, last_updated
		FROM stocks ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list stocks", err)
	}
	defer rows.Close()

	var out []entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Status, &s.Quantity,
			&s.Location.Lat, &s.Location.Lon, &s.LastUpdated); err != nil {
			return nil, storeErr("scan stock", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list stocks", err)
	}
	return out, nil
}

// Insert persiste el ítem de stock.
func (r *StockRepo) Insert(ctx context.Context, s *entity.Stock) error {
	query := `
		INSERT INTO stocks (id, name, type, status, quantity, lat, lon, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Type, s.Status, s.Quantity, s.Location.Lat, s.Location.Lon, s.LastUpdated,
	)
	if err != nil {
		return storeErr("insert stock", err)
	}
	return nil
}

// Update reescribe los campos descriptivos. No toca quantity.
func (r *StockRepo) Update(ctx context.Context, s *entity.Stock) error {
	query := `
		UPDATE stocks
		SET name = $2, type = $3, status = $4, lat = $5, lon = $6, last_updated = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Type, s.Status, s.Location.Lat, s.Location.Lon, s.LastUpdated)
	if err != nil {
		return storeErr("update stock", err)
	}
	return nil
}

// UpdateQuantityCAS escritura condicional: solo aplica si la cantidad sigue
// siendo expected. La cláusula WHERE es el compare-and-swap evaluado por fila.
func (r *StockRepo) UpdateQuantityCAS(ctx context.Context, id string, expected, next int, lastUpdated int64) (bool, error) {
	query := `
		UPDATE stocks SET quantity = $3, last_updated = $4
		WHERE id = $1 AND quantity = $2`
	tag, err := r.q.Exec(ctx, query, id, expected, next, lastUpdated)
	if err != nil {
		return false, storeErr("cas stock quantity", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete elimina el registro; borrar un id inexistente es un no-op.
func (r *StockRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stocks WHERE id = $1`, id); err != nil {
		return storeErr("delete stock", err)
	}
	return nil
}
