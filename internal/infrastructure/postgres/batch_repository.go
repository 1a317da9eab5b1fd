package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
// La cadena de checkpoints vive como JSONB y solo crece vía concatenación.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o conexión (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Get obtiene el lote por id, o (nil, nil) si no existe.
func (r *BatchRepo) Get(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, batch_number, product_type, quantity, origin, destination,
		       quality, certifications, status, current_location, checkpoints, created_at
		FROM batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get batch", err)
	}
	return b, nil
}

// List devuelve todos los lotes.
func (r *BatchRepo) List(ctx context.Context) ([]entity.Batch, error) {
	query := `
		SELECT id, batch_number, product_type, quantity, origin, destination,
		       quality, certifications, status, current_location, checkpoints, created_at
		FROM batches ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list batches", err)
	}
	defer rows.Close()

	var out []entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, storeErr("scan batch", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list batches", err)
	}
	return out, nil
}

// Insert persiste el lote con su checkpoint de origen ya sembrado.
func (r *BatchRepo) Insert(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, batch_number, product_type, quantity, origin, destination,
		                     quality, certifications, status, current_location, checkpoints, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.BatchNumber, b.ProductType, b.Quantity, mustJSON(b.Origin), mustJSON(b.Destination),
		b.Quality, mustJSON(b.Certifications), b.Status, b.CurrentLocation, mustJSON(b.Checkpoints), b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storeErr("insert batch: número duplicado", err)
		}
		return storeErr("insert batch", err)
	}
	return nil
}

// AppendCheckpoint anexa el checkpoint (JSONB ||, nunca reemplaza) y refleja
// ubicación y estado del lote en la misma sentencia.
func (r *BatchRepo) AppendCheckpoint(ctx context.Context, id string, cp entity.Checkpoint) (bool, error) {
	query := `
		UPDATE batches
		SET checkpoints = checkpoints || $2::jsonb, current_location = $3, status = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, mustJSON(cp), cp.Location, cp.Status)
	if err != nil {
		return false, storeErr("append checkpoint", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var origin, destination, certifications, checkpoints []byte
	if err := row.Scan(&b.ID, &b.BatchNumber, &b.ProductType, &b.Quantity, &origin, &destination,
		&b.Quality, &certifications, &b.Status, &b.CurrentLocation, &checkpoints, &b.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(origin, &b.Origin); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(destination, &b.Destination); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(certifications, &b.Certifications); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(checkpoints, &b.Checkpoints); err != nil {
		return nil, err
	}
	return &b, nil
}
