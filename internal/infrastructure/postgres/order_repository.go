package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
// Items e History se guardan como JSONB; History solo crece vía concatenación.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o conexión (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Get obtiene el pedido por id, o (nil, nil) si no existe.
func (r *OrderRepo) Get(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, order_number, customer, items, total_amount, status, history, created_at, updated_at
		FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get order", err)
	}
	return o, nil
}

// List devuelve todos los pedidos.
func (r *OrderRepo) List(ctx context.Context) ([]entity.Order, error) {
	query := `
		SELECT id, order_number, customer, items, total_amount, status, history, created_at, updated_at
		FROM orders ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, storeErr("scan order", err)
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list orders", err)
	}
	return out, nil
}

// Insert persiste el pedido.
func (r *OrderRepo) Insert(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer, items, total_amount, status, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.Customer, mustJSON(o.Items), o.TotalAmount,
		string(o.Status), mustJSON(o.History), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storeErr("insert order: número duplicado", err)
		}
		return storeErr("insert order", err)
	}
	return nil
}

// UpdateStatusCAS escritura condicional sobre status: el WHERE exige que el
// estado actual siga siendo from, y en la misma sentencia anexa la entrada de
// historial (JSONB ||, nunca reemplaza).
func (r *OrderRepo) UpdateStatusCAS(ctx context.Context, id string, from, to entity.OrderStatus, entry entity.HistoryEntry, updatedAt int64) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3, history = history || $4::jsonb, updated_at = $5
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, string(from), string(to), mustJSON(entry), updatedAt)
	if err != nil {
		return false, storeErr("cas order status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete elimina el pedido; borrar un id inexistente es un no-op.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return storeErr("delete order", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	var items, history []byte
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.Customer, &items, &o.TotalAmount,
		&status, &history, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &o.History); err != nil {
		return nil, err
	}
	return &o, nil
}
