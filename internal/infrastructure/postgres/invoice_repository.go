package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o conexión (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Get obtiene la factura por id, o (nil, nil) si no existe.
func (r *InvoiceRepo) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `
		SELECT id, invoice_number, order_id, items, total_amount, tax, status, history, created_at, updated_at
		FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get invoice", err)
	}
	return inv, nil
}

// List devuelve todas las facturas.
func (r *InvoiceRepo) List(ctx context.Context) ([]entity.Invoice, error) {
	query := `
		SELECT id, invoice_number, order_id, items, total_amount, tax, status, history, created_at, updated_at
		FROM invoices ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list invoices", err)
	}
	defer rows.Close()

	var out []entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, storeErr("scan invoice", err)
		}
		out = append(out, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list invoices", err)
	}
	return out, nil
}

// Insert persiste la factura.
func (r *InvoiceRepo) Insert(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, invoice_number, order_id, items, total_amount, tax, status, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, nullIfEmpty(inv.OrderID), mustJSON(inv.Items),
		inv.TotalAmount, inv.Tax, inv.Status, mustJSON(inv.History), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storeErr("insert invoice: número duplicado", err)
		}
		return storeErr("insert invoice", err)
	}
	return nil
}

// UpdateStatus escribe el estado y anexa la entrada de historial.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string, entry entity.HistoryEntry, updatedAt int64) (bool, error) {
	query := `
		UPDATE invoices
		SET status = $2, history = history || $3::jsonb, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, mustJSON(entry), updatedAt)
	if err != nil {
		return false, storeErr("update invoice status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var orderID *string
	var items, history []byte
	if err := row.Scan(&inv.ID, &inv.InvoiceNumber, &orderID, &items, &inv.TotalAmount,
		&inv.Tax, &inv.Status, &history, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	if orderID != nil {
		inv.OrderID = *orderID
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(history, &inv.History); err != nil {
		return nil, err
	}
	return &inv, nil
}

// nullIfEmpty convierte cadena vacía en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
