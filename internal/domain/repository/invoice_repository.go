package repository

import (
	"context"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
)

// InvoiceRepository acceso al ledger de facturas.
type InvoiceRepository interface {
	// Get devuelve la factura por id, o (nil, nil) si no existe.
	Get(ctx context.Context, id string) (*entity.Invoice, error)
	List(ctx context.Context) ([]entity.Invoice, error)
	Insert(ctx context.Context, inv *entity.Invoice) error
	// UpdateStatus escribe el nuevo estado y anexa la entrada de historial.
	// Devuelve false si la factura no existe.
	UpdateStatus(ctx context.Context, id, status string, entry entity.HistoryEntry, updatedAt int64) (bool, error)
}
