package memory

import (
	"context"
	"sync"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo ledger de facturas en memoria.
type InvoiceRepo struct {
	mu sync.RWMutex
	m  map[string]entity.Invoice
}

// NewInvoiceRepository construye el ledger vacío.
func NewInvoiceRepository() *InvoiceRepo {
	return &InvoiceRepo{m: make(map[string]entity.Invoice)}
}

// Get devuelve una copia de la factura, o (nil, nil) si no existe.
func (r *InvoiceRepo) Get(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	cp := inv
	cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	cp.History = append([]entity.HistoryEntry(nil), inv.History...)
	return &cp, nil
}

// List devuelve copias de todas las facturas.
func (r *InvoiceRepo) List(_ context.Context) ([]entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Invoice, 0, len(r.m))
	for _, inv := range r.m {
		out = append(out, inv)
	}
	return out, nil
}

// Insert agrega la factura.
func (r *InvoiceRepo) Insert(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[inv.ID] = *inv
	return nil
}

// UpdateStatus escribe el nuevo estado y anexa la entrada de historial.
func (r *InvoiceRepo) UpdateStatus(_ context.Context, id, status string, entry entity.HistoryEntry, updatedAt int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.m[id]
	if !ok {
		return false, nil
	}
	cur.Status = status
	cur.History = append(append([]entity.HistoryEntry(nil), cur.History...), entry)
	cur.UpdatedAt = updatedAt
	r.m[id] = cur
	return true, nil
}
