package memory

import (
	"context"
	"sync"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo ledger de pedidos en memoria.
type OrderRepo struct {
	mu sync.RWMutex
	m  map[string]entity.Order
}

// NewOrderRepository construye el ledger vacío.
func NewOrderRepository() *OrderRepo {
	return &OrderRepo{m: make(map[string]entity.Order)}
}

// Get devuelve una copia del pedido, o (nil, nil) si no existe.
func (r *OrderRepo) Get(_ context.Context, id string) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	cp := o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	cp.History = append([]entity.HistoryEntry(nil), o.History...)
	return &cp, nil
}

// List devuelve copias de todos los pedidos.
func (r *OrderRepo) List(_ context.Context) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Order, 0, len(r.m))
	for _, o := range r.m {
		out = append(out, o)
	}
	return out, nil
}

// Insert agrega el pedido.
func (r *OrderRepo) Insert(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[o.ID] = *o
	return nil
}

// UpdateStatusCAS escribe to y anexa entry solo si el estado actual sigue siendo from.
func (r *OrderRepo) UpdateStatusCAS(_ context.Context, id string, from, to entity.OrderStatus, entry entity.HistoryEntry, updatedAt int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.m[id]
	if !ok || cur.Status != from {
		return false, nil
	}
	cur.Status = to
	cur.History = append(append([]entity.HistoryEntry(nil), cur.History...), entry)
	cur.UpdatedAt = updatedAt
	r.m[id] = cur
	return true, nil
}

// Delete elimina el pedido; borrar un id inexistente es un no-op.
func (r *OrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}
