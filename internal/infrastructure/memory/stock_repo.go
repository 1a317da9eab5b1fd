// Package memory implementa el ledger store en memoria (driver de desarrollo y
// tests). Misma semántica que el driver postgres: lectura-de-tus-escrituras por
// registro, sin transacciones multi-registro, escrituras condicionales por CAS.
package memory

import (
	"context"
	"sync"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo ledger de stock en memoria.
type StockRepo struct {
	mu sync.RWMutex
	m  map[string]entity.Stock
}

// NewStockRepository construye el ledger vacío.
func NewStockRepository() *StockRepo {
	return &StockRepo{m: make(map[string]entity.Stock)}
}

// Get devuelve una copia del registro, o (nil, nil) si no existe.
func (r *StockRepo) Get(_ context.Context, id string) (*entity.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// List devuelve copias de todos los registros.
func (r *StockRepo) List(_ context.Context) ([]entity.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Stock, 0, len(r.m))
	for _, s := range r.m {
		out = append(out, s)
	}
	return out, nil
}

// Insert agrega el registro.
func (r *StockRepo) Insert(_ context.Context, s *entity.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[s.ID] = *s
	return nil
}

// Update reescribe los campos descriptivos sin tocar Quantity.
func (r *StockRepo) Update(_ context.Context, s *entity.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.m[s.ID]
	if !ok {
		return nil
	}
	cur.Name = s.Name
	cur.Type = s.Type
	cur.Status = s.Status
	cur.Location = s.Location
	cur.LastUpdated = s.LastUpdated
	r.m[s.ID] = cur
	return nil
}

// UpdateQuantityCAS escribe next solo si la cantidad actual sigue siendo expected.
func (r *StockRepo) UpdateQuantityCAS(_ context.Context, id string, expected, next int, lastUpdated int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.m[id]
	if !ok || cur.Quantity != expected {
		return false, nil
	}
	cur.Quantity = next
	cur.LastUpdated = lastUpdated
	r.m[id] = cur
	return true, nil
}

// Delete elimina el registro; borrar un id inexistente es un no-op.
func (r *StockRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}
