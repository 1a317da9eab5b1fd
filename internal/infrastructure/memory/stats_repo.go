package memory

import (
	"context"
	"sync"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo tabla de contadores derivados en memoria.
type StatsRepo struct {
	mu sync.RWMutex
	m  map[string]entity.DashboardStat
}

// NewStatsRepository construye la tabla vacía.
func NewStatsRepository() *StatsRepo {
	return &StatsRepo{m: make(map[string]entity.DashboardStat)}
}

// Get devuelve una copia del contador, o (nil, nil) si no existe.
func (r *StatsRepo) Get(_ context.Context, statsID string) (*entity.DashboardStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[statsID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// List devuelve copias de todos los contadores.
func (r *StatsRepo) List(_ context.Context) ([]entity.DashboardStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.DashboardStat, 0, len(r.m))
	for _, s := range r.m {
		out = append(out, s)
	}
	return out, nil
}

// Upsert inserta o sobreescribe el contador por clave derivada.
func (r *StatsRepo) Upsert(_ context.Context, stat *entity.DashboardStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[stat.StatsID] = *stat
	return nil
}
