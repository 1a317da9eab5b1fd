package memory

import (
	"context"
	"sync"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo ledger de lotes de trazabilidad en memoria.
type BatchRepo struct {
	mu sync.RWMutex
	m  map[string]entity.Batch
}

// NewBatchRepository construye el ledger vacío.
func NewBatchRepository() *BatchRepo {
	return &BatchRepo{m: make(map[string]entity.Batch)}
}

// Get devuelve una copia del lote, o (nil, nil) si no existe.
func (r *BatchRepo) Get(_ context.Context, id string) (*entity.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	cp := b
	cp.Checkpoints = append([]entity.Checkpoint(nil), b.Checkpoints...)
	cp.Certifications = append([]string(nil), b.Certifications...)
	return &cp, nil
}

// List devuelve copias de todos los lotes.
func (r *BatchRepo) List(_ context.Context) ([]entity.Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Batch, 0, len(r.m))
	for _, b := range r.m {
		out = append(out, b)
	}
	return out, nil
}

// Insert agrega el lote.
func (r *BatchRepo) Insert(_ context.Context, b *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[b.ID] = *b
	return nil
}

// AppendCheckpoint anexa cp y refleja CurrentLocation y Status del lote.
func (r *BatchRepo) AppendCheckpoint(_ context.Context, id string, cp entity.Checkpoint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.m[id]
	if !ok {
		return false, nil
	}
	cur.Checkpoints = append(append([]entity.Checkpoint(nil), cur.Checkpoints...), cp)
	cur.CurrentLocation = cp.Location
	cur.Status = cp.Status
	r.m[id] = cur
	return true, nil
}
