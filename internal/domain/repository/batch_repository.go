package repository

import (
	"context"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
)

// BatchRepository acceso al ledger de lotes de trazabilidad.
type BatchRepository interface {
	// Get devuelve el lote por id, o (nil, nil) si no existe.
	Get(ctx context.Context, id string) (*entity.Batch, error)
	List(ctx context.Context) ([]entity.Batch, error)
	Insert(ctx context.Context, b *entity.Batch) error
	// AppendCheckpoint anexa cp a la cadena (nunca reemplaza) y refleja
	// CurrentLocation y Status del lote desde el nuevo checkpoint.
	// Devuelve false si el lote no existe.
	AppendCheckpoint(ctx context.Context, id string, cp entity.Checkpoint) (bool, error)
}
