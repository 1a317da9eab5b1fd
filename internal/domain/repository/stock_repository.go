package repository

import (
	"context"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
)

// StockRepository acceso al ledger de stock.
// El store subyacente no ofrece transacciones multi-registro: la única primitiva
// condicional es UpdateQuantityCAS (escritura que solo aplica si la cantidad no
// cambió desde la lectura).
type StockRepository interface {
	// Get devuelve el stock por id, o (nil, nil) si no existe.
	Get(ctx context.Context, id string) (*entity.Stock, error)
	// List devuelve todos los registros de stock.
	List(ctx context.Context) ([]entity.Stock, error)
	Insert(ctx context.Context, s *entity.Stock) error
	// Update reescribe los campos descriptivos (nombre, tipo, estado, ubicación).
	// No toca Quantity: eso es exclusivo de UpdateQuantityCAS.
	Update(ctx context.Context, s *entity.Stock) error
	// UpdateQuantityCAS escribe next solo si la cantidad actual sigue siendo
	// expected (compare-and-swap). Devuelve false si otro escritor ganó la carrera.
	UpdateQuantityCAS(ctx context.Context, id string, expected, next int, lastUpdated int64) (bool, error)
	Delete(ctx context.Context, id string) error
}
