package repository

import (
	"context"

	"github.com/ostramar/ostramar-api/internal/domain/entity"
)

// OrderRepository acceso al ledger de pedidos.
type OrderRepository interface {
	// Get devuelve el pedido por id, o (nil, nil) si no existe.
	Get(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]entity.Order, error)
	Insert(ctx context.Context, o *entity.Order) error
	// UpdateStatusCAS escribe el nuevo estado y anexa la entrada de historial solo
	// si el estado actual sigue siendo from. El campo status actúa de compuerta de
	// escritor único: devuelve false si el pedido ya no está en from.
	UpdateStatusCAS(ctx context.Context, id string, from, to entity.OrderStatus, entry entity.HistoryEntry, updatedAt int64) (bool, error)
	Delete(ctx context.Context, id string) error
}
