package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

// UseCase CRUD de ítems de stock (intake y edición administrativa).
// Los deltas de cantidad NO pasan por aquí: son exclusivos de ReservationService.
type UseCase struct {
	stocks repository.StockRepository
	orders repository.OrderRepository
}

// NewUseCase construye el caso de uso. orders se usa para vetar el borrado de
// stock referenciado por pedidos activos.
func NewUseCase(stocks repository.StockRepository, orders repository.OrderRepository) *UseCase {
	return &UseCase{stocks: stocks, orders: orders}
}

// Create da de alta un ítem de stock.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateStockRequest) (*entity.Stock, error) {
	if in.Name == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StockStatusAvailable
	}
	if !entity.ValidStockStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Stock{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Type:        in.Type,
		Status:      status,
		Quantity:    in.Quantity,
		Location:    entity.GeoPoint{Lat: in.Lat, Lon: in.Lon},
		LastUpdated: time.Now().UnixMilli(),
	}
	if err := uc.stocks.Insert(ctx, s); err != nil {
		return nil, fmt.Errorf("insertar stock: %w", err)
	}
	return s, nil
}

// Get devuelve el ítem de stock por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Stock, error) {
	s, err := uc.stocks.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leer stock %s: %w", id, err)
	}
	if s == nil {
		return nil, fmt.Errorf("stock %s: %w", id, domain.ErrStockNotFound)
	}
	return s, nil
}

// List devuelve todos los ítems de stock.
func (uc *UseCase) List(ctx context.Context) ([]entity.Stock, error) {
	return uc.stocks.List(ctx)
}

// Update edita los campos descriptivos del ítem (no la cantidad).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateStockRequest) (*entity.Stock, error) {
	s, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !entity.ValidStockStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		s.Name = in.Name
	}
	if in.Type != "" {
		s.Type = in.Type
	}
	if in.Status != "" {
		s.Status = in.Status
	}
	if in.Lat != 0 || in.Lon != 0 {
		s.Location = entity.GeoPoint{Lat: in.Lat, Lon: in.Lon}
	}
	s.LastUpdated = time.Now().UnixMilli()
	if err := uc.stocks.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("actualizar stock %s: %w", id, err)
	}
	return s, nil
}

// Delete elimina el ítem de stock. Invariante del ledger: un ítem referenciado
// por un pedido activo (no cancelado) no se borra físicamente.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.stocks.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("leer stock %s: %w", id, err)
	}
	if s == nil {
		return fmt.Errorf("stock %s: %w", id, domain.ErrStockNotFound)
	}
	orders, err := uc.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("listar pedidos: %w", err)
	}
	for _, o := range orders {
		if o.Status == entity.OrderStatusCancelled {
			continue
		}
		for _, it := range o.Items {
			if it.StockID == id {
				return fmt.Errorf("stock %s referenciado por pedido activo %s: %w", id, o.OrderNumber, domain.ErrConflict)
			}
		}
	}
	if err := uc.stocks.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar stock %s: %w", id, err)
	}
	return nil
}
