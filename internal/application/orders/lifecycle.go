// Package orders implementa el gestor del ciclo de vida de pedidos: la máquina
// de estados y la orquestación de reservas/liberaciones de stock.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	apstock "github.com/ostramar/ostramar-api/internal/application/stock"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

const (
	historyActionCreated      = "created"
	historyActionStatusUpdate = "status_update"

	// Reintentos del CAS sobre el campo status cuando otro escritor mueve el
	// pedido entre nuestra lectura y nuestra escritura.
	statusCASMaxRetries = 5
)

// LifecycleUseCase crea pedidos, los transiciona por la máquina de estados y
// los elimina, delegando todo delta de cantidad en el servicio de reservas.
//
// La compuerta contra la doble liberación es el propio campo status: solo el
// escritor que gana el compare-and-swap hacia cancelled ejecuta la liberación,
// así dos cancelaciones concurrentes del mismo pedido restauran stock
// exactamente una vez.
type LifecycleUseCase struct {
	orders repository.OrderRepository
	stocks *apstock.ReservationService
	log    *logger.Logger
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(orders repository.OrderRepository, stocks *apstock.ReservationService, log *logger.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{orders: orders, stocks: stocks, log: log}
}

// Create valida el pedido, reserva el stock de todas las líneas y solo entonces
// persiste el registro. Si cualquier línea falla no se escribe pedido alguno.
func (uc *LifecycleUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.Order, error) {
	if in.Customer == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	reservations := make([]apstock.ReservationItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.StockID == "" || it.Quantity <= 0 || it.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.OrderItem{StockID: it.StockID, Quantity: it.Quantity, Price: it.Price})
		reservations = append(reservations, apstock.ReservationItem{StockID: it.StockID, Quantity: it.Quantity})
	}

	if err := uc.stocks.Reserve(ctx, reservations); err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	order := &entity.Order{
		ID:          uuid.New().String(),
		OrderNumber: newOrderNumber(),
		Customer:    in.Customer,
		Items:       items,
		Status:      entity.OrderStatusPending,
		History: []entity.HistoryEntry{{
			Action: historyActionCreated,
			To:     string(entity.OrderStatusPending),
			By:     in.Actor,
			At:     now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.TotalAmount = order.Total()

	if err := uc.orders.Insert(ctx, order); err != nil {
		// La reserva ya se aplicó: compensar antes de propagar el fallo.
		if relErr := uc.stocks.Release(ctx, reservations); relErr != nil {
			uc.log.Error().Err(relErr).Str("order_number", order.OrderNumber).
				Msg("compensación tras fallo de inserción de pedido fallida")
		}
		return nil, fmt.Errorf("insertar pedido: %w", err)
	}

	uc.log.Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).
		Int("items", len(order.Items)).Msg("pedido creado")
	return order, nil
}

// Transition mueve el pedido a newStatus.
//
// Hacia cancelled: si el pedido ya está cancelado es un no-op exitoso
// (idempotente); si no, el ganador del CAS sobre status ejecuta la liberación
// del stock. Cualquier otro destino es una escritura dirigida por el caller,
// válida mientras el estado actual no sea terminal.
func (uc *LifecycleUseCase) Transition(ctx context.Context, orderID, newStatus, actor string) error {
	next := entity.OrderStatus(newStatus)
	if !next.Valid() {
		return domain.ErrInvalidInput
	}

	for attempt := 0; attempt < statusCASMaxRetries; attempt++ {
		order, err := uc.orders.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("leer pedido %s: %w", orderID, err)
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrOrderNotFound)
		}
		if order.Status == entity.OrderStatusCancelled {
			if next == entity.OrderStatusCancelled {
				// Re-cancelar es no-op: evita la doble liberación de stock.
				return nil
			}
			return fmt.Errorf("pedido %s ya cancelado: %w", orderID, domain.ErrInvalidTransition)
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("pedido %s: %s -> %s: %w", orderID, order.Status, next, domain.ErrInvalidTransition)
		}

		now := time.Now().UnixMilli()
		entry := entity.HistoryEntry{
			Action: historyActionStatusUpdate,
			From:   string(order.Status),
			To:     string(next),
			By:     actor,
			At:     now,
		}
		swapped, err := uc.orders.UpdateStatusCAS(ctx, orderID, order.Status, next, entry, now)
		if err != nil {
			return fmt.Errorf("transicionar pedido %s: %w", orderID, err)
		}
		if !swapped {
			// Otro escritor movió el pedido: releer y reevaluar.
			continue
		}

		if next == entity.OrderStatusCancelled {
			if err := uc.releaseItems(ctx, order); err != nil {
				return err
			}
		}
		uc.log.Info().Str("order_id", orderID).Str("from", string(order.Status)).
			Str("to", string(next)).Str("by", actor).Msg("pedido transicionado")
		return nil
	}
	return fmt.Errorf("transicionar pedido %s: %w", orderID, domain.ErrConcurrencyConflict)
}

// Remove cancela (restaurando stock, misma compuerta que Transition) y elimina
// el pedido. Eliminar un pedido ya cancelado omite la restauración.
func (uc *LifecycleUseCase) Remove(ctx context.Context, orderID, actor string) error {
	order, err := uc.orders.Get(ctx, orderID)
	if err != nil {
		return fmt.Errorf("leer pedido %s: %w", orderID, err)
	}
	if order == nil {
		return fmt.Errorf("pedido %s: %w", orderID, domain.ErrOrderNotFound)
	}
	if order.Status != entity.OrderStatusCancelled {
		if err := uc.Transition(ctx, orderID, string(entity.OrderStatusCancelled), actor); err != nil {
			return err
		}
	}
	if err := uc.orders.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("eliminar pedido %s: %w", orderID, err)
	}
	uc.log.Info().Str("order_id", orderID).Str("by", actor).Msg("pedido eliminado")
	return nil
}

// Get devuelve el pedido por id.
func (uc *LifecycleUseCase) Get(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := uc.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("leer pedido %s: %w", orderID, err)
	}
	if order == nil {
		return nil, fmt.Errorf("pedido %s: %w", orderID, domain.ErrOrderNotFound)
	}
	return order, nil
}

// List devuelve todos los pedidos.
func (uc *LifecycleUseCase) List(ctx context.Context) ([]entity.Order, error) {
	return uc.orders.List(ctx)
}

// releaseItems restaura el stock de las líneas de un pedido recién cancelado.
// Solo llega aquí el ganador del CAS, así que ocurre a lo sumo una vez por pedido.
func (uc *LifecycleUseCase) releaseItems(ctx context.Context, order *entity.Order) error {
	items := make([]apstock.ReservationItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, apstock.ReservationItem{StockID: it.StockID, Quantity: it.Quantity})
	}
	if err := uc.stocks.Release(ctx, items); err != nil {
		// El pedido ya quedó cancelado; la cantidad pendiente requiere ajuste
		// administrativo. Se registra y se propaga.
		uc.log.Error().Err(err).Str("order_id", order.ID).
			Msg("liberación de stock tras cancelación fallida")
		return fmt.Errorf("liberar stock del pedido %s: %w", order.ID, err)
	}
	return nil
}

// newOrderNumber genera un consecutivo legible por humanos, ej. ORD-20260828-4F2A1C.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
