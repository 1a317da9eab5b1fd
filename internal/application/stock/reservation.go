// Package stock implementa el servicio de reservas de inventario: el único
// escritor de deltas de cantidad sobre el ledger de stock.
package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

const defaultCASMaxRetries = 5

// ReservationItem cantidad a reservar (o liberar) de un ítem de stock.
type ReservationItem struct {
	StockID  string
	Quantity int
}

// ReservationService valida y aplica deltas de cantidad sobre el ledger de stock.
//
// El store no ofrece transacciones multi-registro, así que Reserve valida TODOS
// los ítems antes de aplicar descuento alguno y luego aplica ítem por ítem, cada
// descuento bajo compare-and-swap con reintento (releer cantidad, escribir solo
// si no cambió desde la lectura). La disponibilidad se re-verifica en cada
// relectura: dos reservas concurrentes de 6 sobre una cantidad de 10 terminan
// en exactamente un éxito y un ErrInsufficientStock, nunca ambas.
type ReservationService struct {
	stocks     repository.StockRepository
	log        *logger.Logger
	maxRetries int
}

// NewReservationService construye el servicio. maxRetries <= 0 usa el valor por defecto.
func NewReservationService(stocks repository.StockRepository, log *logger.Logger, maxRetries int) *ReservationService {
	if maxRetries <= 0 {
		maxRetries = defaultCASMaxRetries
	}
	return &ReservationService{stocks: stocks, log: log, maxRetries: maxRetries}
}

// Reserve descuenta la cantidad de cada ítem. Todo-o-nada: si algún ítem falla
// la validación no se aplica descuento alguno; si un descuento falla a mitad de
// la aplicación, los ya aplicados se compensan liberándolos.
func (s *ReservationService) Reserve(ctx context.Context, items []ReservationItem) error {
	if err := validateItems(items); err != nil {
		return err
	}

	// Fase 1: validar todos los ítems antes de mutar cualquiera.
	for _, it := range items {
		st, err := s.stocks.Get(ctx, it.StockID)
		if err != nil {
			return fmt.Errorf("leer stock %s: %w", it.StockID, err)
		}
		if st == nil {
			return fmt.Errorf("stock %s: %w", it.StockID, domain.ErrStockNotFound)
		}
		if st.Quantity < it.Quantity {
			return fmt.Errorf("stock %s (disponible %d, solicitado %d): %w",
				it.StockID, st.Quantity, it.Quantity, domain.ErrInsufficientStock)
		}
	}

	// Fase 2: aplicar descuentos ítem por ítem bajo CAS con reintento.
	for i, it := range items {
		if err := s.adjust(ctx, it.StockID, -it.Quantity); err != nil {
			// Compensar los descuentos ya aplicados antes de propagar el error.
			s.rollback(ctx, items[:i])
			return err
		}
	}
	return nil
}

// Release incrementa de vuelta las cantidades. No es idempotente por sí misma:
// el gestor de pedidos garantiza a-lo-sumo-una invocación por pedido mediante la
// compuerta de transición de estado.
func (s *ReservationService) Release(ctx context.Context, items []ReservationItem) error {
	if err := validateItems(items); err != nil {
		return err
	}
	for _, it := range items {
		if err := s.adjust(ctx, it.StockID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// AdminAdjust fija la cantidad absoluta de un stock (intake o corrección
// administrativa), también bajo CAS para no pisar reservas en vuelo.
func (s *ReservationService) AdminAdjust(ctx context.Context, stockID string, quantity int) error {
	if stockID == "" || quantity < 0 {
		return domain.ErrInvalidInput
	}
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		st, err := s.stocks.Get(ctx, stockID)
		if err != nil {
			return fmt.Errorf("leer stock %s: %w", stockID, err)
		}
		if st == nil {
			return fmt.Errorf("stock %s: %w", stockID, domain.ErrStockNotFound)
		}
		swapped, err := s.stocks.UpdateQuantityCAS(ctx, stockID, st.Quantity, quantity, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("ajustar stock %s: %w", stockID, err)
		}
		if swapped {
			return nil
		}
	}
	return fmt.Errorf("ajustar stock %s: %w", stockID, domain.ErrConcurrencyConflict)
}

// adjust aplica un delta (negativo reserva, positivo libera) bajo CAS con
// reintento acotado. La cantidad resultante nunca baja de cero.
func (s *ReservationService) adjust(ctx context.Context, stockID string, delta int) error {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		st, err := s.stocks.Get(ctx, stockID)
		if err != nil {
			return fmt.Errorf("leer stock %s: %w", stockID, err)
		}
		if st == nil {
			return fmt.Errorf("stock %s: %w", stockID, domain.ErrStockNotFound)
		}
		next := st.Quantity + delta
		if next < 0 {
			return fmt.Errorf("stock %s (disponible %d, solicitado %d): %w",
				stockID, st.Quantity, -delta, domain.ErrInsufficientStock)
		}
		swapped, err := s.stocks.UpdateQuantityCAS(ctx, stockID, st.Quantity, next, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("actualizar stock %s: %w", stockID, err)
		}
		if swapped {
			return nil
		}
		// Otro escritor ganó la carrera: releer y reintentar.
	}
	return fmt.Errorf("actualizar stock %s: %w", stockID, domain.ErrConcurrencyConflict)
}

// rollback libera los descuentos ya aplicados de una reserva fallida a mitad de
// camino. Mejor esfuerzo: un fallo aquí se registra y no enmascara el error original.
func (s *ReservationService) rollback(ctx context.Context, applied []ReservationItem) {
	for _, it := range applied {
		if err := s.adjust(ctx, it.StockID, it.Quantity); err != nil {
			s.log.Error().Err(err).
				Str("stock_id", it.StockID).
				Int("quantity", it.Quantity).
				Msg("compensación de reserva fallida; cantidad pendiente de ajuste administrativo")
		}
	}
}

func validateItems(items []ReservationItem) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.StockID == "" || it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
