// Package stats implementa el agregador de contadores derivados del dashboard.
// Los contadores nunca son fuente de verdad: son instantáneas de mejor esfuerzo
// recalculadas por escaneo de los ledgers y sobreescritas vía upsert.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

// Aggregator recalcula contadores (sales/inventory/orders) por escaneo de los
// ledgers. Idempotente: recalcular dos veces seguidas deja el mismo valor.
type Aggregator struct {
	invoices repository.InvoiceRepository
	stocks   repository.StockRepository
	orders   repository.OrderRepository
	stats    repository.StatsRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewAggregator construye el agregador.
func NewAggregator(
	invoices repository.InvoiceRepository,
	stocks repository.StockRepository,
	orders repository.OrderRepository,
	stats repository.StatsRepository,
	log *logger.Logger,
) *Aggregator {
	return &Aggregator{
		invoices: invoices,
		stocks:   stocks,
		orders:   orders,
		stats:    stats,
		log:      log,
		now:      time.Now,
	}
}

// Recompute escanea el ledger correspondiente al tipo, calcula el valor del
// periodo y la variación porcentual contra el valor anterior almacenado para la
// misma clave (type, period), y hace upsert. No es transaccional con los
// ledgers de origen: es una instantánea, no una frontera de consistencia.
func (a *Aggregator) Recompute(ctx context.Context, statType, period string) error {
	value, err := a.compute(ctx, statType, period)
	if err != nil {
		return err
	}

	statsID := entity.StatsKey(statType, period)
	prior, err := a.stats.Get(ctx, statsID)
	if err != nil {
		return fmt.Errorf("leer contador %s: %w", statsID, err)
	}

	change := decimal.Zero
	var target *decimal.Decimal
	if prior != nil {
		target = prior.Target
		if !prior.Value.IsZero() {
			change = value.Sub(prior.Value).Div(prior.Value).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}

	stat := &entity.DashboardStat{
		StatsID:   statsID,
		Type:      statType,
		Period:    period,
		Value:     value,
		Change:    change,
		Target:    target,
		UpdatedAt: a.now().UnixMilli(),
	}
	if err := a.stats.Upsert(ctx, stat); err != nil {
		return fmt.Errorf("upsert contador %s: %w", statsID, err)
	}
	a.log.Debug().Str("stats_id", statsID).Str("value", value.String()).
		Str("change", change.String()).Msg("contador recalculado")
	return nil
}

// List devuelve todos los contadores almacenados.
func (a *Aggregator) List(ctx context.Context) ([]entity.DashboardStat, error) {
	return a.stats.List(ctx)
}

// compute escanea el ledger del tipo y suma/cuenta dentro del periodo.
func (a *Aggregator) compute(ctx context.Context, statType, period string) (decimal.Decimal, error) {
	since := periodStart(period, a.now())

	switch statType {
	case entity.StatTypeSales:
		// Ventas: total facturado (no cancelado) dentro del periodo.
		invoices, err := a.invoices.List(ctx)
		if err != nil {
			return decimal.Zero, fmt.Errorf("escanear facturas: %w", err)
		}
		total := decimal.Zero
		for _, inv := range invoices {
			if inv.Status == entity.InvoiceStatusCancelled || inv.CreatedAt < since {
				continue
			}
			total = total.Add(inv.TotalAmount)
		}
		return total, nil

	case entity.StatTypeInventory:
		// Inventario: unidades disponibles totales; el periodo no aplica porque
		// la cantidad es un estado presente, no un flujo.
		stocks, err := a.stocks.List(ctx)
		if err != nil {
			return decimal.Zero, fmt.Errorf("escanear stock: %w", err)
		}
		total := decimal.Zero
		for _, s := range stocks {
			total = total.Add(decimal.NewFromInt(int64(s.Quantity)))
		}
		return total, nil

	case entity.StatTypeOrders:
		// Pedidos: cantidad de pedidos no cancelados creados dentro del periodo.
		orders, err := a.orders.List(ctx)
		if err != nil {
			return decimal.Zero, fmt.Errorf("escanear pedidos: %w", err)
		}
		count := int64(0)
		for _, o := range orders {
			if o.Status == entity.OrderStatusCancelled || o.CreatedAt < since {
				continue
			}
			count++
		}
		return decimal.NewFromInt(count), nil
	}
	return decimal.Zero, fmt.Errorf("tipo de contador %q: %w", statType, domain.ErrInvalidInput)
}

// periodStart devuelve el inicio del periodo en epoch ms. Periodos calendario:
// daily desde la medianoche de hoy, weekly desde el lunes, monthly desde el día 1.
// Un periodo vacío o desconocido agrega sobre todo el histórico.
func periodStart(period string, now time.Time) int64 {
	switch period {
	case entity.StatPeriodDaily:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UnixMilli()
	case entity.StatPeriodWeekly:
		y, m, d := now.Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		offset := (int(now.Weekday()) + 6) % 7 // lunes = 0
		return midnight.AddDate(0, 0, -offset).UnixMilli()
	case entity.StatPeriodMonthly:
		y, m, _ := now.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).UnixMilli()
	}
	return 0
}
