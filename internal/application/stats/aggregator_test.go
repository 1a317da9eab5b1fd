package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ostramar/ostramar-api/internal/application/stats"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/infrastructure/memory"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del agregador de contadores del dashboard. Los contadores son derivados:
// recalcular escanea el ledger de origen, compara contra el valor anterior de la
// misma clave (type, period) y hace upsert de UN solo registro por clave.
// ──────────────────────────────────────────────────────────────────────────────

type aggFixture struct {
	agg      *stats.Aggregator
	invoices *memory.InvoiceRepo
	stocks   *memory.StockRepo
	orders   *memory.OrderRepo
	stats    *memory.StatsRepo
}

func newAggFixture() *aggFixture {
	f := &aggFixture{
		invoices: memory.NewInvoiceRepository(),
		stocks:   memory.NewStockRepository(),
		orders:   memory.NewOrderRepository(),
		stats:    memory.NewStatsRepository(),
	}
	f.agg = stats.NewAggregator(f.invoices, f.stocks, f.orders, f.stats, logger.Nop())
	return f
}

func (f *aggFixture) stat(t *testing.T, statsID string) *entity.DashboardStat {
	t.Helper()
	s, err := f.stats.Get(context.Background(), statsID)
	require.NoError(t, err)
	require.NotNil(t, s, "el contador %s debe existir tras el recálculo", statsID)
	return s
}

func TestRecompute_VentasSumaFacturasNoCanceladas(t *testing.T) {
	f := newAggFixture()
	ctx := context.Background()
	hoy := time.Now().UnixMilli()

	require.NoError(t, f.invoices.Insert(ctx, &entity.Invoice{
		ID: "f1", TotalAmount: decimal.NewFromFloat(120.50), Status: entity.InvoiceStatusPaid, CreatedAt: hoy,
	}))
	require.NoError(t, f.invoices.Insert(ctx, &entity.Invoice{
		ID: "f2", TotalAmount: decimal.NewFromFloat(79.50), Status: entity.InvoiceStatusSent, CreatedAt: hoy,
	}))
	require.NoError(t, f.invoices.Insert(ctx, &entity.Invoice{
		ID: "f3", TotalAmount: decimal.NewFromInt(999), Status: entity.InvoiceStatusCancelled, CreatedAt: hoy,
	}))

	require.NoError(t, f.agg.Recompute(ctx, entity.StatTypeSales, entity.StatPeriodDaily))

	s := f.stat(t, "sales_daily")
	assert.True(t, s.Value.Equal(decimal.NewFromInt(200)),
		"ventas = 120.50 + 79.50; la factura cancelada no cuenta (valor: %s)", s.Value)
	assert.Equal(t, entity.StatTypeSales, s.Type)
	assert.Equal(t, entity.StatPeriodDaily, s.Period)
}

func TestRecompute_InventarioSumaCantidades(t *testing.T) {
	f := newAggFixture()
	ctx := context.Background()
	require.NoError(t, f.stocks.Insert(ctx, &entity.Stock{ID: "s1", Quantity: 500}))
	require.NoError(t, f.stocks.Insert(ctx, &entity.Stock{ID: "s2", Quantity: 120}))

	require.NoError(t, f.agg.Recompute(ctx, entity.StatTypeInventory, entity.StatPeriodDaily))

	s := f.stat(t, "inventory_daily")
	assert.True(t, s.Value.Equal(decimal.NewFromInt(620)), "inventario = 500 + 120 (valor: %s)", s.Value)
}

func TestRecompute_PedidosCuentaNoCanceladosDelPeriodo(t *testing.T) {
	f := newAggFixture()
	ctx := context.Background()
	hoy := time.Now().UnixMilli()
	antiguo := time.Now().AddDate(0, -2, 0).UnixMilli()

	require.NoError(t, f.orders.Insert(ctx, &entity.Order{ID: "o1", Status: entity.OrderStatusPending, CreatedAt: hoy}))
	require.NoError(t, f.orders.Insert(ctx, &entity.Order{ID: "o2", Status: entity.OrderStatusDelivered, CreatedAt: hoy}))
	require.NoError(t, f.orders.Insert(ctx, &entity.Order{ID: "o3", Status: entity.OrderStatusCancelled, CreatedAt: hoy}))
	require.NoError(t, f.orders.Insert(ctx, &entity.Order{ID: "o4", Status: entity.OrderStatusPending, CreatedAt: antiguo}))

	require.NoError(t, f.agg.Recompute(ctx, entity.StatTypeOrders, entity.StatPeriodDaily))

	s := f.stat(t, "orders_daily")
	assert.True(t, s.Value.Equal(decimal.NewFromInt(2)),
		"cuentan los pedidos no cancelados creados hoy (valor: %s)", s.Value)
}

// TestRecompute_VariacionContraValorAnterior: el segundo recálculo calcula la
// variación porcentual contra el valor almacenado y preserva el Target.
func TestRecompute_VariacionContraValorAnterior(t *testing.T) {
	f := newAggFixture()
	ctx := context.Background()
	hoy := time.Now().UnixMilli()

	require.NoError(t, f.invoices.Insert(ctx, &entity.Invoice{
		ID: "f1", TotalAmount: decimal.NewFromInt(100), Status: entity.InvoiceStatusPaid, CreatedAt: hoy,
	}))
	require.NoError(t, f.agg.Recompute(ctx, entity.StatTypeSales, entity.StatPeriodDaily))

	// Fijar un objetivo manualmente, como haría la edición del dashboard.
	primero := f.stat(t, "sales_daily")
	objetivo := decimal.NewFromInt(500)
	primero.Target = &objetivo
	require.NoError(t, f.stats.Upsert(ctx, primero))

	require.NoError(t, f.invoices.Insert(ctx, &entity.Invoice{
		ID: "f2", TotalAmount: decimal.NewFromInt(50), Status: entity.InvoiceStatusPaid, CreatedAt: hoy,
	}))
	require.NoError(t, f.agg.Recompute(ctx, entity.StatTypeSales, entity.StatPeriodDaily))

	s := f.stat(t, "sales_daily")
	assert.True(t, s.Value.Equal(decimal.NewFromInt(150)))
	assert.True(t, s.Change.Equal(decimal.NewFromInt(50)), "variación = (150-100)/100 x 100 = 50%% (valor: %s)", s.Change)
	require.NotNil(t, s.Target, "el recálculo debe preservar el objetivo existente")
	assert.True(t, s.Target.Equal(objetivo))
}

// TestRecompute_UpsertUnSoloRegistroPorClave: recalcular N veces la misma clave
// deja exactamente un registro, nunca duplicados.
func TestRecompute_UpsertUnSoloRegistroPorClave(t *testing.T) {
	f := newAggFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.agg.Recompute(ctx, entity.StatTypeInventory, entity.StatPeriodWeekly))
	}

	list, err := f.stats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "la clave (type, period) debe producir un único registro")
	assert.Equal(t, "inventory_weekly", list[0].StatsID)
}

func TestRecompute_TipoDesconocido(t *testing.T) {
	f := newAggFixture()

	err := f.agg.Recompute(context.Background(), "clima", entity.StatPeriodDaily)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
