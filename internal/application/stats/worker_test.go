package stats_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ostramar/ostramar-api/internal/application/stats"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/pkg/logger"
)

func TestWorker_RecomputeAllCubreTodasLasClaves(t *testing.T) {
	f := newAggFixture()
	w := stats.NewWorker(f.agg, 4, 0, logger.Nop())

	w.RecomputeAll(context.Background())

	list, err := f.stats.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 9, "3 tipos x 3 periodos = 9 contadores")
}

func TestWorker_EnqueueDevuelveFalseConColaLlena(t *testing.T) {
	f := newAggFixture()
	// Worker sin arrancar: nadie consume, la cola de 2 se llena.
	w := stats.NewWorker(f.agg, 2, 0, logger.Nop())
	cmd := stats.Command{Type: entity.StatTypeSales, Period: entity.StatPeriodDaily}

	assert.True(t, w.Enqueue(cmd))
	assert.True(t, w.Enqueue(cmd))
	assert.False(t, w.Enqueue(cmd), "con la cola llena Enqueue debe devolver false sin bloquear")
}

func TestWorker_ConsumeComandosEncolados(t *testing.T) {
	f := newAggFixture()
	w := stats.NewWorker(f.agg, 4, 0, logger.Nop())
	w.Start(context.Background())
	defer w.Stop()

	require.True(t, w.Enqueue(stats.Command{Type: entity.StatTypeInventory, Period: entity.StatPeriodDaily}))

	assert.Eventually(t, func() bool {
		s, err := f.stats.Get(context.Background(), "inventory_daily")
		return err == nil && s != nil
	}, 2*time.Second, 10*time.Millisecond, "el worker debe procesar el comando encolado")
}
