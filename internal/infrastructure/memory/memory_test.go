package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del driver en memoria. El contrato es el mismo que el del driver
// postgres: Get devuelve (nil, nil) para ids inexistentes, las escrituras
// condicionales (CAS) devuelven false sin error cuando pierden la comparación,
// y las lecturas devuelven copias que no comparten slices con el store.
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRepo_GetInexistenteDevuelveNilNil(t *testing.T) {
	repo := memory.NewStockRepository()

	s, err := repo.Get(context.Background(), "no-existe")

	require.NoError(t, err, "un id inexistente no es un error del store")
	assert.Nil(t, s)
}

func TestStockRepo_CASGanaSoloConCantidadEsperada(t *testing.T) {
	repo := memory.NewStockRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &entity.Stock{ID: "s1", Quantity: 10}))

	swapped, err := repo.UpdateQuantityCAS(ctx, "s1", 10, 4, 111)
	require.NoError(t, err)
	assert.True(t, swapped, "con la cantidad esperada el CAS debe ganar")

	swapped, err = repo.UpdateQuantityCAS(ctx, "s1", 10, 2, 222)
	require.NoError(t, err)
	assert.False(t, swapped, "con cantidad ya desfasada el CAS debe perder sin error")

	s, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Quantity, "solo la escritura ganadora debe quedar aplicada")
	assert.Equal(t, int64(111), s.LastUpdated)
}

func TestStockRepo_CASSobreIdInexistente(t *testing.T) {
	repo := memory.NewStockRepository()

	swapped, err := repo.UpdateQuantityCAS(context.Background(), "no-existe", 1, 2, 0)
	require.NoError(t, err)
	assert.False(t, swapped)
}

func TestStockRepo_UpdateNoTocaCantidad(t *testing.T) {
	repo := memory.NewStockRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &entity.Stock{ID: "s1", Name: "original", Quantity: 42}))

	require.NoError(t, repo.Update(ctx, &entity.Stock{ID: "s1", Name: "editado", Quantity: 999}))

	s, _ := repo.Get(ctx, "s1")
	assert.Equal(t, "editado", s.Name)
	assert.Equal(t, 42, s.Quantity, "Update reescribe campos descriptivos, nunca la cantidad")
}

func TestOrderRepo_StatusCASProtegeContraEscritorConcurrente(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &entity.Order{ID: "o1", Status: entity.OrderStatusPending}))
	entry := entity.HistoryEntry{Action: "status_update", From: "pending", To: "cancelled", By: "ana", At: 1}

	swapped, err := repo.UpdateStatusCAS(ctx, "o1", entity.OrderStatusPending, entity.OrderStatusCancelled, entry, 1)
	require.NoError(t, err)
	assert.True(t, swapped)

	// Segundo escritor con la misma precondición, ya desfasada.
	swapped, err = repo.UpdateStatusCAS(ctx, "o1", entity.OrderStatusPending, entity.OrderStatusCancelled, entry, 2)
	require.NoError(t, err)
	assert.False(t, swapped, "el CAS sobre status debe perder si el estado ya cambió")

	o, _ := repo.Get(ctx, "o1")
	assert.Equal(t, entity.OrderStatusCancelled, o.Status)
	assert.Len(t, o.History, 1, "la entrada de historial se anexa solo en la escritura ganadora")
}

func TestOrderRepo_GetDevuelveCopia(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &entity.Order{
		ID:     "o1",
		Status: entity.OrderStatusPending,
		Items:  []entity.OrderItem{{StockID: "s1", Quantity: 3}},
	}))

	o1, _ := repo.Get(ctx, "o1")
	o1.Items[0].Quantity = 999

	o2, _ := repo.Get(ctx, "o1")
	assert.Equal(t, 3, o2.Items[0].Quantity, "mutar la copia leída no debe afectar al store")
}

func TestBatchRepo_AppendCheckpointReflejaUbicacionYEstado(t *testing.T) {
	repo := memory.NewBatchRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &entity.Batch{
		ID:              "b1",
		Status:          entity.BatchStatusInTransit,
		CurrentLocation: "Muelle A",
		Checkpoints:     []entity.Checkpoint{{Location: "Muelle A", Status: entity.BatchStatusInTransit}},
	}))

	ok, err := repo.AppendCheckpoint(ctx, "b1", entity.Checkpoint{
		Location: "Muelle B", Status: entity.BatchStatusDelivered, Temperature: 4.2,
	})
	require.NoError(t, err)
	require.True(t, ok)

	b, _ := repo.Get(ctx, "b1")
	require.Len(t, b.Checkpoints, 2)
	assert.Equal(t, "Muelle B", b.CurrentLocation)
	assert.Equal(t, entity.BatchStatusDelivered, b.Status)
	assert.Equal(t, "Muelle A", b.Checkpoints[0].Location, "los checkpoints existentes no se tocan")
}

func TestBatchRepo_AppendSobreIdInexistente(t *testing.T) {
	repo := memory.NewBatchRepository()

	ok, err := repo.AppendCheckpoint(context.Background(), "no-existe", entity.Checkpoint{Location: "x"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsRepo_UpsertSobreescribePorClave(t *testing.T) {
	repo := memory.NewStatsRepository()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &entity.DashboardStat{StatsID: "sales_daily", Type: "sales", Period: "daily"}))
	require.NoError(t, repo.Upsert(ctx, &entity.DashboardStat{StatsID: "sales_daily", Type: "sales", Period: "daily", UpdatedAt: 99}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "upsert por la misma clave no debe duplicar")
	assert.Equal(t, int64(99), list[0].UpdatedAt)
}
