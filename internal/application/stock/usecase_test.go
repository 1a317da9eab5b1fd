package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/application/stock"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/infrastructure/memory"
)

func newUseCaseFixture() (*stock.UseCase, *memory.StockRepo, *memory.OrderRepo) {
	stocks := memory.NewStockRepository()
	orders := memory.NewOrderRepository()
	return stock.NewUseCase(stocks, orders), stocks, orders
}

func TestStockCreate_AltaConEstadoPorDefecto(t *testing.T) {
	uc, _, _ := newUseCaseFixture()

	s, err := uc.Create(context.Background(), dto.CreateStockRequest{
		Name:     "Ostra rizada talla 3",
		Type:     "oyster",
		Quantity: 500,
		Lat:      42.49,
		Lon:      -8.87,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, entity.StockStatusAvailable, s.Status, "sin estado explícito debe quedar available")
	assert.Equal(t, 500, s.Quantity)
	assert.NotZero(t, s.LastUpdated)
}

func TestStockCreate_EntradaInvalida(t *testing.T) {
	uc, _, _ := newUseCaseFixture()

	_, err := uc.Create(context.Background(), dto.CreateStockRequest{Name: "", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin nombre debe fallar")

	_, err = uc.Create(context.Background(), dto.CreateStockRequest{Name: "x", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa debe fallar")

	_, err = uc.Create(context.Background(), dto.CreateStockRequest{Name: "x", Quantity: 1, Status: "volando"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido debe fallar")
}

func TestStockUpdate_NoTocaCantidad(t *testing.T) {
	uc, repo, _ := newUseCaseFixture()
	require.NoError(t, repo.Insert(context.Background(), &entity.Stock{ID: "s1", Name: "original", Quantity: 42}))

	s, err := uc.Update(context.Background(), "s1", dto.UpdateStockRequest{Name: "renombrado", Status: entity.StockStatusInUse})

	require.NoError(t, err)
	assert.Equal(t, "renombrado", s.Name)
	assert.Equal(t, entity.StockStatusInUse, s.Status)
	assert.Equal(t, 42, s.Quantity, "la edición descriptiva nunca muta la cantidad")
}

// TestStockDelete_VetadoPorPedidoActivo verifica el invariante del ledger: un
// ítem referenciado por un pedido no cancelado no se borra físicamente.
func TestStockDelete_VetadoPorPedidoActivo(t *testing.T) {
	uc, stocks, orders := newUseCaseFixture()
	ctx := context.Background()
	require.NoError(t, stocks.Insert(ctx, &entity.Stock{ID: "s1", Quantity: 10}))
	require.NoError(t, orders.Insert(ctx, &entity.Order{
		ID:          "o1",
		OrderNumber: "ORD-20260828-AAAAAA",
		Status:      entity.OrderStatusPending,
		Items:       []entity.OrderItem{{StockID: "s1", Quantity: 3, Price: decimal.NewFromInt(1)}},
	}))

	err := uc.Delete(ctx, "s1")

	assert.ErrorIs(t, err, domain.ErrConflict, "el borrado debe vetarse mientras un pedido activo lo referencia")
	s, _ := stocks.Get(ctx, "s1")
	assert.NotNil(t, s, "el registro debe seguir existiendo")
}

func TestStockDelete_PermitidoSiPedidoCancelado(t *testing.T) {
	uc, stocks, orders := newUseCaseFixture()
	ctx := context.Background()
	require.NoError(t, stocks.Insert(ctx, &entity.Stock{ID: "s1", Quantity: 10}))
	require.NoError(t, orders.Insert(ctx, &entity.Order{
		ID:     "o1",
		Status: entity.OrderStatusCancelled,
		Items:  []entity.OrderItem{{StockID: "s1", Quantity: 3}},
	}))

	require.NoError(t, uc.Delete(ctx, "s1"))
	s, _ := stocks.Get(ctx, "s1")
	assert.Nil(t, s, "un pedido cancelado no veta el borrado")
}
