package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ostramar/ostramar-api/internal/application/billing"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/infrastructure/memory"
)

func newBillingFixture() (*billing.InvoiceUseCase, *memory.InvoiceRepo) {
	repo := memory.NewInvoiceRepository()
	return billing.NewInvoiceUseCase(repo), repo
}

func TestInvoiceCreate_CalculaTotalesEImpuesto(t *testing.T) {
	uc, _ := newBillingFixture()

	inv, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		OrderID: "o1",
		Actor:   "ana@ostramar.com",
		TaxRate: decimal.NewFromFloat(0.19),
		Items: []dto.InvoiceItemRequest{
			{Description: "Ostra talla 3", Quantity: 100, Price: decimal.NewFromFloat(1.25)},
			{Description: "Transporte refrigerado", Quantity: 1, Price: decimal.NewFromInt(45)},
		},
	})

	require.NoError(t, err)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(170)), "total = 100x1.25 + 45 (valor: %s)", inv.TotalAmount)
	assert.True(t, inv.Tax.Equal(decimal.NewFromFloat(32.30)), "impuesto = 170 x 0.19 (valor: %s)", inv.Tax)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status, "la factura nace en borrador")
	assert.Regexp(t, `^FAC-\d{8}-[0-9A-F]{6}$`, inv.InvoiceNumber)
	require.Len(t, inv.History, 1)
	assert.Equal(t, "created", inv.History[0].Action)
}

func TestInvoiceCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newBillingFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas debe fallar")

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{
		TaxRate: decimal.NewFromFloat(-0.1),
		Items:   []dto.InvoiceItemRequest{{Quantity: 1, Price: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tasa negativa debe fallar")

	_, err = uc.Create(ctx, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{Quantity: 0, Price: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe fallar")
}

func TestInvoiceUpdateStatus_AvanzaYAnexaHistorial(t *testing.T) {
	uc, repo := newBillingFixture()
	ctx := context.Background()
	inv, err := uc.Create(ctx, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{Description: "x", Quantity: 1, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(ctx, inv.ID, entity.InvoiceStatusSent, "ana"))
	require.NoError(t, uc.UpdateStatus(ctx, inv.ID, entity.InvoiceStatusPaid, "ana"))

	actual, err := repo.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, actual.Status)
	require.Len(t, actual.History, 3, "created + dos transiciones")
	assert.Equal(t, entity.InvoiceStatusSent, actual.History[2].From)
}

func TestInvoiceUpdateStatus_CanceladaEsTerminal(t *testing.T) {
	uc, _ := newBillingFixture()
	ctx := context.Background()
	inv, err := uc.Create(ctx, dto.CreateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{{Quantity: 1, Price: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(ctx, inv.ID, entity.InvoiceStatusCancelled, "ana"))

	err = uc.UpdateStatus(ctx, inv.ID, entity.InvoiceStatusPaid, "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una factura cancelada no admite más transiciones")
}

func TestInvoiceUpdateStatus_Inexistente(t *testing.T) {
	uc, _ := newBillingFixture()

	err := uc.UpdateStatus(context.Background(), "no-existe", entity.InvoiceStatusPaid, "ana")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestInvoiceUpdateStatus_EstadoDesconocido(t *testing.T) {
	uc, _ := newBillingFixture()

	err := uc.UpdateStatus(context.Background(), "cualquiera", "volando", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
