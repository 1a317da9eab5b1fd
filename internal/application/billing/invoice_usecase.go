// Package billing gestiona el ledger de facturas. Acoplamiento suelto con
// pedidos: OrderID es solo una referencia, sin cascada en ningún sentido.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/domain"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
	"github.com/ostramar/ostramar-api/internal/domain/repository"
)

// InvoiceUseCase crea facturas y avanza su estado.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoices repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices}
}

// Create valida las líneas, calcula totales e impuesto y persiste la factura en
// estado draft con el historial sembrado.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	if len(in.Items) == 0 || in.TaxRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, entity.InvoiceItem{Description: it.Description, Quantity: it.Quantity, Price: it.Price})
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	now := time.Now().UnixMilli()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: newInvoiceNumber(),
		OrderID:       in.OrderID,
		Items:         items,
		TotalAmount:   total.Round(2),
		Tax:           total.Mul(in.TaxRate).Round(2),
		Status:        entity.InvoiceStatusDraft,
		History: []entity.HistoryEntry{{
			Action: "created",
			To:     entity.InvoiceStatusDraft,
			By:     in.Actor,
			At:     now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.invoices.Insert(ctx, inv); err != nil {
		return nil, fmt.Errorf("insertar factura: %w", err)
	}
	return inv, nil
}

// UpdateStatus avanza el estado de la factura anexando historial. cancelled es terminal.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, invoiceID, status, actor string) error {
	if !entity.ValidInvoiceStatus(status) {
		return domain.ErrInvalidInput
	}
	inv, err := uc.Get(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.Status == entity.InvoiceStatusCancelled {
		return fmt.Errorf("factura %s ya cancelada: %w", invoiceID, domain.ErrInvalidTransition)
	}
	now := time.Now().UnixMilli()
	entry := entity.HistoryEntry{
		Action: "status_update",
		From:   inv.Status,
		To:     status,
		By:     actor,
		At:     now,
	}
	ok, err := uc.invoices.UpdateStatus(ctx, invoiceID, status, entry, now)
	if err != nil {
		return fmt.Errorf("actualizar factura %s: %w", invoiceID, err)
	}
	if !ok {
		return fmt.Errorf("factura %s: %w", invoiceID, domain.ErrInvoiceNotFound)
	}
	return nil
}

// Get devuelve la factura por id.
func (uc *InvoiceUseCase) Get(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	inv, err := uc.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("leer factura %s: %w", invoiceID, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("factura %s: %w", invoiceID, domain.ErrInvoiceNotFound)
	}
	return inv, nil
}

// List devuelve todas las facturas.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]entity.Invoice, error) {
	return uc.invoices.List(ctx)
}

// newInvoiceNumber genera un consecutivo legible, ej. FAC-20260828-7C01B9.
func newInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("FAC-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
