package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ostramar/ostramar-api/internal/application/billing"
	"github.com/ostramar/ostramar-api/internal/application/dto"
)

// BillingHandler maneja las peticiones HTTP de facturación.
type BillingHandler struct {
	uc *billing.InvoiceUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.InvoiceUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Create crea una factura en estado draft.
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":             inv.ID,
		"invoice_number": inv.InvoiceNumber,
		"total_amount":   inv.TotalAmount,
		"tax":            inv.Tax,
		"status":         inv.Status,
	})
}

// List devuelve todas las facturas.
func (h *BillingHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "invoices": list})
}

// GetByID devuelve una factura.
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// UpdateStatus avanza el estado de una factura.
func (h *BillingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status, in.Actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "factura actualizada"})
}
