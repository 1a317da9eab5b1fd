package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/application/traceability"
)

// TraceabilityHandler maneja las peticiones HTTP de trazabilidad de lotes.
type TraceabilityHandler struct {
	uc *traceability.ChainUseCase
}

// NewTraceabilityHandler construye el handler.
func NewTraceabilityHandler(uc *traceability.ChainUseCase) *TraceabilityHandler {
	return &TraceabilityHandler{uc: uc}
}

// CreateBatch godoc
// @Summary      Alta de lote de cosecha (siembra el checkpoint de origen)
// @Tags         traceability
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "product_type, quantity, origin, destination, quality, certifications"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *TraceabilityHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.CreateBatch(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":           b.ID,
		"batch_number": b.BatchNumber,
		"status":       b.Status,
	})
}

// List devuelve todos los lotes.
func (h *TraceabilityHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "batches": list})
}

// GetByID devuelve un lote.
func (h *TraceabilityHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(b)
}

// AddCheckpoint godoc
// @Summary      Anexar checkpoint a la cadena de un lote
// @Tags         traceability
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Batch ID"
// @Param        body  body  dto.AddCheckpointRequest  true  "location, temperature, status, notes"
// @Success      201   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/checkpoints [post]
func (h *TraceabilityHandler) AddCheckpoint(c *fiber.Ctx) error {
	var in dto.AddCheckpointRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cp, err := h.uc.AddCheckpoint(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cp)
}

// Report devuelve el reporte de trayecto de solo lectura.
func (h *TraceabilityHandler) Report(c *fiber.Ctx) error {
	report, err := h.uc.Report(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
