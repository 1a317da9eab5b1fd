package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/application/stats"
)

// DashboardHandler maneja las peticiones HTTP de contadores del dashboard.
// Las escrituras son asíncronas: el handler solo encola el comando de recálculo.
type DashboardHandler struct {
	agg    *stats.Aggregator
	worker *stats.Worker
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(agg *stats.Aggregator, worker *stats.Worker) *DashboardHandler {
	return &DashboardHandler{agg: agg, worker: worker}
}

// List godoc
// @Summary      Listar contadores del dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  dto.StatDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) List(c *fiber.Ctx) error {
	list, err := h.agg.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StatDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StatDTO{
			StatsID:   s.StatsID,
			Type:      s.Type,
			Period:    s.Period,
			Value:     s.Value,
			Change:    s.Change,
			Target:    s.Target,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// Recompute godoc
// @Summary      Encolar recálculo de un contador
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecomputeRequest  true  "type (sales|inventory|orders), period (daily|weekly|monthly)"
// @Success      202   {object}  map[string]string
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/dashboard/recompute [post]
func (h *DashboardHandler) Recompute(c *fiber.Ctx) error {
	var in dto.RecomputeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if !h.worker.Enqueue(stats.Command{Type: in.Type, Period: in.Period}) {
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code: "QUEUE_FULL", Message: "cola de recálculo llena, reintente más tarde",
		})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "recálculo encolado"})
}
