package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ostramar/ostramar-api/internal/application/dto"
	"github.com/ostramar/ostramar-api/internal/application/stock"
	"github.com/ostramar/ostramar-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP de inventario.
type StockHandler struct {
	uc       *stock.UseCase
	reservas *stock.ReservationService
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, reservas *stock.ReservationService) *StockHandler {
	return &StockHandler{uc: uc, reservas: reservas}
}

// Create godoc
// @Summary      Alta de ítem de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "name, type, status, quantity, lat, lon"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockResponse(s))
}

// List godoc
// @Summary      Listar stock
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	stocks, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for i := range stocks {
		out = append(out, toStockResponse(&stocks[i]))
	}
	return c.JSON(out)
}

// GetByID devuelve un ítem de stock.
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponse(s))
}

// Update edita los campos descriptivos de un ítem.
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponse(s))
}

// AdjustQuantity godoc
// @Summary      Ajuste administrativo de cantidad absoluta
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Stock ID"
// @Param        body  body  dto.AdjustQuantityRequest  true  "quantity"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/{id}/quantity [put]
func (h *StockHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.reservas.AdminAdjust(c.Context(), c.Params("id"), in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cantidad ajustada"})
}

// Delete elimina un ítem no referenciado por pedidos activos.
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock eliminado"})
}

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ID:          s.ID,
		Name:        s.Name,
		Type:        s.Type,
		Status:      s.Status,
		Quantity:    s.Quantity,
		Lat:         s.Location.Lat,
		Lon:         s.Location.Lon,
		LastUpdated: s.LastUpdated,
	}
}
