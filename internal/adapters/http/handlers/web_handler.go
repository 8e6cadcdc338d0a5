package handlers

import (
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/pagination"
	"chatarra-market/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WebHandler serves the public catalogue
type WebHandler struct {
	ofertaService *services.OfertaService
}

// NewWebHandler creates a new web handler
func NewWebHandler(ofertaService *services.OfertaService) *WebHandler {
	return &WebHandler{ofertaService: ofertaService}
}

// Catalogo lists APROBADA ofertas
// @Summary Public catalogue
// @Tags Web
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param tipoMaterial query string false "Material filter"
// @Success 200 {object} pagination.Response
// @Router /web/ofertas [get]
func (h *WebHandler) Catalogo(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	ofertas, total, err := h.ofertaService.Catalogo(c.UserContext(), c.Query("tipoMaterial"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Error al obtener el catálogo")
	}
	return response.OK(c, pagination.NewResponse(ofertas, params, total))
}

// Detalle returns one APROBADA oferta
// @Summary Public oferta detail
// @Tags Web
// @Produce json
// @Param id path int true "Oferta ID"
// @Success 200 {object} models.OfertaResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /web/ofertas/{id} [get]
func (h *WebHandler) Detalle(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de oferta inválido")
	}

	oferta, err := h.ofertaService.DetallePublico(c.UserContext(), id)
	if err != nil {
		return ofertaError(c, id, err)
	}
	return response.OK(c, oferta)
}
