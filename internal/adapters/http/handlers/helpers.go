package handlers

import (
	"errors"
	"fmt"

	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// paramID parses the :id route parameter
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}

// ofertaError maps oferta service errors to responses
func ofertaError(c *fiber.Ctx, id uint, err error) error {
	switch {
	case errors.Is(err, domain.ErrOfertaNotFound):
		return response.NotFound(c, fmt.Sprintf("Oferta no encontrada con ID: %d", id))
	case errors.Is(err, domain.ErrNotOfertaOwner):
		return response.Forbidden(c, "No tiene permisos para acceder a esta oferta")
	case errors.Is(err, domain.ErrOfertaNotEditable):
		return response.Conflict(c, "Solo se pueden modificar ofertas en estado PENDIENTE")
	case errors.Is(err, domain.ErrTransitionForbidden):
		return response.Conflict(c, "Transición de estado no permitida")
	case errors.Is(err, domain.ErrInvalidEstado):
		return response.BadRequest(c, "Estado de oferta inválido")
	default:
		zerolog.Ctx(c.UserContext()).Error().Err(err).Uint("oferta_id", id).Msg("oferta request failed")
		return response.InternalServerError(c, "Error al procesar la oferta")
	}
}
