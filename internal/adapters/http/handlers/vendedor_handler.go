package handlers

import (
	"errors"

	"chatarra-market/internal/adapters/http/middleware"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/response"
	"chatarra-market/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// VendedorHandler handles /api/vendedor endpoints
type VendedorHandler struct {
	ofertaService    *services.OfertaService
	dashboardService *services.DashboardService
	imagenService    *services.ImagenService
}

// NewVendedorHandler creates a new vendedor handler
func NewVendedorHandler(
	ofertaService *services.OfertaService,
	dashboardService *services.DashboardService,
	imagenService *services.ImagenService,
) *VendedorHandler {
	return &VendedorHandler{
		ofertaService:    ofertaService,
		dashboardService: dashboardService,
		imagenService:    imagenService,
	}
}

// ImagenResponse is returned by SubirImagen
type ImagenResponse struct {
	ImagenURL string `json:"imagenUrl"`
}

// Estadisticas returns the caller's sales statistics
// @Summary Vendedor statistics
// @Tags Vendedor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.EstadisticasVendedor
// @Failure 401 {object} response.ErrorResponse
// @Router /vendedor/estadisticas [get]
func (h *VendedorHandler) Estadisticas(c *fiber.Ctx) error {
	vendedorID, _ := middleware.UsuarioID(c)

	stats, err := h.dashboardService.Estadisticas(c.UserContext(), vendedorID)
	if err != nil {
		return response.InternalServerError(c, "Error al obtener las estadísticas")
	}
	return response.OK(c, stats)
}

// CrearOferta creates an oferta
// @Summary Create oferta
// @Tags Vendedor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.OfertaInput true "Oferta"
// @Success 201 {object} models.OfertaResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /vendedor/ofertas [post]
func (h *VendedorHandler) CrearOferta(c *fiber.Ctx) error {
	input, err := parseOfertaInput(c)
	if err != nil {
		return err
	}
	if input == nil {
		return nil
	}
	vendedorID, _ := middleware.UsuarioID(c)

	oferta, err := h.ofertaService.Crear(c.UserContext(), vendedorID, input)
	if err != nil {
		return response.InternalServerError(c, "Error al crear la oferta")
	}
	return response.Created(c, oferta)
}

// SubirImagen stores an oferta image
// @Summary Upload oferta image
// @Tags Vendedor
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param imagen formData file true "jpg, jpeg, png, gif or webp, up to 5 MB"
// @Success 201 {object} ImagenResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /vendedor/ofertas/imagen [post]
func (h *VendedorHandler) SubirImagen(c *fiber.Ctx) error {
	fh, err := c.FormFile("imagen")
	if err != nil {
		return response.BadRequest(c, "El archivo 'imagen' es obligatorio")
	}

	f, err := fh.Open()
	if err != nil {
		return response.BadRequest(c, "No se pudo leer el archivo")
	}
	defer f.Close()

	url, err := h.imagenService.Subir(c.UserContext(), fh.Filename, fh.Size, f)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImagenEmpty):
			return response.BadRequest(c, "El archivo está vacío")
		case errors.Is(err, services.ErrImagenTooLarge):
			return response.BadRequest(c, "La imagen no puede superar 5 MB")
		case errors.Is(err, services.ErrImagenType):
			return response.BadRequest(c, "Formato no permitido, use jpg, jpeg, png, gif o webp")
		default:
			return response.InternalServerError(c, "Error al guardar la imagen")
		}
	}
	return response.Created(c, ImagenResponse{ImagenURL: url})
}

// MisOfertas lists the caller's ofertas
// @Summary List own ofertas
// @Tags Vendedor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OfertaResponse
// @Router /vendedor/ofertas [get]
func (h *VendedorHandler) MisOfertas(c *fiber.Ctx) error {
	vendedorID, _ := middleware.UsuarioID(c)

	ofertas, err := h.ofertaService.MisOfertas(c.UserContext(), vendedorID)
	if err != nil {
		return response.InternalServerError(c, "Error al obtener las ofertas")
	}
	return response.OK(c, ofertas)
}

// Recientes lists the caller's newest ofertas
// @Summary Recent own ofertas
// @Tags Vendedor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OfertaResponse
// @Router /vendedor/ofertas/recientes [get]
func (h *VendedorHandler) Recientes(c *fiber.Ctx) error {
	vendedorID, _ := middleware.UsuarioID(c)

	ofertas, err := h.ofertaService.Recientes(c.UserContext(), vendedorID)
	if err != nil {
		return response.InternalServerError(c, "Error al obtener las ofertas")
	}
	return response.OK(c, ofertas)
}

// ObtenerOferta returns one of the caller's ofertas
// @Summary Get own oferta
// @Tags Vendedor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Success 200 {object} models.OfertaResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /vendedor/ofertas/{id} [get]
func (h *VendedorHandler) ObtenerOferta(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de oferta inválido")
	}
	vendedorID, _ := middleware.UsuarioID(c)

	oferta, err := h.ofertaService.ObtenerPropia(c.UserContext(), vendedorID, id)
	if err != nil {
		return ofertaError(c, id, err)
	}
	return response.OK(c, oferta)
}

// ActualizarOferta updates a PENDIENTE oferta
// @Summary Update own oferta
// @Tags Vendedor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Param body body services.OfertaInput true "Oferta"
// @Success 200 {object} models.OfertaResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /vendedor/ofertas/{id} [put]
func (h *VendedorHandler) ActualizarOferta(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de oferta inválido")
	}
	input, err := parseOfertaInput(c)
	if err != nil {
		return err
	}
	if input == nil {
		return nil
	}
	vendedorID, _ := middleware.UsuarioID(c)

	oferta, err := h.ofertaService.Actualizar(c.UserContext(), vendedorID, id, input)
	if err != nil {
		return ofertaError(c, id, err)
	}
	return response.OK(c, oferta)
}

// CancelarOferta cancels a PENDIENTE oferta
// @Summary Cancel own oferta
// @Tags Vendedor
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Success 200 {object} models.OfertaResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /vendedor/ofertas/{id}/cancelar [put]
func (h *VendedorHandler) CancelarOferta(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de oferta inválido")
	}
	vendedorID, _ := middleware.UsuarioID(c)

	oferta, err := h.ofertaService.Cancelar(c.UserContext(), vendedorID, id)
	if err != nil {
		return ofertaError(c, id, err)
	}
	return response.OK(c, oferta)
}

// EliminarOferta deletes a PENDIENTE oferta
// @Summary Delete own oferta
// @Tags Vendedor
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /vendedor/ofertas/{id} [delete]
func (h *VendedorHandler) EliminarOferta(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de oferta inválido")
	}
	vendedorID, _ := middleware.UsuarioID(c)

	if err := h.ofertaService.Eliminar(c.UserContext(), vendedorID, id); err != nil {
		return ofertaError(c, id, err)
	}
	return response.NoContent(c)
}

// parseOfertaInput parses and validates the body. A nil input with a nil
// error means the error response was already written.
func parseOfertaInput(c *fiber.Ctx) (*services.OfertaInput, error) {
	var input services.OfertaInput
	if err := c.BodyParser(&input); err != nil {
		return nil, response.BadRequest(c, "Cuerpo de la solicitud inválido")
	}
	input.Trim()
	if errs := validator.Struct(&input); errs != nil {
		return nil, response.ValidationError(c, errs)
	}
	input.RoundAmounts()
	return &input, nil
}
