package handlers

import (
	"errors"
	"fmt"

	"chatarra-market/internal/adapters/http/middleware"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/response"
	"chatarra-market/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AdminHandler handles /api/admin endpoints
type AdminHandler struct {
	usuarioService   *services.UsuarioService
	ofertaService    *services.OfertaService
	dashboardService *services.DashboardService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	usuarioService *services.UsuarioService,
	ofertaService *services.OfertaService,
	dashboardService *services.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		usuarioService:   usuarioService,
		ofertaService:    ofertaService,
		dashboardService: dashboardService,
	}
}

// CambiarRolRequest is the body of PUT /admin/usuarios/:id/rol
type CambiarRolRequest struct {
	NewRole string `json:"newRole" validate:"required"`
}

// CambiarEstadoUsuarioRequest is the body of PUT /admin/usuarios/:id/estado
type CambiarEstadoUsuarioRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}

// CambiarEstadoOfertaRequest is the body of PUT /admin/ofertas/:id
type CambiarEstadoOfertaRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ============================================================
// Usuarios
// ============================================================

// ListarUsuarios lists every usuario
// @Summary List usuarios
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UsuarioResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /admin/usuarios [get]
func (h *AdminHandler) ListarUsuarios(c *fiber.Ctx) error {
	usuarios, err := h.usuarioService.List(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Error al obtener los usuarios")
	}
	return response.OK(c, usuarios)
}

// ObtenerUsuario returns one usuario
// @Summary Get usuario
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} models.UsuarioResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/usuarios/{id} [get]
func (h *AdminHandler) ObtenerUsuario(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de usuario inválido")
	}

	usuario, err := h.usuarioService.Get(c.UserContext(), id)
	if err != nil {
		return usuarioError(c, id, err)
	}
	return response.OK(c, usuario)
}

// CambiarRol changes the rol of a usuario
// @Summary Change usuario rol
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Param body body CambiarRolRequest true "VENDEDOR or ADMIN"
// @Success 200 {object} models.UsuarioResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/usuarios/{id}/rol [put]
func (h *AdminHandler) CambiarRol(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de usuario inválido")
	}
	var req CambiarRolRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationError(c, errs)
	}
	adminID, _ := middleware.UsuarioID(c)

	usuario, err := h.usuarioService.CambiarRol(c.UserContext(), adminID, id, req.NewRole)
	if err != nil {
		return usuarioError(c, id, err)
	}
	return response.OK(c, usuario)
}

// CambiarEstadoUsuario activates or deactivates a usuario
// @Summary Change usuario activo flag
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Param body body CambiarEstadoUsuarioRequest true "Activo"
// @Success 200 {object} models.UsuarioResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/usuarios/{id}/estado [put]
func (h *AdminHandler) CambiarEstadoUsuario(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de usuario inválido")
	}
	var req CambiarEstadoUsuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationError(c, errs)
	}
	adminID, _ := middleware.UsuarioID(c)

	usuario, err := h.usuarioService.CambiarEstado(c.UserContext(), adminID, id, *req.Activo)
	if err != nil {
		return usuarioError(c, id, err)
	}
	return response.OK(c, usuario)
}

// ============================================================
// Ofertas
// ============================================================

// ListarOfertas lists every oferta
// @Summary List ofertas
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param estado query string false "PENDIENTE, APROBADA, RECHAZADA, VENDIDA or CANCELADA"
// @Success 200 {array} models.OfertaResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /admin/ofertas [get]
func (h *AdminHandler) ListarOfertas(c *fiber.Ctx) error {
	ofertas, err := h.ofertaService.Listar(c.UserContext(), c.Query("estado"))
	if err != nil {
		return ofertaError(c, 0, err)
	}
	return response.OK(c, ofertas)
}

// ObtenerOferta returns any oferta
// @Summary Get oferta
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Success 200 {object} models.OfertaResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /admin/ofertas/{id} [get]
func (h *AdminHandler) ObtenerOferta(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de oferta inválido")
	}

	oferta, err := h.ofertaService.Obtener(c.UserContext(), id)
	if err != nil {
		return ofertaError(c, id, err)
	}
	return response.OK(c, oferta)
}

// CambiarEstadoOferta applies an estado transition
// @Summary Change oferta estado
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Param body body CambiarEstadoOfertaRequest true "APROBADA, RECHAZADA or VENDIDA"
// @Success 200 {object} models.OfertaResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/ofertas/{id} [put]
func (h *AdminHandler) CambiarEstadoOferta(c *fiber.Ctx) error {
	var req CambiarEstadoOfertaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationError(c, errs)
	}
	return h.cambiarEstado(c, req.Estado)
}

// Aprobar moves an oferta to APROBADA
// @Summary Approve oferta
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Success 200 {object} models.OfertaResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/ofertas/{id}/aprobar [put]
func (h *AdminHandler) Aprobar(c *fiber.Ctx) error {
	return h.cambiarEstado(c, string(domain.EstadoAprobada))
}

// Rechazar moves an oferta to RECHAZADA
// @Summary Reject oferta
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Success 200 {object} models.OfertaResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/ofertas/{id}/rechazar [put]
func (h *AdminHandler) Rechazar(c *fiber.Ctx) error {
	return h.cambiarEstado(c, string(domain.EstadoRechazada))
}

// Vendida moves an oferta to VENDIDA
// @Summary Mark oferta as sold
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Oferta ID"
// @Success 200 {object} models.OfertaResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /admin/ofertas/{id}/vendida [put]
func (h *AdminHandler) Vendida(c *fiber.Ctx) error {
	return h.cambiarEstado(c, string(domain.EstadoVendida))
}

func (h *AdminHandler) cambiarEstado(c *fiber.Ctx, estado string) error {
	id, err := paramID(c)
	if err != nil {
		return response.BadRequest(c, "ID de oferta inválido")
	}
	adminID, _ := middleware.UsuarioID(c)

	oferta, err := h.ofertaService.CambiarEstado(c.UserContext(), adminID, id, estado)
	if err != nil {
		return ofertaError(c, id, err)
	}
	return response.OK(c, oferta)
}

// Dashboard returns global counters
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.AdminDashboard
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.AdminDashboard(c.UserContext())
	if err != nil {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("admin dashboard failed")
		return response.InternalServerError(c, "Error al obtener el dashboard")
	}
	return response.OK(c, data)
}

func usuarioError(c *fiber.Ctx, id uint, err error) error {
	switch {
	case errors.Is(err, domain.ErrUsuarioNotFound):
		return response.NotFound(c, fmt.Sprintf("Usuario no encontrado con ID: %d", id))
	case errors.Is(err, domain.ErrInvalidRol):
		return response.BadRequest(c, "Rol inválido, use VENDEDOR o ADMIN")
	case errors.Is(err, services.ErrCannotChangeOwnRole):
		return response.Conflict(c, "No puede cambiar su propio rol")
	case errors.Is(err, services.ErrCannotDeactivateSelf):
		return response.Conflict(c, "No puede desactivar su propia cuenta")
	default:
		zerolog.Ctx(c.UserContext()).Error().Err(err).Uint("usuario_id", id).Msg("usuario request failed")
		return response.InternalServerError(c, "Error al procesar el usuario")
	}
}
