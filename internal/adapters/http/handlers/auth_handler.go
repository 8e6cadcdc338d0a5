package handlers

import (
	"errors"
	"time"

	"chatarra-market/internal/adapters/http/middleware"
	"chatarra-market/internal/config"
	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/response"
	"chatarra-market/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// RefreshRequest is the optional body of /auth/refresh and /auth/logout
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register handles usuario registration
// @Summary Register new vendedor
// @Description Creates a VENDEDOR account and signs it in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationError(c, errs)
	}

	result, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return response.BadRequest(c, "El email ya está registrado")
		}
		return response.InternalServerError(c, "Error al registrar el usuario")
	}

	h.setAuthCookies(c, result.Token, result.RefreshToken)
	return response.Created(c, result)
}

// Login handles usuario login
// @Summary Login
// @Description Authenticates by email and password and returns tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Cuerpo de la solicitud inválido")
	}
	if errs := validator.Struct(&req); errs != nil {
		return response.ValidationError(c, errs)
	}

	result, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.Unauthorized(c, "Email o contraseña incorrectos")
		case errors.Is(err, services.ErrUserInactive):
			return response.Forbidden(c, "La cuenta de usuario está inactiva")
		default:
			return response.InternalServerError(c, "Error al iniciar sesión")
		}
	}

	h.setAuthCookies(c, result.Token, result.RefreshToken)
	return response.OK(c, result)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Rotates the refresh token from the cookie or the body
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token, when not sent as cookie"
// @Success 200 {object} services.AuthResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := h.refreshTokenFrom(c)
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token requerido")
	}

	result, err := h.authService.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "El refresh token ha expirado, inicie sesión nuevamente")
		case errors.Is(err, services.ErrTokenRevoked):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "El refresh token ha sido revocado, inicie sesión nuevamente")
		case errors.Is(err, services.ErrInvalidToken):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Refresh token inválido")
		case errors.Is(err, services.ErrUserInactive):
			h.clearAuthCookies(c)
			return response.Forbidden(c, "La cuenta de usuario está inactiva")
		default:
			return response.InternalServerError(c, "Error al renovar el token")
		}
	}

	h.setAuthCookies(c, result.Token, result.RefreshToken)
	return response.OK(c, result)
}

// Logout handles logout
// @Summary Logout
// @Description Revokes the refresh token and invalidates the presented access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token, when not sent as cookie"
// @Success 200 {object} response.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), h.refreshTokenFrom(c), middleware.BearerToken(c)); err != nil {
		return response.InternalServerError(c, "Error al cerrar sesión")
	}

	h.clearAuthCookies(c)
	return response.Message(c, "Sesión cerrada correctamente")
}

// LogoutAll handles logout from all devices
// @Summary Logout from all devices
// @Description Revokes every refresh token of the caller
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	usuarioID, ok := middleware.UsuarioID(c)
	if !ok {
		return response.Unauthorized(c, "Token de acceso requerido")
	}

	if err := h.authService.LogoutAll(c.UserContext(), usuarioID); err != nil {
		return response.InternalServerError(c, "Error al cerrar las sesiones")
	}
	// the current access token would otherwise stay valid until it expires
	if jti, ok := c.Locals(middleware.LocalTokenID).(string); ok {
		exp, _ := c.Locals(middleware.LocalTokenExp).(time.Time)
		if err := h.authService.RevokeAccessToken(c.UserContext(), jti, exp); err != nil {
			zerolog.Ctx(c.UserContext()).Warn().Err(err).Uint("usuario_id", usuarioID).Msg("no se pudo invalidar el access token")
		}
	}

	h.clearAuthCookies(c)
	return response.Message(c, "Todas las sesiones fueron cerradas")
}

// Me returns the current usuario
// @Summary Current usuario
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UsuarioResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	usuarioID, ok := middleware.UsuarioID(c)
	if !ok {
		return response.Unauthorized(c, "Token de acceso requerido")
	}

	usuario, err := h.authService.GetUsuarioByID(c.UserContext(), usuarioID)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			return response.NotFound(c, "Usuario no encontrado")
		}
		return response.InternalServerError(c, "Error al obtener el usuario")
	}

	return response.OK(c, usuario.ToResponse())
}

// Test is a liveness probe for the auth module
// @Summary Auth test
// @Tags Auth
// @Produce plain
// @Success 200 {string} string
// @Router /auth/test [get]
func (h *AuthHandler) Test(c *fiber.Ctx) error {
	return c.SendString("API de autenticación funcionando correctamente")
}

// Info describes the auth module
// @Summary Auth info
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/info [get]
func (h *AuthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"nombre":      "Chatarra Market API",
		"version":     "1.0.0",
		"descripcion": "Autenticación JWT para vendedores y administradores",
		"endpoints": fiber.Map{
			"register":   "POST /api/auth/register",
			"login":      "POST /api/auth/login",
			"refresh":    "POST /api/auth/refresh",
			"logout":     "POST /api/auth/logout",
			"logout-all": "POST /api/auth/logout-all",
			"me":         "GET /api/auth/me",
			"test":       "GET /api/auth/test",
		},
		"estado": "activo",
	})
}

func (h *AuthHandler) refreshTokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies("refresh_token"); token != "" {
		return token
	}
	var req RefreshRequest
	if len(c.Body()) > 0 && c.BodyParser(&req) == nil {
		return req.RefreshToken
	}
	return ""
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Now().Add(-1 * time.Hour),
			Secure:   h.cfg.Cookie.Secure,
			HTTPOnly: true,
			SameSite: h.cfg.Cookie.SameSite,
			Domain:   h.cfg.Cookie.Domain,
		})
	}
}
