package middleware

import (
	"errors"
	"strings"

	"chatarra-market/internal/core/domain"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Locals keys set by AuthMiddleware
const (
	LocalUsuarioID = "usuarioID"
	LocalEmail     = "email"
	LocalRol       = "rol"
	LocalTokenID   = "tokenID"
	LocalTokenExp  = "tokenExp"
)

// BearerToken returns the access token from the access_token cookie or the
// Authorization header
func BearerToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// AuthMiddleware rejects requests without a valid access token of an
// active usuario
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := BearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Token de acceso requerido")
		}

		usuario, claims, err := authService.Authenticate(c.UserContext(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return response.Unauthorized(c, "El token ha expirado")
			case errors.Is(err, services.ErrTokenRevoked):
				return response.Unauthorized(c, "El token ha sido revocado")
			case errors.Is(err, services.ErrUserInactive):
				return response.Unauthorized(c, "Usuario inactivo")
			case errors.Is(err, services.ErrInvalidToken):
				return response.Unauthorized(c, "Token inválido")
			default:
				return response.InternalServerError(c, "Error al validar el token")
			}
		}

		c.Locals(LocalUsuarioID, usuario.ID)
		c.Locals(LocalEmail, usuario.Email)
		c.Locals(LocalRol, string(usuario.Rol))
		c.Locals(LocalTokenID, claims.ID)
		c.Locals(LocalTokenExp, claims.ExpiresAt.Time)

		ctx := c.UserContext()
		l := zerolog.Ctx(ctx).With().Uint("usuario_id", usuario.ID).Logger()
		c.SetUserContext(l.WithContext(ctx))

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals(LocalRol).(string)
		if !ok {
			return response.Unauthorized(c, "Token de acceso requerido")
		}

		for _, allowed := range allowedRoles {
			if rol == string(allowed) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "No tiene permisos para acceder a este recurso")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RolAdmin)
}

// VendedorOrAdmin middleware allows VENDEDOR or ADMIN roles
func VendedorOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RolVendedor, domain.RolAdmin)
}

// UsuarioID returns the authenticated usuario ID
func UsuarioID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(LocalUsuarioID).(uint)
	return id, ok
}

// Email returns the authenticated usuario email
func Email(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalEmail).(string)
	return email
}
