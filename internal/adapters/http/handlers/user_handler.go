package handlers

import (
	"chatarra-market/internal/adapters/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles /api/users endpoints
type UserHandler struct{}

// NewUserHandler creates a new user handler
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile says whose profile was requested
// @Summary Profile owner
// @Tags Users
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string
// @Failure 401 {object} response.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	return c.SendString("El perfil solicitado pertenece a: " + middleware.Email(c))
}
