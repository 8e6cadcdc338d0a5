package response

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Mensaje   string            `json:"mensaje"`
	Path      string            `json:"path"`
	Errores   map[string]string `json:"errores,omitempty"`
}

// MessageResponse carries a plain message
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}

// OK sends data with status 200
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created sends data with status 201
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent sends an empty 204
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Message sends {"mensaje": ...} with status 200
func Message(c *fiber.Ctx, mensaje string) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Mensaje: mensaje})
}

// New builds an error body for the current request
func New(c *fiber.Ctx, statusCode int, mensaje string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now(),
		Status:    statusCode,
		Error:     reason(statusCode),
		Mensaje:   mensaje,
		Path:      c.Path(),
	}
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, mensaje string) error {
	return c.Status(statusCode).JSON(New(c, statusCode, mensaje))
}

// ValidationError sends a 400 with the per-field messages
func ValidationError(c *fiber.Ctx, errores map[string]string) error {
	body := New(c, fiber.StatusBadRequest, "Error de validación")
	body.Errores = errores
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, mensaje string) error {
	return Error(c, fiber.StatusBadRequest, mensaje)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, mensaje string) error {
	return Error(c, fiber.StatusUnauthorized, mensaje)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, mensaje string) error {
	return Error(c, fiber.StatusForbidden, mensaje)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, mensaje string) error {
	return Error(c, fiber.StatusNotFound, mensaje)
}

// Conflict sends a 409 conflict response
func Conflict(c *fiber.Ctx, mensaje string) error {
	return Error(c, fiber.StatusConflict, mensaje)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, mensaje string) error {
	return Error(c, fiber.StatusInternalServerError, mensaje)
}

func reason(statusCode int) string {
	switch statusCode {
	case fiber.StatusUnauthorized:
		return "No autorizado"
	case fiber.StatusForbidden:
		return "Acceso denegado"
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return "Error"
}
