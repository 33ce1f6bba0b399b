package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"contentdash/internal/models"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.MessageResponse{Message: message})
}

// internalError logs err and returns a 500. The error detail is only
// exposed in development.
func internalError(c fiber.Ctx, dev bool, message string, err error) error {
	slog.Error(message, "path", c.Path(), "error", err)
	if dev && err != nil {
		message += ": " + err.Error()
	}
	return jsonError(c, fiber.StatusInternalServerError, message)
}
