package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// knownEndpoints is returned on 404 so API consumers can discover the
// surface without documentation.
var knownEndpoints = []string{
	"/",
	"/health",
	"/api/text",
	"/api/voice",
	"/api/chat/history",
	"/api/knowledge/summary",
}

// ErrorHandler converts unhandled errors into the envelope every endpoint
// uses. Internal errors are additionally logged with the request path.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code == fiber.StatusNotFound {
			return c.Status(code).JSON(fiber.Map{
				"error":               "Endpoint not found",
				"status":              "error",
				"available_endpoints": knownEndpoints,
			})
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Request failed", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error":  err.Error(),
			"status": "error",
		})
	}
}
