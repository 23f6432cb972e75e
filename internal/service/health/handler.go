package health

import (
	"github.com/gofiber/fiber/v2"
)

// FiberHandler exposes the probes over HTTP. /health reports liveness and
// always answers 200; /ready answers 503 until every checker passes.
type FiberHandler struct {
	service *Service
}

func NewFiberHandler(service *Service) *FiberHandler {
	return &FiberHandler{service: service}
}

// RegisterRoutes mounts the probes, including the Kubernetes-style aliases.
func (h *FiberHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/healthz", h.Health)
	app.Get("/ready", h.Ready)
	app.Get("/readyz", h.Ready)
}

func (h *FiberHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.service.Health(c.Context()))
}

func (h *FiberHandler) Ready(c *fiber.Ctx) error {
	response := h.service.Ready(c.Context())
	if !response.Ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}
	return c.JSON(response)
}
