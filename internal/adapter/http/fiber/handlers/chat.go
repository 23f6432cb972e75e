package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/ports"
)

type ChatHandler struct {
	assistant ports.AssistantService
	version   string
	log       *zap.Logger
}

func NewChatHandler(assistant ports.AssistantService, version string, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		version:   version,
		log:       log,
	}
}

// Home describes the API surface for anyone poking the root path.
func (h *ChatHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Campus Assistant API",
		"version": h.version,
		"status":  "running",
		"endpoints": fiber.Map{
			"health":       "/health",
			"text_input":   "/api/text",
			"voice_input":  "/api/voice",
			"chat_history": "/api/chat/history",
			"knowledge":    "/api/knowledge",
		},
	})
}

type TextRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) HandleText(c *fiber.Ctx) error {
	var req TextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid request body",
			"status": "error",
		})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Missing required field: text",
			"status": "error",
		})
	}

	result, err := h.assistant.HandleText(c.Context(), req.Text)
	if err != nil {
		if errors.Is(err, ports.ErrEmptyInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Missing required field: text",
				"status": "error",
			})
		}
		h.log.Error("Text request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"status": "error",
		})
	}

	return c.JSON(fiber.Map{
		"status":    "success",
		"input":     req.Text,
		"response":  result,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *ChatHandler) History(c *fiber.Ctx) error {
	history := h.assistant.History(c.Context())
	return c.JSON(fiber.Map{
		"status":  "success",
		"history": history,
	})
}
