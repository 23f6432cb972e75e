package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/ports"
	"github.com/seu-repo/campus-assistant/internal/service/assistant"
)

type VoiceHandler struct {
	assistant ports.AssistantService
	log       *zap.Logger
}

func NewVoiceHandler(svc ports.AssistantService, log *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		assistant: svc,
		log:       log,
	}
}

type VoiceRequest struct {
	Audio string `json:"audio"` // Base64
}

// HandleVoice accepts audio either as a multipart "audio" file or as a
// base64 "audio" field in a JSON body.
func (h *VoiceHandler) HandleVoice(c *fiber.Ctx) error {
	audio, err := h.readAudio(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  err.Error(),
			"status": "error",
		})
	}

	reply, err := h.assistant.HandleVoice(c.Context(), audio)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrEmptyInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "No speech detected in audio",
				"status": "error",
			})
		case errors.Is(err, assistant.ErrTranscriptionFailed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Speech recognition could not understand the audio",
				"status": "error",
			})
		case errors.Is(err, assistant.ErrVoiceUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":  "Voice input is not available",
				"status": "error",
			})
		}
		h.log.Error("Voice request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  err.Error(),
			"status": "error",
		})
	}

	return c.JSON(fiber.Map{
		"status":           "success",
		"transcribed_text": reply.Transcript,
		"confidence":       reply.STTConfidence,
		"response":         reply.Result,
		"spoken_text":      reply.SpokenText,
		"timestamp":        time.Now().Format(time.RFC3339),
	})
}

func (h *VoiceHandler) readAudio(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("audio"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, errors.New("unreadable audio file")
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	var req VoiceRequest
	if err := c.BodyParser(&req); err != nil || req.Audio == "" {
		return nil, errors.New("No audio provided")
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		return nil, errors.New("Invalid base64 audio")
	}
	return audio, nil
}
