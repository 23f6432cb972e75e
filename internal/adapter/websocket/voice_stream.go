// Package websocket streams voice turns over a single connection: binary
// audio frames in, JSON replies out.
package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/ports"
)

type VoiceStreamHandler struct {
	assistant ports.AssistantService
	log       *zap.Logger
}

func NewVoiceStreamHandler(assistant ports.AssistantService, log *zap.Logger) *VoiceStreamHandler {
	return &VoiceStreamHandler{
		assistant: assistant,
		log:       log,
	}
}

type streamError struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// HandleVoiceStream runs the per-connection loop. Each binary frame is one
// complete utterance; text frames are ignored.
func (h *VoiceStreamHandler) HandleVoiceStream(c *websocket.Conn) {
	ctx := context.Background()

	for {
		messageType, audio, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		reply, err := h.assistant.HandleVoice(ctx, audio)
		if err != nil {
			h.writeError(c, err)
			continue
		}

		payload, err := json.Marshal(reply)
		if err != nil {
			h.log.Error("Reply marshalling failed", zap.Error(err))
			continue
		}
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.Warn("WebSocket write failed", zap.Error(err))
			return
		}
	}
}

func (h *VoiceStreamHandler) writeError(c *websocket.Conn, err error) {
	msg := "Voice processing failed"
	if errors.Is(err, ports.ErrEmptyInput) {
		msg = "No speech detected in audio"
	}

	payload, _ := json.Marshal(streamError{Error: msg, Status: "error"})
	if writeErr := c.WriteMessage(websocket.TextMessage, payload); writeErr != nil {
		h.log.Warn("WebSocket error write failed", zap.Error(writeErr))
	}
}
