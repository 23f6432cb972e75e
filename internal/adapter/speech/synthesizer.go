package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/ports"
	"github.com/seu-repo/campus-assistant/pkg/config"
)

// Synthesizer posts a reply to the text-to-speech backend, which plays or
// streams it on its own side. The synthesized audio is not consumed here.
type Synthesizer struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	language   string
	log        *zap.Logger
}

func NewSynthesizer(cfg config.SpeechConfig, log *zap.Logger) ports.Synthesizer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Synthesizer{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.TTSEndpoint,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		log:        log,
	}
}

func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"text":     text,
		"language": s.language,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tts api returned %d", resp.StatusCode)
	}
	return nil
}
