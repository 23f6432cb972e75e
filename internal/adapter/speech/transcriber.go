// Package speech holds the HTTP speech-to-text and text-to-speech clients.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/ports"
	"github.com/seu-repo/campus-assistant/pkg/config"
)

type Transcriber struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	language   string
	cb         *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewTranscriber(cfg config.SpeechConfig, breaker config.CircuitBreakerConfig, log *zap.Logger) ports.Transcriber {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "speech-to-text",
		MaxRequests: breaker.MaxRequests,
		Interval:    breaker.Interval,
		Timeout:     breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= breaker.MinRequests && failureRatio >= breaker.FailureRate
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Transcriber{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.STTEndpoint,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		cb:         cb,
		log:        log,
	}
}

type sttResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (*ports.Transcription, error) {
	result, err := t.cb.Execute(func() (interface{}, error) {
		url := t.endpoint
		if t.language != "" {
			url += "?language=" + t.language
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/octet-stream")
		if t.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+t.apiKey)
		}

		resp, err := t.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("stt api returned %d: %s", resp.StatusCode, data)
		}

		var out sttResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return &ports.Transcription{Text: out.Text, Confidence: out.Confidence}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*ports.Transcription), nil
}
