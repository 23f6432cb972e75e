// Package translate talks to a LibreTranslate-compatible HTTP API for
// language detection and translation. Calls run behind a circuit breaker so
// a flapping backend degrades to untranslated input instead of stalling
// every request.
package translate

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

type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewClient(cfg config.TranslateConfig, breaker config.CircuitBreakerConfig, log *zap.Logger) ports.Translator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "translate",
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

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		cb:         cb,
		log:        log,
	}
}

type detectResponse struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	body := map[string]string{"q": text, "api_key": c.apiKey}

	var out []detectResponse
	if err := c.post(ctx, c.endpoint+"/detect", body, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("empty detection response")
	}
	return out[0].Language, nil
}

func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	body := map[string]string{
		"q":       text,
		"source":  "auto",
		"target":  targetLang,
		"api_key": c.apiKey,
	}

	var out translateResponse
	if err := c.post(ctx, c.endpoint+"/translate", body, &out); err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}

func (c *Client) post(ctx context.Context, url string, body, out interface{}) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("translate api returned %d: %s", resp.StatusCode, data)
		}

		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	return err
}
