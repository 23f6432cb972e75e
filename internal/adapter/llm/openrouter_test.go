package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/ports"
	"github.com/seu-repo/campus-assistant/pkg/config"
)

func newTestClient(baseURL string, breaker config.CircuitBreakerConfig) ports.Completer {
	return NewClient(config.LLMConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
		Referer: "https://campus.example",
		Title:   "Campus Assistant",
	}, breaker, zap.NewNop())
}

func TestComplete_ReturnsContentAndSendsAttributionHeaders(t *testing.T) {
	// Arrange
	var gotReferer, gotTitle string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"the library opens at 8"}}],"usage":{"prompt_tokens":10,"completion_tokens":5}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, config.CircuitBreakerConfig{
		MaxRequests: 1,
		MinRequests: 3,
		FailureRate: 0.5,
	})

	// Act
	got, err := client.Complete(context.Background(), []ports.ChatTurn{
		{Role: "user", Content: "when does the library open"},
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the library opens at 8" {
		t.Errorf("unexpected completion: %q", got)
	}
	if gotReferer != "https://campus.example" || gotTitle != "Campus Assistant" {
		t.Errorf("expected attribution headers, got referer=%q title=%q", gotReferer, gotTitle)
	}
}

func TestComplete_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, config.CircuitBreakerConfig{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		MinRequests: 3,
		FailureRate: 0.5,
	})
	turns := []ports.ChatTurn{{Role: "user", Content: "hello"}}

	// Act
	for i := 0; i < 3; i++ {
		if _, err := client.Complete(context.Background(), turns); err == nil {
			t.Fatal("expected an error from the failing backend")
		}
	}
	_, err := client.Complete(context.Background(), turns)

	// Assert
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected the circuit to be open, got %v", err)
	}
}
