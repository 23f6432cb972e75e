package ports

import (
	"context"
	"errors"

	"github.com/seu-repo/campus-assistant/internal/domain"
)

// ErrEmptyInput is returned when a request carries no text or audio.
var ErrEmptyInput = errors.New("empty input")

type Classifier interface {
	Classify(ctx context.Context, rawText string) (*domain.ClassifiedInput, error)
}

type Responder interface {
	// Generate never fails: internal errors degrade to an apologetic result
	// with response_type "error".
	Generate(ctx context.Context, classified *domain.ClassifiedInput, mode domain.InputMode) *domain.ResponseResult
	// Fallback is the explicit no-intent-detected path.
	Fallback() *domain.ResponseResult
	// FormatForVoice renders a result as speech-friendly text.
	FormatForVoice(result *domain.ResponseResult) string
}

// AssistantService sequences classification and generation and is the
// system's single error boundary.
type AssistantService interface {
	HandleText(ctx context.Context, text string) (*domain.ResponseResult, error)
	HandleVoice(ctx context.Context, audio []byte) (*domain.VoiceReply, error)
	History(ctx context.Context) []domain.ChatMessage
}

// Translator detects and translates input language. Both operations report
// failure through their error value; callers fall back to the original text
// deterministically rather than aborting the request.
type Translator interface {
	Detect(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

type Transcription struct {
	Text       string
	Confidence float64
}

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (*Transcription, error)
}

// Synthesizer speaks a reply. Fire-and-forget: the core never consumes a
// return value beyond the error used for logging.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

type ChatTurn struct {
	Role    string
	Content string
}

// Completer is the LLM-backed alternative reply path.
type Completer interface {
	Complete(ctx context.Context, turns []ChatTurn) (string, error)
}
