package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/mocks"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

func TestHandleText_EmptyInputRejected(t *testing.T) {
	// Arrange
	svc := NewService(&mocks.MockClassifier{}, &mocks.MockResponder{}, Options{}, zap.NewNop())

	// Act
	_, err := svc.HandleText(context.Background(), "   ")

	// Assert
	if !errors.Is(err, ports.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestHandleText_ResultCarriesRequestIDAndHistory(t *testing.T) {
	// Arrange
	svc := NewService(&mocks.MockClassifier{}, &mocks.MockResponder{}, Options{HistoryLimit: 10}, zap.NewNop())

	// Act
	result, err := svc.HandleText(context.Background(), "where is the library")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Metadata.RequestID == "" {
		t.Error("expected a request id")
	}
	history := svc.History(context.Background())
	if len(history) != 3 {
		t.Fatalf("expected welcome, user and bot messages in history, got %d", len(history))
	}
	if history[0].Sender != domain.ChatSenderBot {
		t.Errorf("expected a seeded bot welcome, got %+v", history[0])
	}
	if history[1].Sender != domain.ChatSenderUser || history[1].Text != "where is the library" {
		t.Errorf("unexpected user history entry: %+v", history[1])
	}
	if history[2].Sender != domain.ChatSenderBot || history[2].Text != result.Response {
		t.Errorf("unexpected bot history entry: %+v", history[2])
	}
}

func TestHandleText_ClassifierErrorDegradesToErrorResult(t *testing.T) {
	// Arrange
	classifier := &mocks.MockClassifier{
		ClassifyFunc: func(ctx context.Context, rawText string) (*domain.ClassifiedInput, error) {
			return nil, errors.New("translator unreachable")
		},
	}
	responder := &mocks.MockResponder{
		GenerateFunc: func(ctx context.Context, classified *domain.ClassifiedInput, mode domain.InputMode) *domain.ResponseResult {
			if classified != nil {
				t.Error("expected nil classified input on classifier failure")
			}
			return &domain.ResponseResult{Response: "apology", ResponseType: domain.ResponseTypeError, Intent: domain.IntentUnknown}
		},
	}
	svc := NewService(classifier, responder, Options{}, zap.NewNop())

	// Act
	result, err := svc.HandleText(context.Background(), "bonjour")

	// Assert
	if err != nil {
		t.Fatalf("expected degraded result, not error, got %v", err)
	}
	if result.ResponseType != domain.ResponseTypeError {
		t.Errorf("expected error response type, got %q", result.ResponseType)
	}
}

func TestHandleText_LowConfidenceGeneralInquiryConsultsModel(t *testing.T) {
	// Arrange
	classifier := &mocks.MockClassifier{
		ClassifyFunc: func(ctx context.Context, rawText string) (*domain.ClassifiedInput, error) {
			return &domain.ClassifiedInput{
				RawText:        rawText,
				TranslatedText: rawText,
				Intent:         domain.Intent{Primary: domain.IntentGeneralInquiry, Confidence: 0.5},
			}, nil
		},
	}
	var gotTurns []ports.ChatTurn
	completer := &mocks.MockCompleter{
		CompleteFunc: func(ctx context.Context, turns []ports.ChatTurn) (string, error) {
			gotTurns = turns
			return "The bursar's office is in the admin building.", nil
		},
	}
	svc := NewService(classifier, &mocks.MockResponder{}, Options{
		Completer:          completer,
		LLMEnabled:         true,
		LLMConfidenceFloor: 0.6,
	}, zap.NewNop())

	// Act
	result, err := svc.HandleText(context.Background(), "where do I pay tuition")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Response != "The bursar's office is in the admin building." {
		t.Errorf("expected model reply, got %q", result.Response)
	}
	if len(gotTurns) < 2 || gotTurns[0].Role != "system" {
		t.Fatalf("expected system turn first, got %+v", gotTurns)
	}
	if gotTurns[len(gotTurns)-1].Content != "where do I pay tuition" {
		t.Errorf("expected user text as final turn, got %+v", gotTurns[len(gotTurns)-1])
	}
}

func TestHandleText_ConfidentIntentSkipsModel(t *testing.T) {
	// Arrange
	classifier := &mocks.MockClassifier{
		ClassifyFunc: func(ctx context.Context, rawText string) (*domain.ClassifiedInput, error) {
			return &domain.ClassifiedInput{
				RawText: rawText,
				Intent:  domain.Intent{Primary: domain.IntentLibrary, Confidence: 0.9},
			}, nil
		},
	}
	completer := &mocks.MockCompleter{
		CompleteFunc: func(ctx context.Context, turns []ports.ChatTurn) (string, error) {
			t.Fatal("model must not be consulted for confident intents")
			return "", nil
		},
	}
	svc := NewService(classifier, &mocks.MockResponder{}, Options{
		Completer:          completer,
		LLMEnabled:         true,
		LLMConfidenceFloor: 0.6,
	}, zap.NewNop())

	// Act
	if _, err := svc.HandleText(context.Background(), "where is the library"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleText_ModelFailureKeepsTemplatedReply(t *testing.T) {
	// Arrange
	classifier := &mocks.MockClassifier{
		ClassifyFunc: func(ctx context.Context, rawText string) (*domain.ClassifiedInput, error) {
			return &domain.ClassifiedInput{
				RawText: rawText,
				Intent:  domain.Intent{Primary: domain.IntentGeneralInquiry, Confidence: 0.5},
			}, nil
		},
	}
	completer := &mocks.MockCompleter{
		CompleteFunc: func(ctx context.Context, turns []ports.ChatTurn) (string, error) {
			return "", errors.New("rate limited")
		},
	}
	svc := NewService(classifier, &mocks.MockResponder{}, Options{
		Completer:          completer,
		LLMEnabled:         true,
		LLMConfidenceFloor: 0.6,
	}, zap.NewNop())

	// Act
	result, err := svc.HandleText(context.Background(), "anything")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Response != "mock response" {
		t.Errorf("expected templated reply preserved, got %q", result.Response)
	}
}

func TestHandleVoice_RoundTrip(t *testing.T) {
	// Arrange
	spoken := make(chan string, 1)
	synthesizer := &mocks.MockSynthesizer{
		SpeakFunc: func(ctx context.Context, text string) error {
			spoken <- text
			return nil
		},
	}
	transcriber := &mocks.MockTranscriber{
		TranscribeFunc: func(ctx context.Context, audio []byte) (*ports.Transcription, error) {
			return &ports.Transcription{Text: "what events are happening", Confidence: 0.87}, nil
		},
	}
	responder := &mocks.MockResponder{
		FormatForVoiceFunc: func(result *domain.ResponseResult) string {
			return strings.ToUpper(result.Response)
		},
	}
	svc := NewService(&mocks.MockClassifier{}, responder, Options{
		Transcriber: transcriber,
		Synthesizer: synthesizer,
	}, zap.NewNop())

	// Act
	reply, err := svc.HandleVoice(context.Background(), []byte("audio-bytes"))

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Transcript != "what events are happening" {
		t.Errorf("unexpected transcript %q", reply.Transcript)
	}
	if reply.STTConfidence != 0.87 {
		t.Errorf("unexpected confidence %v", reply.STTConfidence)
	}
	if reply.SpokenText != strings.ToUpper(reply.Result.Response) {
		t.Errorf("expected voice-formatted text, got %q", reply.SpokenText)
	}
	select {
	case text := <-spoken:
		if text != reply.SpokenText {
			t.Errorf("synthesizer got %q, want %q", text, reply.SpokenText)
		}
	case <-time.After(time.Second):
		t.Error("synthesizer was never invoked")
	}
}

func TestHandleVoice_TranscriptionFailureSurfaces(t *testing.T) {
	// Arrange
	transcriber := &mocks.MockTranscriber{
		TranscribeFunc: func(ctx context.Context, audio []byte) (*ports.Transcription, error) {
			return nil, errors.New("stt backend down")
		},
	}
	svc := NewService(&mocks.MockClassifier{}, &mocks.MockResponder{}, Options{Transcriber: transcriber}, zap.NewNop())

	// Act
	_, err := svc.HandleVoice(context.Background(), []byte("audio"))

	// Assert
	if !errors.Is(err, ErrTranscriptionFailed) {
		t.Fatalf("expected ErrTranscriptionFailed, got %v", err)
	}
}

func TestHandleVoice_EmptyAudioAndMissingTranscriber(t *testing.T) {
	svc := NewService(&mocks.MockClassifier{}, &mocks.MockResponder{}, Options{}, zap.NewNop())

	if _, err := svc.HandleVoice(context.Background(), nil); !errors.Is(err, ports.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for empty audio, got %v", err)
	}
	if _, err := svc.HandleVoice(context.Background(), []byte("audio")); !errors.Is(err, ErrVoiceUnavailable) {
		t.Errorf("expected ErrVoiceUnavailable, got %v", err)
	}
}

func TestHistory_CappedAtLimit(t *testing.T) {
	// Arrange
	svc := NewService(&mocks.MockClassifier{}, &mocks.MockResponder{}, Options{HistoryLimit: 4}, zap.NewNop())

	// Act
	for i := 0; i < 5; i++ {
		if _, err := svc.HandleText(context.Background(), "message"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Assert
	history := svc.History(context.Background())
	if len(history) != 4 {
		t.Errorf("expected history capped at 4, got %d", len(history))
	}
}
