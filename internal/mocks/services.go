package mocks

import (
	"context"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

// MockTranslator is a mock implementation of the Translator interface
type MockTranslator struct {
	DetectFunc    func(ctx context.Context, text string) (string, error)
	TranslateFunc func(ctx context.Context, text, targetLang string) (string, error)
}

func (m *MockTranslator) Detect(ctx context.Context, text string) (string, error) {
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, text)
	}
	return "en", nil
}

func (m *MockTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, targetLang)
	}
	return text, nil
}

// MockClassifier is a mock implementation of the Classifier interface
type MockClassifier struct {
	ClassifyFunc func(ctx context.Context, rawText string) (*domain.ClassifiedInput, error)
}

func (m *MockClassifier) Classify(ctx context.Context, rawText string) (*domain.ClassifiedInput, error) {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, rawText)
	}
	return &domain.ClassifiedInput{
		RawText:          rawText,
		CleanedText:      rawText,
		DetectedLanguage: "en",
		TranslatedText:   rawText,
		InputType:        domain.InputTypeStatement,
		Intent: domain.Intent{
			Primary:    domain.IntentGeneralInquiry,
			Confidence: 0.5,
		},
	}, nil
}

// MockResponder is a mock implementation of the Responder interface
type MockResponder struct {
	GenerateFunc       func(ctx context.Context, classified *domain.ClassifiedInput, mode domain.InputMode) *domain.ResponseResult
	FallbackFunc       func() *domain.ResponseResult
	FormatForVoiceFunc func(result *domain.ResponseResult) string
}

func (m *MockResponder) Generate(ctx context.Context, classified *domain.ClassifiedInput, mode domain.InputMode) *domain.ResponseResult {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, classified, mode)
	}
	return &domain.ResponseResult{
		Response:     "mock response",
		ResponseType: domain.ResponseTypeText,
		Intent:       classified.Intent.Primary,
		Confidence:   classified.Intent.Confidence,
	}
}

func (m *MockResponder) Fallback() *domain.ResponseResult {
	if m.FallbackFunc != nil {
		return m.FallbackFunc()
	}
	return &domain.ResponseResult{
		Response:     "mock fallback",
		ResponseType: domain.ResponseTypeFallback,
		Intent:       domain.IntentUnknown,
		Confidence:   0.1,
	}
}

func (m *MockResponder) FormatForVoice(result *domain.ResponseResult) string {
	if m.FormatForVoiceFunc != nil {
		return m.FormatForVoiceFunc(result)
	}
	return result.Response
}

// MockTranscriber is a mock implementation of the Transcriber interface
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, audio []byte) (*ports.Transcription, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte) (*ports.Transcription, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio)
	}
	return &ports.Transcription{Text: "mock transcript", Confidence: 0.9}, nil
}

// MockSynthesizer is a mock implementation of the Synthesizer interface
type MockSynthesizer struct {
	SpeakFunc  func(ctx context.Context, text string) error
	SpokenText []string
}

func (m *MockSynthesizer) Speak(ctx context.Context, text string) error {
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	m.SpokenText = append(m.SpokenText, text)
	return nil
}

// MockCompleter is a mock implementation of the Completer interface
type MockCompleter struct {
	CompleteFunc func(ctx context.Context, turns []ports.ChatTurn) (string, error)
}

func (m *MockCompleter) Complete(ctx context.Context, turns []ports.ChatTurn) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, turns)
	}
	return "mock completion", nil
}
