// Package assistant sequences classification and response generation and is
// the single error boundary callers talk to.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/observability/telemetry"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

const llmSystemPrompt = "You are a helpful campus assistant. Provide concise, friendly, and informative responses to student queries about the university."

// llmHistoryTurns bounds how much transcript is replayed to the model.
const llmHistoryTurns = 10

// welcomeMessage seeds the transcript so History never starts empty.
const welcomeMessage = "Hello! I'm your campus assistant. How can I help you today?"

// ErrVoiceUnavailable is returned when audio arrives but no transcriber is
// configured.
var ErrVoiceUnavailable = errors.New("voice input is not configured")

// ErrTranscriptionFailed wraps speech-to-text failures so the transport can
// report them to the caller instead of treating them as internal errors.
var ErrTranscriptionFailed = errors.New("speech recognition could not understand the audio")

type Service struct {
	classifier  ports.Classifier
	responder   ports.Responder
	transcriber ports.Transcriber
	synthesizer ports.Synthesizer
	completer   ports.Completer
	history     *historyLog
	llmFloor    float64
	llmEnabled  bool
	log         *zap.Logger
}

// Options carries the optional collaborators and tuning knobs. Zero values
// disable the corresponding behavior.
type Options struct {
	Transcriber        ports.Transcriber
	Synthesizer        ports.Synthesizer
	Completer          ports.Completer
	HistoryLimit       int
	LLMConfidenceFloor float64
	LLMEnabled         bool
}

func NewService(classifier ports.Classifier, responder ports.Responder, opts Options, log *zap.Logger) *Service {
	history := newHistoryLog(opts.HistoryLimit)
	history.Append(domain.ChatSenderBot, welcomeMessage, time.Now())
	return &Service{
		classifier:  classifier,
		responder:   responder,
		transcriber: opts.Transcriber,
		synthesizer: opts.Synthesizer,
		completer:   opts.Completer,
		history:     history,
		llmFloor:    opts.LLMConfidenceFloor,
		llmEnabled:  opts.LLMEnabled,
		log:         log,
	}
}

func (s *Service) HandleText(ctx context.Context, text string) (*domain.ResponseResult, error) {
	return s.handle(ctx, text, domain.InputModeText)
}

func (s *Service) HandleVoice(ctx context.Context, audio []byte) (*domain.VoiceReply, error) {
	if len(audio) == 0 {
		return nil, ports.ErrEmptyInput
	}
	if s.transcriber == nil {
		return nil, ErrVoiceUnavailable
	}

	transcription, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		telemetry.TranscriptionsTotal.WithLabelValues("error").Inc()
		s.log.Error("Transcription failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}
	telemetry.TranscriptionsTotal.WithLabelValues("success").Inc()

	if strings.TrimSpace(transcription.Text) == "" {
		return nil, ports.ErrEmptyInput
	}

	result, err := s.handle(ctx, transcription.Text, domain.InputModeVoice)
	if err != nil {
		return nil, err
	}

	spoken := s.responder.FormatForVoice(result)
	s.speak(spoken)

	return &domain.VoiceReply{
		Transcript:    transcription.Text,
		STTConfidence: transcription.Confidence,
		Result:        result,
		SpokenText:    spoken,
	}, nil
}

func (s *Service) History(ctx context.Context) []domain.ChatMessage {
	return s.history.All()
}

func (s *Service) handle(ctx context.Context, text string, mode domain.InputMode) (*domain.ResponseResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ports.ErrEmptyInput
	}
	requestID := uuid.NewString()

	var result *domain.ResponseResult
	classified, err := s.classifier.Classify(ctx, text)
	switch {
	case errors.Is(err, ports.ErrEmptyInput):
		return nil, err
	case err != nil:
		s.log.Error("Classification failed", zap.String("request_id", requestID), zap.Error(err))
		result = s.responder.Generate(ctx, nil, mode)
	default:
		result = s.responder.Generate(ctx, classified, mode)
		if s.shouldConsultLLM(classified) {
			result = s.completeWithLLM(ctx, text, result)
		}
	}

	result.Metadata.RequestID = requestID
	if result.Metadata.Timestamp.IsZero() {
		result.Metadata.Timestamp = time.Now()
	}
	telemetry.RequestsTotal.WithLabelValues(result.Intent, string(mode), string(result.ResponseType)).Inc()

	now := time.Now()
	s.history.Append(domain.ChatSenderUser, text, now)
	s.history.Append(domain.ChatSenderBot, result.Response, now)

	return result, nil
}

// shouldConsultLLM gates the model path: only low-confidence general
// inquiries reach it, and only when the flag and client are wired.
func (s *Service) shouldConsultLLM(classified *domain.ClassifiedInput) bool {
	if !s.llmEnabled || s.completer == nil {
		return false
	}
	return classified.Intent.Primary == domain.IntentGeneralInquiry &&
		classified.Intent.Confidence < s.llmFloor
}

// completeWithLLM replaces the templated reply with a model completion. Any
// failure keeps the templated result; the model path never degrades a
// request that already has an answer.
func (s *Service) completeWithLLM(ctx context.Context, text string, templated *domain.ResponseResult) *domain.ResponseResult {
	turns := []ports.ChatTurn{{Role: "system", Content: llmSystemPrompt}}
	for _, msg := range s.recentHistory() {
		role := "user"
		if msg.Sender == domain.ChatSenderBot {
			role = "assistant"
		}
		turns = append(turns, ports.ChatTurn{Role: role, Content: msg.Text})
	}
	turns = append(turns, ports.ChatTurn{Role: "user", Content: text})

	reply, err := s.completer.Complete(ctx, turns)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.log.Warn("Model completion failed, keeping templated reply", zap.Error(err))
		return templated
	}

	templated.Response = strings.TrimSpace(reply)
	templated.FollowUp = ""
	templated.ResponseType = domain.ResponseTypeText
	return templated
}

func (s *Service) recentHistory() []domain.ChatMessage {
	msgs := s.history.All()
	if len(msgs) > llmHistoryTurns {
		msgs = msgs[len(msgs)-llmHistoryTurns:]
	}
	return msgs
}

// speak hands the reply to the synthesizer without blocking the request.
// Playback failures are logged, never surfaced.
func (s *Service) speak(text string) {
	if s.synthesizer == nil || text == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.synthesizer.Speak(ctx, text); err != nil {
			s.log.Warn("Speech synthesis failed", zap.Error(err))
		}
	}()
}

var _ ports.AssistantService = (*Service)(nil)
