// Package responder maps a classified input to a templated reply, enriched
// with facts from the knowledge store and a time-of-day-aware follow-up.
package responder

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/observability/telemetry"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

type timeBucket int

const (
	bucketMorning timeBucket = iota
	bucketAfternoon
	bucketEvening
)

func bucketFor(t time.Time) timeBucket {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return bucketMorning
	case h >= 12 && h < 17:
		return bucketAfternoon
	default:
		return bucketEvening
	}
}

// Rand is the pluggable random source used for template selection,
// injectable for deterministic tests.
type Rand interface {
	Intn(n int) int
}

type Service struct {
	knowledge ports.KnowledgeStore
	rng       Rand
	clock     func() time.Time
	maxEvents int
	log       *zap.Logger
}

type Option func(*Service)

func WithRand(r Rand) Option {
	return func(s *Service) { s.rng = r }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

func NewService(knowledge ports.KnowledgeStore, maxEvents int, log *zap.Logger, opts ...Option) *Service {
	if maxEvents <= 0 {
		maxEvents = 3
	}
	s := &Service{
		knowledge: knowledge,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		clock:     time.Now,
		maxEvents: maxEvents,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate never returns an error: any failure inside generation degrades to
// a fixed apology with response_type "error".
func (s *Service) Generate(ctx context.Context, classified *domain.ClassifiedInput, mode domain.InputMode) (result *domain.ResponseResult) {
	start := time.Now()
	defer func() { telemetry.GenerateLatency.Observe(time.Since(start).Seconds()) }()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Response generation panicked", zap.Any("panic", r))
			result = s.errorResult(classified, mode)
		}
	}()

	if classified == nil {
		return s.errorResult(nil, mode)
	}

	now := s.clock()
	var response, followUp string

	if classified.Intent.Primary == domain.IntentGreeting {
		response = s.pick(greetingTemplates[bucketFor(now)])
		followUp = greetingFollowUp
	} else {
		templates, ok := responseTemplates[classified.Intent.Primary]
		if !ok {
			templates = responseTemplates[domain.IntentGeneralInquiry]
		}
		response = s.pick(templates)

		if extra := s.enrich(ctx, classified); extra != "" {
			response = response + " " + extra
		}
		followUp = s.followUp(classified.Intent.Primary, bucketFor(now))
	}

	return &domain.ResponseResult{
		Response:     response,
		FollowUp:     followUp,
		ResponseType: domain.ResponseTypeText,
		Intent:       classified.Intent.Primary,
		Confidence:   classified.Intent.Confidence,
		Metadata: domain.ResponseMetadata{
			InputMode: mode,
			InputType: classified.InputType,
			Timestamp: now,
		},
	}
}

// enrich pulls an intent-specific fact from the knowledge store. An empty
// return means nothing is appended; lookup failures are logged and swallowed.
func (s *Service) enrich(ctx context.Context, classified *domain.ClassifiedInput) string {
	switch classified.Intent.Primary {
	case domain.IntentLibrary:
		return s.serviceSentence(ctx, "library", "It's located at %s and is open %s.")

	case domain.IntentDining:
		if extra := s.serviceSentence(ctx, "cafeteria", "The main cafeteria is at %s and serves meals %s."); extra != "" {
			return extra
		}
		return s.serviceSentence(ctx, "dining", "The main cafeteria is at %s and serves meals %s.")

	case domain.IntentAcademic:
		text := classified.TranslatedText
		switch {
		case containsAny(text, "schedule", "time", "when"):
			return "You can check your class schedule through the student portal or mobile app."
		case containsAny(text, "professor", "teacher"):
			return "Professor information is available in the course catalog or department websites."
		}
		return ""

	case domain.IntentEvent:
		return s.eventSentence(ctx)

	case domain.IntentHelp:
		return "I can help you with campus locations, events, academic information, and general assistance."
	}
	return ""
}

func (s *Service) serviceSentence(ctx context.Context, query, format string) string {
	services, err := s.knowledge.SearchServices(ctx, domain.ServiceFilter{Query: query})
	if err != nil {
		s.log.Warn("Knowledge lookup failed", zap.String("query", query), zap.Error(err))
		return ""
	}
	if len(services) == 0 {
		return ""
	}
	svc := services[0]
	if svc.Location == "" && svc.Hours == "" {
		return ""
	}
	return fmt.Sprintf(format, svc.Location, svc.Hours)
}

func (s *Service) eventSentence(ctx context.Context) string {
	events, err := s.knowledge.SearchEvents(ctx, domain.EventFilter{})
	if err != nil {
		s.log.Warn("Event lookup failed", zap.Error(err))
		return ""
	}
	if len(events) == 0 {
		return noUpcomingEvents
	}

	if len(events) > s.maxEvents {
		events = events[:s.maxEvents]
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		part := fmt.Sprintf("%s on %s", e.Title, e.Date)
		if e.Location != "" {
			part += " at " + e.Location
		}
		parts = append(parts, part)
	}
	return "Coming up: " + strings.Join(parts, "; ") + "."
}

// followUp resolves intent+bucket, then the general_inquiry table for the
// bucket, then any bucket defined for the intent, then the generic sentence.
func (s *Service) followUp(intent string, bucket timeBucket) string {
	if fu, ok := followUps[intent][bucket]; ok {
		return fu
	}
	if fu, ok := followUps[domain.IntentGeneralInquiry][bucket]; ok {
		return fu
	}
	for _, b := range []timeBucket{bucketMorning, bucketAfternoon, bucketEvening} {
		if fu, ok := followUps[intent][b]; ok {
			return fu
		}
	}
	return genericFollowUp
}

// Fallback is the explicit no-intent-detected path.
func (s *Service) Fallback() *domain.ResponseResult {
	return &domain.ResponseResult{
		Response:     s.pick(fallbackResponses),
		ResponseType: domain.ResponseTypeFallback,
		Intent:       domain.IntentUnknown,
		Confidence:   0.1,
		Metadata: domain.ResponseMetadata{
			Timestamp: s.clock(),
		},
	}
}

func (s *Service) errorResult(classified *domain.ClassifiedInput, mode domain.InputMode) *domain.ResponseResult {
	intent := domain.IntentUnknown
	confidence := 0.0
	inputType := domain.InputTypeStatement
	if classified != nil {
		intent = classified.Intent.Primary
		confidence = classified.Intent.Confidence
		inputType = classified.InputType
	}
	return &domain.ResponseResult{
		Response:     errorResponse,
		ResponseType: domain.ResponseTypeError,
		Intent:       intent,
		Confidence:   confidence,
		Metadata: domain.ResponseMetadata{
			InputMode: mode,
			InputType: inputType,
			Timestamp: s.clock(),
		},
	}
}

func (s *Service) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[s.rng.Intn(len(options))]
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

var _ ports.Responder = (*Service)(nil)
