// Package classifier turns raw user text into a ClassifiedInput: cleaned
// text, input type, lightweight entities and a keyword-rule intent.
package classifier

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/observability/telemetry"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reDisallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s.?!,;:\-'"]`)

	// Questions are checked before commands: a sentence that both starts
	// with an imperative and ends in "?" is a question.
	questionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(what|where|when|why|how|who|which|can|could|would|should|is|are|do|does|did)\b`),
		regexp.MustCompile(`\?$`),
	}
	commandPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(find|search|look for|show me|tell me|help me|calculate|convert)\b`),
		regexp.MustCompile(`^(open|close|start|stop|pause|resume)\b`),
	}

	reNumber = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	reDate   = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	reTime   = regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?:am|pm|AM|PM)?\b`)

	reSentenceSplit = regexp.MustCompile(`[.!?]+`)
)

var campusKeywords = []string{
	"library", "classroom", "professor", "lecture", "exam", "assignment",
	"campus", "dorm", "cafeteria", "gym", "parking", "registration",
	"course", "schedule", "deadline", "grade", "tuition", "scholarship",
	"event", "club", "sports", "laboratory", "office", "department",
}

// intentRule pairs keyword predicates with an outcome. Rules are evaluated
// in order and the first match wins; later rules are unreachable on
// overlapping text, so ordering is part of the contract.
type intentRule struct {
	keywords   []string
	intent     string
	confidence float64
	subIntents []string
}

var intentRules = []intentRule{
	{[]string{"library", "book", "study"}, domain.IntentLibrary, 0.8, []string{"location", "resources"}},
	{[]string{"class", "course", "lecture", "professor"}, domain.IntentAcademic, 0.8, []string{"schedule", "information"}},
	{[]string{"event", "club", "activity", "activities", "events"}, domain.IntentEvent, 0.7, []string{"schedule", "participation"}},
	{[]string{"food", "cafeteria", "dining"}, domain.IntentDining, 0.7, []string{"location", "hours"}},
	{[]string{"help", "assist", "support"}, domain.IntentHelp, 0.9, []string{"general_support"}},
}

var greetingTokens = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"greetings", "morning", "afternoon", "evening",
}

type Service struct {
	translator ports.Translator
	targetLang string
	translate  bool
	log        *zap.Logger
}

func NewService(translator ports.Translator, targetLang string, translateEnabled bool, log *zap.Logger) ports.Classifier {
	if targetLang == "" {
		targetLang = "en"
	}
	return &Service{
		translator: translator,
		targetLang: targetLang,
		translate:  translateEnabled,
		log:        log,
	}
}

func (s *Service) Classify(ctx context.Context, rawText string) (*domain.ClassifiedInput, error) {
	start := time.Now()
	defer func() { telemetry.ClassifyLatency.Observe(time.Since(start).Seconds()) }()

	if strings.TrimSpace(rawText) == "" {
		return nil, ports.ErrEmptyInput
	}

	cleaned := Clean(rawText)
	language, translated := s.normalizeLanguage(ctx, cleaned)

	inputType := classifyInputType(translated)
	entities := extractEntities(translated)
	intent := determineIntent(translated, inputType)

	s.log.Debug("Text classified",
		zap.String("intent", intent.Primary),
		zap.Float64("confidence", intent.Confidence),
		zap.String("input_type", string(inputType)),
		zap.Int("entities", len(entities)),
	)

	return &domain.ClassifiedInput{
		RawText:          rawText,
		CleanedText:      cleaned,
		DetectedLanguage: language,
		TranslatedText:   translated,
		InputType:        inputType,
		Intent:           intent,
		Entities:         entities,
		Features:         extractFeatures(translated),
	}, nil
}

// normalizeLanguage detects the input language and translates non-target
// text. Both steps degrade to the cleaned text untouched on failure; the
// request always proceeds.
func (s *Service) normalizeLanguage(ctx context.Context, cleaned string) (string, string) {
	if !s.translate || s.translator == nil || utf8.RuneCountInString(cleaned) < 3 {
		return s.targetLang, cleaned
	}

	language, err := s.translator.Detect(ctx, cleaned)
	if err != nil {
		s.log.Warn("Language detection failed, assuming target language", zap.Error(err))
		telemetry.TranslationFallbacks.Inc()
		return s.targetLang, cleaned
	}
	if language == s.targetLang {
		return language, cleaned
	}

	translated, err := s.translator.Translate(ctx, cleaned, s.targetLang)
	if err != nil {
		s.log.Warn("Translation failed, keeping original text",
			zap.String("language", language), zap.Error(err))
		telemetry.TranslationFallbacks.Inc()
		return language, cleaned
	}
	return language, strings.ToLower(translated)
}

// Clean collapses whitespace, strips characters outside the whitelist and
// lowercases. Lossy and irreversible; callers keep the raw text alongside.
func Clean(text string) string {
	text = reWhitespace.ReplaceAllString(text, " ")
	text = reDisallowed.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.ToLower(text))
}

func classifyInputType(text string) domain.InputType {
	for _, p := range questionPatterns {
		if p.MatchString(text) {
			return domain.InputTypeQuestion
		}
	}
	for _, p := range commandPatterns {
		if p.MatchString(text) {
			return domain.InputTypeCommand
		}
	}
	return domain.InputTypeStatement
}

func extractEntities(text string) []domain.Entity {
	entities := []domain.Entity{}
	for _, m := range reNumber.FindAllString(text, -1) {
		entities = append(entities, domain.Entity{Type: domain.EntityNumber, Value: m, Context: "numeric_value"})
	}
	for _, m := range reDate.FindAllString(text, -1) {
		entities = append(entities, domain.Entity{Type: domain.EntityDate, Value: m, Context: "date_reference"})
	}
	for _, m := range reTime.FindAllString(text, -1) {
		entities = append(entities, domain.Entity{Type: domain.EntityTime, Value: m, Context: "time_reference"})
	}
	return entities
}

func determineIntent(text string, inputType domain.InputType) domain.Intent {
	// Greetings win over everything and skip the confidence nudge.
	for _, token := range greetingTokens {
		if strings.Contains(text, token) {
			return domain.Intent{
				Primary:    domain.IntentGreeting,
				Confidence: 0.95,
				SubIntents: []string{"welcome", "introduction"},
				Context:    "campus_assistant",
			}
		}
	}

	intent := domain.Intent{
		Primary:    domain.IntentGeneralInquiry,
		Confidence: 0.5,
		SubIntents: []string{},
		Context:    "campus_assistant",
	}
	for _, rule := range intentRules {
		if containsAny(text, rule.keywords) {
			intent.Primary = rule.intent
			intent.Confidence = rule.confidence
			intent.SubIntents = rule.subIntents
			break
		}
	}

	switch inputType {
	case domain.InputTypeQuestion:
		intent.Confidence = min(intent.Confidence+0.10, 1.0)
	case domain.InputTypeCommand:
		intent.Confidence = min(intent.Confidence+0.05, 1.0)
	}
	return intent
}

func extractFeatures(text string) domain.TextFeatures {
	found := []string{}
	for _, kw := range campusKeywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return domain.TextFeatures{
		Length:            len(text),
		WordCount:         len(strings.Fields(text)),
		SentenceCount:     len(reSentenceSplit.Split(text, -1)),
		HasCampusKeywords: len(found) > 0,
		CampusKeywords:    found,
		HasNumbers:        reNumber.MatchString(text),
		HasQuestionMarks:  strings.Contains(text, "?"),
		HasExclamation:    strings.Contains(text, "!"),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
