package responder

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/mocks"
)

type stubRand struct {
	n int
}

func (r stubRand) Intn(n int) int {
	return r.n % n
}

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 9, 15, hour, 30, 0, 0, time.UTC)
	}
}

func classifiedWith(intent string, confidence float64) *domain.ClassifiedInput {
	return &domain.ClassifiedInput{
		RawText:        "test input",
		CleanedText:    "test input",
		TranslatedText: "test input",
		InputType:      domain.InputTypeQuestion,
		Intent: domain.Intent{
			Primary:    intent,
			Confidence: confidence,
		},
	}
}

func TestGenerate_GreetingByTimeOfDay(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want string
	}{
		{"morning", 9, greetingTemplates[bucketMorning][0]},
		{"afternoon", 14, greetingTemplates[bucketAfternoon][0]},
		{"evening", 21, greetingTemplates[bucketEvening][0]},
		{"early morning counts as evening", 3, greetingTemplates[bucketEvening][0]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			store := mocks.NewMockKnowledgeStore()
			store.SearchServicesFunc = func(ctx context.Context, f domain.ServiceFilter) ([]domain.CampusService, error) {
				t.Fatal("greeting must not touch the knowledge store")
				return nil, nil
			}
			svc := NewService(store, 3, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(tt.hour)))

			// Act
			result := svc.Generate(context.Background(), classifiedWith(domain.IntentGreeting, 0.95), domain.InputModeText)

			// Assert
			if result.Response != tt.want {
				t.Errorf("expected %q, got %q", tt.want, result.Response)
			}
			if result.FollowUp != greetingFollowUp {
				t.Errorf("expected greeting follow-up, got %q", result.FollowUp)
			}
			if result.ResponseType != domain.ResponseTypeText {
				t.Errorf("expected text response type, got %q", result.ResponseType)
			}
		})
	}
}

func TestGenerate_LibraryEnrichedFromStore(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	store.Services["library"] = domain.CampusService{
		Name:     "Library",
		Location: "Central Campus",
		Hours:    "8 AM - 10 PM",
	}
	svc := NewService(store, 3, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(10)))

	// Act
	result := svc.Generate(context.Background(), classifiedWith(domain.IntentLibrary, 0.9), domain.InputModeText)

	// Assert
	if !strings.Contains(result.Response, "It's located at Central Campus and is open 8 AM - 10 PM.") {
		t.Errorf("expected location and hours in response, got %q", result.Response)
	}
	if !strings.HasPrefix(result.Response, responseTemplates[domain.IntentLibrary][0]) {
		t.Errorf("expected template prefix, got %q", result.Response)
	}
	if result.Intent != domain.IntentLibrary {
		t.Errorf("expected library intent, got %q", result.Intent)
	}
}

func TestGenerate_LibraryWithoutStoreDataStaysTemplated(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	svc := NewService(store, 3, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(10)))

	// Act
	result := svc.Generate(context.Background(), classifiedWith(domain.IntentLibrary, 0.9), domain.InputModeText)

	// Assert
	if result.Response != responseTemplates[domain.IntentLibrary][0] {
		t.Errorf("expected bare template, got %q", result.Response)
	}
}

func TestGenerate_EventEmptyStoreSaysSo(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	svc := NewService(store, 3, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(10)))

	// Act
	result := svc.Generate(context.Background(), classifiedWith(domain.IntentEvent, 0.7), domain.InputModeText)

	// Assert
	if !strings.Contains(result.Response, noUpcomingEvents) {
		t.Errorf("expected empty-calendar sentence, got %q", result.Response)
	}
}

func TestGenerate_EventListCappedAndOrdered(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	store.Events["career_fair"] = domain.Event{Title: "Career Fair", Date: "2026-09-20", Location: "Main Hall", Status: domain.EventStatusUpcoming}
	store.Events["movie_night"] = domain.Event{Title: "Movie Night", Date: "2026-09-18", Location: "Quad", Status: domain.EventStatusUpcoming}
	store.Events["hackathon"] = domain.Event{Title: "Hackathon", Date: "2026-09-25", Location: "Tech Center", Status: domain.EventStatusUpcoming}
	store.Events["old_gala"] = domain.Event{Title: "Old Gala", Date: "2026-09-01", Location: "Hall B", Status: domain.EventStatusCompleted}
	svc := NewService(store, 2, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(10)))

	// Act
	result := svc.Generate(context.Background(), classifiedWith(domain.IntentEvent, 0.7), domain.InputModeText)

	// Assert
	if !strings.Contains(result.Response, "Coming up: Movie Night on 2026-09-18 at Quad; Career Fair on 2026-09-20 at Main Hall.") {
		t.Errorf("expected two earliest upcoming events, got %q", result.Response)
	}
	if strings.Contains(result.Response, "Hackathon") {
		t.Errorf("expected event list capped at two, got %q", result.Response)
	}
	if strings.Contains(result.Response, "Old Gala") {
		t.Errorf("completed events must not appear, got %q", result.Response)
	}
}

func TestGenerate_AcademicKeywordEnrichment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"schedule question", "when does my class schedule come out", "student portal"},
		{"professor question", "who is the professor for biology", "course catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			store := mocks.NewMockKnowledgeStore()
			svc := NewService(store, 3, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(10)))
			classified := classifiedWith(domain.IntentAcademic, 0.8)
			classified.TranslatedText = tt.text

			// Act
			result := svc.Generate(context.Background(), classified, domain.InputModeText)

			// Assert
			if !strings.Contains(result.Response, tt.want) {
				t.Errorf("expected %q in response, got %q", tt.want, result.Response)
			}
		})
	}
}

func TestGenerate_UnknownIntentUsesGeneralTemplates(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	svc := NewService(store, 3, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(10)))

	// Act
	result := svc.Generate(context.Background(), classifiedWith("weather_inquiry", 0.4), domain.InputModeText)

	// Assert
	if result.Response != responseTemplates[domain.IntentGeneralInquiry][0] {
		t.Errorf("expected general template, got %q", result.Response)
	}
}

func TestFollowUp_ResolutionChain(t *testing.T) {
	tests := []struct {
		name   string
		intent string
		bucket timeBucket
		want   string
	}{
		{"intent and bucket both present", domain.IntentLibrary, bucketEvening, followUps[domain.IntentLibrary][bucketEvening]},
		{"missing bucket falls back to general table", domain.IntentEvent, bucketAfternoon, followUps[domain.IntentGeneralInquiry][bucketAfternoon]},
		{"unknown intent falls back to general table", "weather_inquiry", bucketMorning, followUps[domain.IntentGeneralInquiry][bucketMorning]},
	}

	store := mocks.NewMockKnowledgeStore()
	svc := NewService(store, 3, zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.followUp(tt.intent, tt.bucket); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGenerate_RecoversFromStorePanic(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	store.SearchServicesFunc = func(ctx context.Context, f domain.ServiceFilter) ([]domain.CampusService, error) {
		panic("store exploded")
	}
	svc := NewService(store, 3, zap.NewNop(), WithRand(stubRand{0}), WithClock(fixedClock(10)))

	// Act
	result := svc.Generate(context.Background(), classifiedWith(domain.IntentLibrary, 0.9), domain.InputModeText)

	// Assert
	if result.Response != errorResponse {
		t.Errorf("expected apology, got %q", result.Response)
	}
	if result.ResponseType != domain.ResponseTypeError {
		t.Errorf("expected error response type, got %q", result.ResponseType)
	}
}

func TestGenerate_NilClassifiedYieldsErrorResult(t *testing.T) {
	// Arrange
	svc := NewService(mocks.NewMockKnowledgeStore(), 3, zap.NewNop(), WithClock(fixedClock(10)))

	// Act
	result := svc.Generate(context.Background(), nil, domain.InputModeVoice)

	// Assert
	if result.ResponseType != domain.ResponseTypeError {
		t.Errorf("expected error response type, got %q", result.ResponseType)
	}
	if result.Metadata.InputMode != domain.InputModeVoice {
		t.Errorf("expected voice input mode preserved, got %q", result.Metadata.InputMode)
	}
}

func TestFallback_RandomApology(t *testing.T) {
	// Arrange
	svc := NewService(mocks.NewMockKnowledgeStore(), 3, zap.NewNop(), WithRand(stubRand{2}), WithClock(fixedClock(10)))

	// Act
	result := svc.Fallback()

	// Assert
	if result.Response != fallbackResponses[2] {
		t.Errorf("expected third fallback, got %q", result.Response)
	}
	if result.ResponseType != domain.ResponseTypeFallback {
		t.Errorf("expected fallback response type, got %q", result.ResponseType)
	}
	if result.Confidence != 0.1 {
		t.Errorf("expected confidence 0.1, got %v", result.Confidence)
	}
}

func TestFormatForVoice_ExpandsAbbreviationsBeforeSpacing(t *testing.T) {
	// Arrange
	svc := NewService(mocks.NewMockKnowledgeStore(), 3, zap.NewNop())
	result := &domain.ResponseResult{
		Response: "The library opens at 8 AM and closes at 10 PM.",
		FollowUp: "Bring a student card, e.g. your campus ID.",
	}

	// Act
	spoken := svc.FormatForVoice(result)

	// Assert
	want := "The library opens at 8 A M and closes at 10 P M.  Bring a student card,  for example your campus ID."
	if spoken != want {
		t.Errorf("expected %q, got %q", want, spoken)
	}
}

func TestFormatForVoice_NilAndEmpty(t *testing.T) {
	svc := NewService(mocks.NewMockKnowledgeStore(), 3, zap.NewNop())

	if got := svc.FormatForVoice(nil); got != "" {
		t.Errorf("expected empty string for nil result, got %q", got)
	}

	result := &domain.ResponseResult{Response: "Hello there"}
	if got := svc.FormatForVoice(result); got != "Hello there" {
		t.Errorf("expected untouched text, got %q", got)
	}
}
