package knowledge

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/mocks"
)

func TestSearchEvents_SecondCallServedFromCache(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	calls := 0
	store.SearchEventsFunc = func(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
		calls++
		return []domain.Event{{Title: "Career Fair", Date: "2026-09-20", Status: domain.EventStatusUpcoming}}, nil
	}
	svc := NewService(store, mocks.NewMockCache(), time.Minute, zap.NewNop())

	// Act
	first, err := svc.SearchEvents(context.Background(), domain.EventFilter{Query: "career"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SearchEvents(context.Background(), domain.EventFilter{Query: "career"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Assert
	if calls != 1 {
		t.Errorf("expected one store hit, got %d", calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Title != "Career Fair" {
		t.Errorf("expected identical cached results, got %v and %v", first, second)
	}
}

func TestSearchEvents_DifferentFiltersMissCache(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	calls := 0
	store.SearchEventsFunc = func(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
		calls++
		return nil, nil
	}
	svc := NewService(store, mocks.NewMockCache(), time.Minute, zap.NewNop())

	// Act
	svc.SearchEvents(context.Background(), domain.EventFilter{Query: "career"})
	svc.SearchEvents(context.Background(), domain.EventFilter{Query: "music"})
	svc.SearchEvents(context.Background(), domain.EventFilter{Query: "career", DateRange: &domain.DateRange{Start: "2026-09-01"}})

	// Assert
	if calls != 3 {
		t.Errorf("expected three store hits, got %d", calls)
	}
}

func TestUpsert_InvalidatesCachedSearches(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	calls := 0
	store.SearchEventsFunc = func(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
		calls++
		return nil, nil
	}
	svc := NewService(store, mocks.NewMockCache(), time.Minute, zap.NewNop())
	svc.SearchEvents(context.Background(), domain.EventFilter{})

	// Act
	if _, err := svc.UpsertEvent(context.Background(), domain.Event{Title: "Hackathon"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.SearchEvents(context.Background(), domain.EventFilter{})

	// Assert
	if calls != 2 {
		t.Errorf("expected cache invalidation to force a second store hit, got %d calls", calls)
	}
}

func TestSearchServices_CacheFailureFallsThroughToStore(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	store.Services["library"] = domain.CampusService{Name: "Library", Location: "Central Campus"}
	cache := mocks.NewMockCache()
	cache.GetFunc = func(ctx context.Context, key string) (string, error) {
		return "", context.DeadlineExceeded
	}
	cache.SetFunc = func(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
		return context.DeadlineExceeded
	}
	svc := NewService(store, cache, time.Minute, zap.NewNop())

	// Act
	services, err := svc.SearchServices(context.Background(), domain.ServiceFilter{Query: "library"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(services) != 1 || services[0].Name != "Library" {
		t.Errorf("expected store result despite cache failure, got %v", services)
	}
}

func TestGetEvent_PassesThroughUncached(t *testing.T) {
	// Arrange
	store := mocks.NewMockKnowledgeStore()
	store.Events["career_fair"] = domain.Event{Title: "Career Fair"}
	svc := NewService(store, mocks.NewMockCache(), time.Minute, zap.NewNop())

	// Act
	event, err := svc.GetEvent(context.Background(), "career_fair")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Title != "Career Fair" {
		t.Errorf("expected stored event, got %v", event)
	}
}
