package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campus_knowledge.json")
	return NewStore(path, newTestLogger())
}

func TestUpsertBuilding_IdempotentBySlug(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := newTestStore(t)

	// Act
	slug1, err := store.UpsertBuilding(ctx, domain.Building{Name: "Science Hall", Floors: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	slug2, err := store.UpsertBuilding(ctx, domain.Building{Name: "Science Hall", Floors: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Assert
	if slug1 != "science_hall" || slug2 != slug1 {
		t.Errorf("expected stable slug 'science_hall', got %q and %q", slug1, slug2)
	}
	summary, _ := store.Summary(ctx)
	if summary.TotalBuildings != 1 {
		t.Errorf("expected 1 building after double upsert, got %d", summary.TotalBuildings)
	}
	b, err := store.GetBuilding(ctx, slug1)
	if err != nil {
		t.Fatalf("expected building, got %v", err)
	}
	if b.Floors != 5 {
		t.Errorf("expected second upsert to win, got floors=%d", b.Floors)
	}
}

func TestUpsertService_FillsDefaults(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	slug, err := store.UpsertService(ctx, domain.CampusService{Name: "Main Library"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	svc, err := store.GetService(ctx, slug)
	if err != nil {
		t.Fatalf("expected service, got %v", err)
	}
	if svc.Type != "general" {
		t.Errorf("expected default type 'general', got %q", svc.Type)
	}
	if svc.AvailableTo != "all" {
		t.Errorf("expected default available_to 'all', got %q", svc.AvailableTo)
	}
	if svc.Tags == nil || svc.Requirements == nil || svc.Providers == nil || svc.Accessibility == nil {
		t.Error("expected all collection fields present, got nil")
	}
	if svc.LastUpdated.IsZero() {
		t.Error("expected last_updated to be stamped")
	}
}

func TestUpsertEvent_NoName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.UpsertEvent(ctx, domain.Event{Description: "no title"}); err == nil {
		t.Fatal("expected error for event without title")
	}
}

func TestSearchEvents_UpcomingOnlyAndSorted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := newTestStore(t)
	store.UpsertEvent(ctx, domain.Event{Title: "Hack Night", Date: "2099-03-02"})
	store.UpsertEvent(ctx, domain.Event{Title: "Career Fair", Date: "2099-01-15"})
	store.UpsertEvent(ctx, domain.Event{Title: "Old Gala", Date: "2098-01-01", Status: domain.EventStatusCompleted})

	// Act
	events, err := store.SearchEvents(ctx, domain.EventFilter{})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i-1].Date > events[i].Date {
			t.Errorf("events out of order: %q after %q", events[i-1].Date, events[i].Date)
		}
	}
}

func TestSearchEvents_DateRangeContainment(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.UpsertEvent(ctx, domain.Event{Title: "Inside", Date: "2099-06-15"})
	store.UpsertEvent(ctx, domain.Event{Title: "Outside", Date: "2099-09-01"})

	events, err := store.SearchEvents(ctx, domain.EventFilter{
		DateRange: &domain.DateRange{Start: "2099-06-01", End: "2099-06-30"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 1 || events[0].Title != "Inside" {
		t.Fatalf("expected only the in-range event, got %+v", events)
	}
}

func TestSearchClubs_ActiveOnlyAndMemberOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.UpsertClub(ctx, domain.Club{Name: "Chess Club", Active: true, MemberCount: 12})
	store.UpsertClub(ctx, domain.Club{Name: "Robotics Club", Active: true, MemberCount: 48})
	store.UpsertClub(ctx, domain.Club{Name: "Defunct Club", Active: false, MemberCount: 99})

	clubs, err := store.SearchClubs(ctx, domain.ClubFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(clubs) != 2 {
		t.Fatalf("expected 2 active clubs, got %d", len(clubs))
	}
	if clubs[0].Name != "Robotics Club" {
		t.Errorf("expected largest club first, got %q", clubs[0].Name)
	}
}

func TestSearchServices_QueryAndAvailability(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.UpsertService(ctx, domain.CampusService{Name: "Main Library", Description: "Books and study spaces"})
	store.UpsertService(ctx, domain.CampusService{Name: "Faculty Lounge", AvailableTo: "faculty"})

	services, err := store.SearchServices(ctx, domain.ServiceFilter{Query: "library", AvailableTo: "students"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(services) != 1 || services[0].Name != "Main Library" {
		t.Fatalf("expected only the library, got %+v", services)
	}

	// Faculty-only service is hidden from students even without a query.
	services, _ = store.SearchServices(ctx, domain.ServiceFilter{AvailableTo: "students"})
	if len(services) != 1 {
		t.Errorf("expected faculty lounge filtered out, got %d services", len(services))
	}
}

func TestNewStore_CorruptFileStartsEmpty(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "campus_knowledge.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Act
	store := NewStore(path, newTestLogger())

	// Assert
	summary, err := store.Summary(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.TotalBuildings != 0 || summary.TotalEvents != 0 {
		t.Errorf("expected empty store after corrupt load, got %+v", summary)
	}
}

func TestPersist_RoundTripsThroughDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "campus_knowledge.json")

	store := NewStore(path, newTestLogger())
	if _, err := store.UpsertEvent(ctx, domain.Event{Title: "Welcome Week", Date: "2099-09-01"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// A second store over the same file sees the write.
	reloaded := NewStore(path, newTestLogger())
	e, err := reloaded.GetEvent(ctx, "welcome_week")
	if err != nil {
		t.Fatalf("expected event after reload, got %v", err)
	}
	if e.Status != domain.EventStatusUpcoming {
		t.Errorf("expected default status upcoming, got %q", e.Status)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, entry := range entries {
		if entry.Name() != filepath.Base(path) {
			t.Errorf("unexpected leftover file %q", entry.Name())
		}
	}
}

func TestExportImport_Merge(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	src.UpsertClub(ctx, domain.Club{Name: "Chess Club", Active: true, MemberCount: 10})
	doc, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("expected export, got %v", err)
	}

	dst := newTestStore(t)
	dst.UpsertClub(ctx, domain.Club{Name: "Robotics Club", Active: true, MemberCount: 20})
	if err := dst.Import(ctx, doc); err != nil {
		t.Fatalf("expected import, got %v", err)
	}

	summary, _ := dst.Summary(ctx)
	if summary.TotalClubs != 2 {
		t.Errorf("expected merged clubs, got %d", summary.TotalClubs)
	}
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetEvent(context.Background(), "nope"); err != ports.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPersistedDocument_AllFieldsPresent(t *testing.T) {
	// The on-disk document must carry every declared field even when the
	// input left them empty.
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "campus_knowledge.json")
	store := NewStore(path, newTestLogger(), WithClock(func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}))
	store.UpsertEvent(ctx, domain.Event{Title: "Bare Event", Date: "2099-01-01"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	var events map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw["events"], &events); err != nil {
		t.Fatal(err)
	}
	event := events["bare_event"]
	for _, key := range []string{"title", "description", "type", "date", "time", "location",
		"building", "room", "organizer", "contact", "registration_required", "capacity",
		"attendees", "tags", "image_url", "cost", "recurring", "recurring_pattern",
		"status", "last_updated"} {
		if _, ok := event[key]; !ok {
			t.Errorf("persisted event missing field %q", key)
		}
	}
}
