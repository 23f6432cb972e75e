// Package file persists the campus knowledge aggregate as a single JSON
// document, fully rewritten on every mutation.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/observability/telemetry"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

const defaultEventHorizonDays = 30

// Store implements ports.KnowledgeStore over a flat JSON file. A mutex
// serialises mutations; the document is written to a temp file and renamed
// into place so a crash mid-write cannot corrupt the store.
type Store struct {
	path string
	log  *zap.Logger
	now  func() time.Time

	mu  sync.RWMutex
	doc *domain.KnowledgeDocument
}

type Option func(*Store)

// WithClock overrides the store clock, used by tests and the seeder.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore loads the document at path, falling back to an empty default
// structure when the file is missing or unreadable. Load failures are logged,
// never returned: a broken knowledge file must not take the assistant down.
func NewStore(path string, log *zap.Logger, opts ...Option) *Store {
	s := &Store{
		path: path,
		log:  log,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.load()
	s.publishGauges()
	return s
}

func (s *Store) load() *domain.KnowledgeDocument {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("Failed to read knowledge file, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return s.defaultDocument()
	}

	var doc domain.KnowledgeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Error("Corrupt knowledge file, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return s.defaultDocument()
	}

	// Older exports may omit category maps entirely.
	if doc.Buildings == nil {
		doc.Buildings = map[string]domain.Building{}
	}
	if doc.Events == nil {
		doc.Events = map[string]domain.Event{}
	}
	if doc.Clubs == nil {
		doc.Clubs = map[string]domain.Club{}
	}
	if doc.Services == nil {
		doc.Services = map[string]domain.CampusService{}
	}

	s.log.Info("Knowledge base loaded",
		zap.String("path", s.path),
		zap.Int("buildings", len(doc.Buildings)),
		zap.Int("events", len(doc.Events)),
		zap.Int("clubs", len(doc.Clubs)),
		zap.Int("services", len(doc.Services)),
	)
	return &doc
}

func (s *Store) defaultDocument() *domain.KnowledgeDocument {
	return &domain.KnowledgeDocument{
		CampusInfo:  domain.CampusInfo{Name: "Your Campus"},
		Buildings:   map[string]domain.Building{},
		Events:      map[string]domain.Event{},
		Clubs:       map[string]domain.Club{},
		Services:    map[string]domain.CampusService{},
		LastUpdated: s.now(),
	}
}

// persist rewrites the whole document. Caller must hold the write lock.
func (s *Store) persist() error {
	s.doc.LastUpdated = s.now()

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal knowledge document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".knowledge-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp knowledge file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp knowledge file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp knowledge file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace knowledge file: %w", err)
	}

	telemetry.KnowledgeWrites.Inc()
	s.publishGauges()
	return nil
}

func (s *Store) publishGauges() {
	telemetry.KnowledgeRecords.WithLabelValues("buildings").Set(float64(len(s.doc.Buildings)))
	telemetry.KnowledgeRecords.WithLabelValues("events").Set(float64(len(s.doc.Events)))
	telemetry.KnowledgeRecords.WithLabelValues("clubs").Set(float64(len(s.doc.Clubs)))
	telemetry.KnowledgeRecords.WithLabelValues("services").Set(float64(len(s.doc.Services)))
}

func (s *Store) CampusInfo(ctx context.Context) (domain.CampusInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.CampusInfo, nil
}

func (s *Store) SetCampusInfo(ctx context.Context, info domain.CampusInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.CampusInfo = info
	return s.persist()
}

func (s *Store) UpsertBuilding(ctx context.Context, b domain.Building) (string, error) {
	slug := domain.Slugify(b.Name)
	if slug == "" {
		return "", fmt.Errorf("building has no name")
	}

	if b.Departments == nil {
		b.Departments = []string{}
	}
	if b.Services == nil {
		b.Services = []string{}
	}
	if b.Accessibility == nil {
		b.Accessibility = map[string]string{}
	}
	b.LastUpdated = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Buildings[slug] = b
	return slug, s.persist()
}

func (s *Store) UpsertEvent(ctx context.Context, e domain.Event) (string, error) {
	slug := domain.Slugify(e.Title)
	if slug == "" {
		return "", fmt.Errorf("event has no title")
	}

	if e.Type == "" {
		e.Type = "general"
	}
	if e.Status == "" {
		e.Status = domain.EventStatusUpcoming
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	e.LastUpdated = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Events[slug] = e
	return slug, s.persist()
}

func (s *Store) UpsertClub(ctx context.Context, c domain.Club) (string, error) {
	slug := domain.Slugify(c.Name)
	if slug == "" {
		return "", fmt.Errorf("club has no name")
	}

	if c.Type == "" {
		c.Type = "general"
	}
	if c.SocialMedia == nil {
		c.SocialMedia = map[string]string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	c.LastUpdated = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Clubs[slug] = c
	return slug, s.persist()
}

func (s *Store) UpsertService(ctx context.Context, svc domain.CampusService) (string, error) {
	slug := domain.Slugify(svc.Name)
	if slug == "" {
		return "", fmt.Errorf("service has no name")
	}

	if svc.Type == "" {
		svc.Type = "general"
	}
	if svc.AvailableTo == "" {
		svc.AvailableTo = "all"
	}
	if svc.Requirements == nil {
		svc.Requirements = []string{}
	}
	if svc.Providers == nil {
		svc.Providers = []string{}
	}
	if svc.Accessibility == nil {
		svc.Accessibility = map[string]string{}
	}
	if svc.Tags == nil {
		svc.Tags = []string{}
	}
	svc.LastUpdated = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Services[slug] = svc
	return slug, s.persist()
}

func (s *Store) GetBuilding(ctx context.Context, slug string) (*domain.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.doc.Buildings[slug]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &b, nil
}

func (s *Store) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.doc.Events[slug]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &e, nil
}

func (s *Store) GetClub(ctx context.Context, slug string) (*domain.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.doc.Clubs[slug]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetService(ctx context.Context, slug string) (*domain.CampusService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.doc.Services[slug]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &svc, nil
}

// SearchEvents returns upcoming events matching all given filters, ascending
// by date string. Events whose status is not "upcoming" are always excluded.
func (s *Store) SearchEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(f.Query)
	events := make([]domain.Event, 0)

	for _, e := range s.doc.Events {
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Title), query) &&
			!strings.Contains(strings.ToLower(e.Description), query) {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.DateRange != nil && !s.inRange(e.Date, f.DateRange) {
			continue
		}
		if e.Status != domain.EventStatusUpcoming {
			continue
		}
		events = append(events, e)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events, nil
}

func (s *Store) inRange(date string, r *domain.DateRange) bool {
	start := r.Start
	if start == "" {
		start = s.now().Format("2006-01-02")
	}
	end := r.End
	if end == "" {
		end = s.now().AddDate(0, 0, defaultEventHorizonDays).Format("2006-01-02")
	}
	return date >= start && date <= end
}

// SearchClubs returns clubs matching the filters, descending by member count.
func (s *Store) SearchClubs(ctx context.Context, f domain.ClubFilter) ([]domain.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(f.Query)
	clubs := make([]domain.Club, 0)

	for _, c := range s.doc.Clubs {
		if f.ActiveOnly && !c.Active {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(strings.ToLower(c.Description), query) {
			continue
		}
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		clubs = append(clubs, c)
	}

	sort.Slice(clubs, func(i, j int) bool { return clubs[i].MemberCount > clubs[j].MemberCount })
	return clubs, nil
}

// SearchServices returns services matching the filters, unordered.
func (s *Store) SearchServices(ctx context.Context, f domain.ServiceFilter) ([]domain.CampusService, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(f.Query)
	services := make([]domain.CampusService, 0)

	for _, svc := range s.doc.Services {
		if f.AvailableTo != "" && f.AvailableTo != "all" &&
			svc.AvailableTo != f.AvailableTo && svc.AvailableTo != "all" {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(svc.Name), query) &&
			!strings.Contains(strings.ToLower(svc.Description), query) {
			continue
		}
		if f.Type != "" && svc.Type != f.Type {
			continue
		}
		services = append(services, svc)
	}

	return services, nil
}

func (s *Store) Summary(ctx context.Context) (domain.KnowledgeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.KnowledgeSummary{
		TotalBuildings: len(s.doc.Buildings),
		TotalEvents:    len(s.doc.Events),
		TotalClubs:     len(s.doc.Clubs),
		TotalServices:  len(s.doc.Services),
		LastUpdated:    s.doc.LastUpdated,
	}, nil
}

// Export returns a deep copy of the current document.
func (s *Store) Export(ctx context.Context) (*domain.KnowledgeDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.Marshal(s.doc)
	if err != nil {
		return nil, fmt.Errorf("failed to export knowledge document: %w", err)
	}
	var out domain.KnowledgeDocument
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to export knowledge document: %w", err)
	}
	return &out, nil
}

// Import merges the given document into the store: incoming records win on
// slug collision, existing records are kept otherwise.
func (s *Store) Import(ctx context.Context, doc *domain.KnowledgeDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.CampusInfo != (domain.CampusInfo{}) {
		s.doc.CampusInfo = doc.CampusInfo
	}
	for slug, b := range doc.Buildings {
		s.doc.Buildings[slug] = b
	}
	for slug, e := range doc.Events {
		s.doc.Events[slug] = e
	}
	for slug, c := range doc.Clubs {
		s.doc.Clubs[slug] = c
	}
	for slug, svc := range doc.Services {
		s.doc.Services[slug] = svc
	}

	return s.persist()
}

var _ ports.KnowledgeStore = (*Store)(nil)
