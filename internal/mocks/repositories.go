package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

// MockKnowledgeStore is a mock implementation of the KnowledgeStore
// interface backed by in-memory maps. Every method can be overridden through
// its Func field.
type MockKnowledgeStore struct {
	Info      domain.CampusInfo
	Buildings map[string]domain.Building
	Events    map[string]domain.Event
	Clubs     map[string]domain.Club
	Services  map[string]domain.CampusService

	CampusInfoFunc     func(ctx context.Context) (domain.CampusInfo, error)
	SetCampusInfoFunc  func(ctx context.Context, info domain.CampusInfo) error
	UpsertBuildingFunc func(ctx context.Context, b domain.Building) (string, error)
	UpsertEventFunc    func(ctx context.Context, e domain.Event) (string, error)
	UpsertClubFunc     func(ctx context.Context, c domain.Club) (string, error)
	UpsertServiceFunc  func(ctx context.Context, s domain.CampusService) (string, error)
	GetBuildingFunc    func(ctx context.Context, slug string) (*domain.Building, error)
	GetEventFunc       func(ctx context.Context, slug string) (*domain.Event, error)
	GetClubFunc        func(ctx context.Context, slug string) (*domain.Club, error)
	GetServiceFunc     func(ctx context.Context, slug string) (*domain.CampusService, error)
	SearchEventsFunc   func(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)
	SearchClubsFunc    func(ctx context.Context, f domain.ClubFilter) ([]domain.Club, error)
	SearchServicesFunc func(ctx context.Context, f domain.ServiceFilter) ([]domain.CampusService, error)
	SummaryFunc        func(ctx context.Context) (domain.KnowledgeSummary, error)
	ExportFunc         func(ctx context.Context) (*domain.KnowledgeDocument, error)
	ImportFunc         func(ctx context.Context, doc *domain.KnowledgeDocument) error
}

func NewMockKnowledgeStore() *MockKnowledgeStore {
	return &MockKnowledgeStore{
		Buildings: make(map[string]domain.Building),
		Events:    make(map[string]domain.Event),
		Clubs:     make(map[string]domain.Club),
		Services:  make(map[string]domain.CampusService),
	}
}

func (m *MockKnowledgeStore) CampusInfo(ctx context.Context) (domain.CampusInfo, error) {
	if m.CampusInfoFunc != nil {
		return m.CampusInfoFunc(ctx)
	}
	return m.Info, nil
}

func (m *MockKnowledgeStore) SetCampusInfo(ctx context.Context, info domain.CampusInfo) error {
	if m.SetCampusInfoFunc != nil {
		return m.SetCampusInfoFunc(ctx, info)
	}
	m.Info = info
	return nil
}

func (m *MockKnowledgeStore) UpsertBuilding(ctx context.Context, b domain.Building) (string, error) {
	if m.UpsertBuildingFunc != nil {
		return m.UpsertBuildingFunc(ctx, b)
	}
	slug := domain.Slugify(b.Name)
	m.Buildings[slug] = b
	return slug, nil
}

func (m *MockKnowledgeStore) UpsertEvent(ctx context.Context, e domain.Event) (string, error) {
	if m.UpsertEventFunc != nil {
		return m.UpsertEventFunc(ctx, e)
	}
	slug := domain.Slugify(e.Title)
	m.Events[slug] = e
	return slug, nil
}

func (m *MockKnowledgeStore) UpsertClub(ctx context.Context, c domain.Club) (string, error) {
	if m.UpsertClubFunc != nil {
		return m.UpsertClubFunc(ctx, c)
	}
	slug := domain.Slugify(c.Name)
	m.Clubs[slug] = c
	return slug, nil
}

func (m *MockKnowledgeStore) UpsertService(ctx context.Context, s domain.CampusService) (string, error) {
	if m.UpsertServiceFunc != nil {
		return m.UpsertServiceFunc(ctx, s)
	}
	slug := domain.Slugify(s.Name)
	m.Services[slug] = s
	return slug, nil
}

func (m *MockKnowledgeStore) GetBuilding(ctx context.Context, slug string) (*domain.Building, error) {
	if m.GetBuildingFunc != nil {
		return m.GetBuildingFunc(ctx, slug)
	}
	if b, ok := m.Buildings[slug]; ok {
		return &b, nil
	}
	return nil, ports.ErrNotFound
}

func (m *MockKnowledgeStore) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	if m.GetEventFunc != nil {
		return m.GetEventFunc(ctx, slug)
	}
	if e, ok := m.Events[slug]; ok {
		return &e, nil
	}
	return nil, ports.ErrNotFound
}

func (m *MockKnowledgeStore) GetClub(ctx context.Context, slug string) (*domain.Club, error) {
	if m.GetClubFunc != nil {
		return m.GetClubFunc(ctx, slug)
	}
	if c, ok := m.Clubs[slug]; ok {
		return &c, nil
	}
	return nil, ports.ErrNotFound
}

func (m *MockKnowledgeStore) GetService(ctx context.Context, slug string) (*domain.CampusService, error) {
	if m.GetServiceFunc != nil {
		return m.GetServiceFunc(ctx, slug)
	}
	if s, ok := m.Services[slug]; ok {
		return &s, nil
	}
	return nil, ports.ErrNotFound
}

func (m *MockKnowledgeStore) SearchEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	if m.SearchEventsFunc != nil {
		return m.SearchEventsFunc(ctx, f)
	}
	var out []domain.Event
	for _, e := range m.Events {
		if e.Status != domain.EventStatusUpcoming {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *MockKnowledgeStore) SearchClubs(ctx context.Context, f domain.ClubFilter) ([]domain.Club, error) {
	if m.SearchClubsFunc != nil {
		return m.SearchClubsFunc(ctx, f)
	}
	var out []domain.Club
	for _, c := range m.Clubs {
		if f.ActiveOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemberCount > out[j].MemberCount })
	return out, nil
}

func (m *MockKnowledgeStore) SearchServices(ctx context.Context, f domain.ServiceFilter) ([]domain.CampusService, error) {
	if m.SearchServicesFunc != nil {
		return m.SearchServicesFunc(ctx, f)
	}
	var out []domain.CampusService
	for _, s := range m.Services {
		if f.Query != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockKnowledgeStore) Summary(ctx context.Context) (domain.KnowledgeSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx)
	}
	return domain.KnowledgeSummary{
		TotalBuildings: len(m.Buildings),
		TotalEvents:    len(m.Events),
		TotalClubs:     len(m.Clubs),
		TotalServices:  len(m.Services),
	}, nil
}

func (m *MockKnowledgeStore) Export(ctx context.Context) (*domain.KnowledgeDocument, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx)
	}
	return &domain.KnowledgeDocument{
		CampusInfo: m.Info,
		Buildings:  m.Buildings,
		Events:     m.Events,
		Clubs:      m.Clubs,
		Services:   m.Services,
	}, nil
}

func (m *MockKnowledgeStore) Import(ctx context.Context, doc *domain.KnowledgeDocument) error {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, doc)
	}
	m.Info = doc.CampusInfo
	for k, v := range doc.Buildings {
		m.Buildings[k] = v
	}
	for k, v := range doc.Events {
		m.Events[k] = v
	}
	for k, v := range doc.Clubs {
		m.Clubs[k] = v
	}
	for k, v := range doc.Services {
		m.Services[k] = v
	}
	return nil
}
