// Package knowledge fronts the persistent store with a read-through cache
// for search queries. Writes pass through and bump a generation counter so
// stale cached searches are never served; expired generations age out via TTL.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

type Service struct {
	store ports.KnowledgeStore
	cache ports.Cache
	ttl   time.Duration
	gen   atomic.Uint64
	log   *zap.Logger
}

func NewService(store ports.KnowledgeStore, cache ports.Cache, ttl time.Duration, log *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		store: store,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func (s *Service) CampusInfo(ctx context.Context) (domain.CampusInfo, error) {
	return s.store.CampusInfo(ctx)
}

func (s *Service) SetCampusInfo(ctx context.Context, info domain.CampusInfo) error {
	if err := s.store.SetCampusInfo(ctx, info); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) UpsertBuilding(ctx context.Context, b domain.Building) (string, error) {
	slug, err := s.store.UpsertBuilding(ctx, b)
	if err != nil {
		return "", err
	}
	s.invalidate()
	return slug, nil
}

func (s *Service) UpsertEvent(ctx context.Context, e domain.Event) (string, error) {
	slug, err := s.store.UpsertEvent(ctx, e)
	if err != nil {
		return "", err
	}
	s.invalidate()
	return slug, nil
}

func (s *Service) UpsertClub(ctx context.Context, c domain.Club) (string, error) {
	slug, err := s.store.UpsertClub(ctx, c)
	if err != nil {
		return "", err
	}
	s.invalidate()
	return slug, nil
}

func (s *Service) UpsertService(ctx context.Context, svc domain.CampusService) (string, error) {
	slug, err := s.store.UpsertService(ctx, svc)
	if err != nil {
		return "", err
	}
	s.invalidate()
	return slug, nil
}

func (s *Service) GetBuilding(ctx context.Context, slug string) (*domain.Building, error) {
	return s.store.GetBuilding(ctx, slug)
}

func (s *Service) GetEvent(ctx context.Context, slug string) (*domain.Event, error) {
	return s.store.GetEvent(ctx, slug)
}

func (s *Service) GetClub(ctx context.Context, slug string) (*domain.Club, error) {
	return s.store.GetClub(ctx, slug)
}

func (s *Service) GetService(ctx context.Context, slug string) (*domain.CampusService, error) {
	return s.store.GetService(ctx, slug)
}

func (s *Service) SearchEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	rangeKey := ""
	if f.DateRange != nil {
		rangeKey = f.DateRange.Start + ".." + f.DateRange.End
	}
	key := s.key("events", f.Query, f.Type, rangeKey)

	var cached []domain.Event
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	events, err := s.store.SearchEvents(ctx, f)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, events)
	return events, nil
}

func (s *Service) SearchClubs(ctx context.Context, f domain.ClubFilter) ([]domain.Club, error) {
	key := s.key("clubs", f.Query, f.Category, fmt.Sprintf("%t", f.ActiveOnly))

	var cached []domain.Club
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	clubs, err := s.store.SearchClubs(ctx, f)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, clubs)
	return clubs, nil
}

func (s *Service) SearchServices(ctx context.Context, f domain.ServiceFilter) ([]domain.CampusService, error) {
	key := s.key("services", f.Query, f.Type, f.AvailableTo)

	var cached []domain.CampusService
	if s.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	services, err := s.store.SearchServices(ctx, f)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, services)
	return services, nil
}

func (s *Service) Summary(ctx context.Context) (domain.KnowledgeSummary, error) {
	return s.store.Summary(ctx)
}

func (s *Service) Export(ctx context.Context) (*domain.KnowledgeDocument, error) {
	return s.store.Export(ctx)
}

func (s *Service) Import(ctx context.Context, doc *domain.KnowledgeDocument) error {
	if err := s.store.Import(ctx, doc); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// invalidate bumps the generation embedded in every cache key. Entries from
// older generations become unreachable and expire through their TTL.
func (s *Service) invalidate() {
	s.gen.Add(1)
}

func (s *Service) key(kind string, parts ...string) string {
	key := fmt.Sprintf("knowledge:%s:g%d", kind, s.gen.Load())
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (s *Service) fromCache(ctx context.Context, key string, out interface{}) bool {
	val, err := s.cache.Get(ctx, key)
	if err != nil || val == "" {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		s.log.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		s.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

var _ ports.KnowledgeStore = (*Service)(nil)
