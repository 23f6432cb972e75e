package ports

import (
	"context"
	"errors"
	"time"

	"github.com/seu-repo/campus-assistant/internal/domain"
)

// ErrNotFound is returned by Get* lookups when no record exists for a slug.
var ErrNotFound = errors.New("record not found")

// KnowledgeStore is the persisted campus knowledge aggregate. Upserts are
// idempotent by slug and rewrite the whole backing document; a corrupt or
// missing document is replaced by an empty default at load time, never
// surfaced to callers.
type KnowledgeStore interface {
	CampusInfo(ctx context.Context) (domain.CampusInfo, error)
	SetCampusInfo(ctx context.Context, info domain.CampusInfo) error

	UpsertBuilding(ctx context.Context, b domain.Building) (string, error)
	UpsertEvent(ctx context.Context, e domain.Event) (string, error)
	UpsertClub(ctx context.Context, c domain.Club) (string, error)
	UpsertService(ctx context.Context, s domain.CampusService) (string, error)

	GetBuilding(ctx context.Context, slug string) (*domain.Building, error)
	GetEvent(ctx context.Context, slug string) (*domain.Event, error)
	GetClub(ctx context.Context, slug string) (*domain.Club, error)
	GetService(ctx context.Context, slug string) (*domain.CampusService, error)

	SearchEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error)
	SearchClubs(ctx context.Context, f domain.ClubFilter) ([]domain.Club, error)
	SearchServices(ctx context.Context, f domain.ServiceFilter) ([]domain.CampusService, error)

	Summary(ctx context.Context) (domain.KnowledgeSummary, error)

	Export(ctx context.Context) (*domain.KnowledgeDocument, error)
	Import(ctx context.Context, doc *domain.KnowledgeDocument) error
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
