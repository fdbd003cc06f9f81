package service

import (
	"context"

	"restaurant-catalog/internal/domain"
	"restaurant-catalog/internal/storage"
)

type PayloadSource interface {
	Fetch(ctx context.Context) ([]byte, error)
	Describe() string
}

type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

type LoadJournal interface {
	RecordLoad(ctx context.Context, record *domain.LoadRecord) error
	RecentLoads(ctx context.Context, limit int) ([]domain.LoadRecord, error)
}

type EventPublisher interface {
	PublishFilterEvent(ctx context.Context, event domain.FilterEvent) error
}

type FilterStatsStore interface {
	RecordFilterEvent(ctx context.Context, event domain.FilterEvent) error
}

type FilterStatsReader interface {
	FilterStats(ctx context.Context, top int) (domain.FilterStats, error)
}

type Loader interface {
	Load(ctx context.Context) domain.LoadResult
}

type QRGenerator interface {
	Generate(restaurant domain.RestaurantSummary) ([]byte, error)
}

type SessionServiceInterface interface {
	Open(ctx context.Context) string
	Close(sessionID string) error
	State(sessionID string) (domain.BrowserState, error)
	ApplyRatingFilter(ctx context.Context, sessionID string, threshold *float64) (domain.BrowserState, error)
	SetQuery(sessionID, query string) (domain.BrowserState, error)
	ApplyNameFilter(ctx context.Context, sessionID string, query *string) (domain.BrowserState, error)
	RestaurantQRCode(sessionID, restaurantID string) ([]byte, error)
	RecentLoads(ctx context.Context, limit int) ([]domain.LoadRecord, error)
}

var (
	_ PayloadSource           = (*storage.HTTPSource)(nil)
	_ PayloadSource           = (*storage.FileSource)(nil)
	_ PayloadCache            = (*storage.RedisPayloadCache)(nil)
	_ LoadJournal             = (*storage.PostgresJournal)(nil)
	_ EventPublisher          = (*storage.KafkaPublisher)(nil)
	_ FilterStatsStore        = (*storage.RedisFilterStats)(nil)
	_ FilterStatsReader       = (*storage.RedisFilterStats)(nil)
	_ Loader                  = (*CatalogLoader)(nil)
	_ SessionServiceInterface = (*SessionService)(nil)
)
