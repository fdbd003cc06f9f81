package storage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"restaurant-catalog/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	filterAppliedKey    = "catalog:filters:applied"
	filterThresholdsKey = "catalog:filters:thresholds"
	filterQueriesKey    = "catalog:filters:queries"
	filterDailyKeyFmt   = "catalog:filters:daily:"
)

// RedisFilterStats keeps filter usage counters in Redis.
type RedisFilterStats struct {
	Client *redis.Client
}

func NewRedisFilterStats(client *redis.Client) *RedisFilterStats {
	return &RedisFilterStats{Client: client}
}

func (s *RedisFilterStats) RecordFilterEvent(ctx context.Context, event domain.FilterEvent) error {
	day := event.Timestamp
	if day.IsZero() {
		day = time.Now()
	}
	dailyKey := filterDailyKeyFmt + day.Format("2006-01-02")

	pipe := s.Client.TxPipeline()
	pipe.HIncrBy(ctx, filterAppliedKey, event.Filter, 1)
	pipe.HIncrBy(ctx, dailyKey, event.Filter, 1)
	pipe.Expire(ctx, dailyKey, 7*24*time.Hour)
	switch event.Filter {
	case "rating":
		pipe.HIncrBy(ctx, filterThresholdsKey, strconv.FormatFloat(event.Threshold, 'f', 1, 64), 1)
	case "name":
		if q := strings.ToLower(strings.TrimSpace(event.Query)); q != "" {
			pipe.ZIncrBy(ctx, filterQueriesKey, 1, q)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// FilterStats returns the counters and the top most frequent name queries.
func (s *RedisFilterStats) FilterStats(ctx context.Context, top int) (domain.FilterStats, error) {
	if top <= 0 {
		top = 10
	}
	stats := domain.FilterStats{
		Applied:    map[string]int64{},
		Thresholds: map[string]int64{},
		TopQueries: []domain.QueryCount{},
	}

	applied, err := s.Client.HGetAll(ctx, filterAppliedKey).Result()
	if err != nil {
		return stats, err
	}
	for k, v := range applied {
		stats.Applied[k], _ = strconv.ParseInt(v, 10, 64)
	}

	thresholds, err := s.Client.HGetAll(ctx, filterThresholdsKey).Result()
	if err != nil {
		return stats, err
	}
	for k, v := range thresholds {
		stats.Thresholds[k], _ = strconv.ParseInt(v, 10, 64)
	}

	queries, err := s.Client.ZRevRangeWithScores(ctx, filterQueriesKey, 0, int64(top-1)).Result()
	if err != nil {
		return stats, err
	}
	for _, z := range queries {
		member, _ := z.Member.(string)
		stats.TopQueries = append(stats.TopQueries, domain.QueryCount{Query: member, Count: int64(z.Score)})
	}
	return stats, nil
}
