package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"restaurant-catalog/internal/domain"
	"restaurant-catalog/internal/extract"

	"go.uber.org/zap"
)

// DefaultRestaurantsPath is where the listing endpoint keeps its restaurant grid.
const DefaultRestaurantsPath = "data.cards[1].card.card.gridElements.infoWithStyle.restaurants"

var badgesPath = extract.MustParse("badges.imageBadges")

var (
	ErrTransport = errors.New("catalog transport failure")
	ErrDecode    = errors.New("catalog payload is not valid JSON")
)

type CatalogLoader struct {
	source PayloadSource
	cache  PayloadCache
	path   extract.Path
	logger *zap.Logger
}

// NewCatalogLoader builds a loader for source. cache may be nil.
func NewCatalogLoader(source PayloadSource, cache PayloadCache, path extract.Path, logger *zap.Logger) *CatalogLoader {
	if len(path) == 0 {
		path = extract.MustParse(DefaultRestaurantsPath)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogLoader{
		source: source,
		cache:  cache,
		path:   path,
		logger: logger,
	}
}

// Load fetches the payload once and turns it into a LoadResult. It never panics
// and never returns a half-populated list.
func (l *CatalogLoader) Load(ctx context.Context) domain.LoadResult {
	key := l.source.Describe()
	log := l.logger.With(zap.String("source", key))

	payload, fromCache := l.cached(ctx, key)
	if !fromCache {
		var err error
		payload, err = l.source.Fetch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.Debug("Catalog load cancelled", zap.Error(ctxErr))
				return domain.LoadResult{Status: domain.StatusFailed, Err: ctxErr}
			}
			log.Error("Catalog fetch failed", zap.Error(err))
			return domain.LoadResult{Status: domain.StatusFailed, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
		}
	}

	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		log.Error("Catalog payload decode failed", zap.Error(err), zap.Bool("from_cache", fromCache))
		return domain.LoadResult{Status: domain.StatusFailed, Err: fmt.Errorf("%w: %w", ErrDecode, err), FromCache: fromCache}
	}

	entries, ok := l.restaurantArray(raw)
	if !ok {
		log.Warn("Restaurants path not found in payload, treating as empty catalog",
			zap.String("path", l.path.String()))
		return domain.LoadResult{Status: domain.StatusLoaded, Restaurants: []domain.RestaurantSummary{}, ShapeMiss: true, FromCache: fromCache}
	}

	restaurants := SummariesFromPayload(entries)
	if skipped := len(entries) - len(restaurants); skipped > 0 {
		log.Warn("Skipped malformed catalog entries", zap.Int("skipped", skipped))
	}

	if !fromCache && l.cache != nil {
		if err := l.cache.Set(ctx, key, payload); err != nil {
			log.Warn("Failed to cache catalog payload", zap.Error(err))
		}
	}

	log.Info("Catalog loaded", zap.Int("restaurants", len(restaurants)), zap.Bool("from_cache", fromCache))
	return domain.LoadResult{Status: domain.StatusLoaded, Restaurants: restaurants, FromCache: fromCache}
}

// Source names the payload source; it doubles as the cache key.
func (l *CatalogLoader) Source() string {
	return l.source.Describe()
}

func (l *CatalogLoader) cached(ctx context.Context, key string) ([]byte, bool) {
	if l.cache == nil {
		return nil, false
	}
	payload, ok, err := l.cache.Get(ctx, key)
	if err != nil {
		l.logger.Warn("Catalog cache lookup failed", zap.String("source", key), zap.Error(err))
		return nil, false
	}
	return payload, ok
}

// restaurantArray accepts either the nested listing document or a bare array
// of entries, which is how offline fixtures are usually stored.
func (l *CatalogLoader) restaurantArray(raw any) ([]any, bool) {
	if arr, ok := raw.([]any); ok {
		return arr, true
	}
	return l.path.Array(raw)
}

// SummariesFromPayload maps raw entries to summaries, dropping entries without
// an id and keeping only the first entry for a repeated id.
func SummariesFromPayload(entries []any) []domain.RestaurantSummary {
	out := make([]domain.RestaurantSummary, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		r, ok := summaryFromEntry(entry)
		if !ok {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func summaryFromEntry(entry any) (domain.RestaurantSummary, bool) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return domain.RestaurantSummary{}, false
	}
	info := obj
	if inner, ok := extract.Object(obj, "info"); ok {
		info = inner
	}

	r := domain.RestaurantSummary{
		ID:            extract.String(info, "id"),
		Name:          extract.String(info, "name"),
		AvgRatingText: extract.String(info, "avgRatingString"),
		CostForTwo:    extract.String(info, "costForTwo"),
		Locality:      extract.String(info, "locality"),
		AreaName:      extract.String(info, "areaName"),
		Cuisines:      extract.Strings(info, "cuisines"),
		ImageID:       extract.String(info, "cloudinaryImageId"),
		IsOpen:        extract.Bool(info, "isOpen"),
	}
	if r.ID == "" {
		return domain.RestaurantSummary{}, false
	}

	if rating, ok := extract.Number(info, "avgRating"); ok && rating >= 0 {
		r.AvgRating = &rating
	}

	if sla, ok := extract.Object(info, "sla"); ok {
		r.DeliveryETA = extract.String(sla, "slaString")
		if minutes, ok := extract.Number(sla, "deliveryTime"); ok {
			r.DeliveryTime = int(minutes)
		}
	}

	if discount, ok := extract.Object(info, "aggregatedDiscountInfoV3"); ok {
		r.Discount = strings.TrimSpace(extract.String(discount, "header") + " " + extract.String(discount, "subHeader"))
	}

	if badges, ok := badgesPath.Array(info); ok {
		for _, b := range badges {
			if badge, ok := b.(map[string]any); ok {
				if desc := extract.String(badge, "description"); desc != "" {
					r.Badges = append(r.Badges, desc)
				}
			}
		}
	}

	if cta, ok := extract.Object(obj, "cta"); ok {
		r.Link = extract.String(cta, "link")
	}
	return r, true
}
