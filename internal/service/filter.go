package service

import (
	"strings"

	"restaurant-catalog/internal/domain"
)

// DefaultRatingThreshold is the "Top Rated" cut-off.
const DefaultRatingThreshold = 4.5

// RatingMode controls whether the rating filter also replaces the canonical list.
type RatingMode string

const (
	// RatingModeView narrows only the displayed list.
	RatingModeView RatingMode = "view"
	// RatingModeDestructive also overwrites the canonical list, so the
	// unfiltered baseline is gone until the next load.
	RatingModeDestructive RatingMode = "destructive"
)

// ParseRatingMode maps a config value to a RatingMode, falling back to RatingModeView.
func ParseRatingMode(s string) RatingMode {
	if RatingMode(strings.ToLower(strings.TrimSpace(s))) == RatingModeDestructive {
		return RatingModeDestructive
	}
	return RatingModeView
}

// FilterByRating keeps entries whose rating is present and >= threshold, in input order.
func FilterByRating(list []domain.RestaurantSummary, threshold float64) []domain.RestaurantSummary {
	out := make([]domain.RestaurantSummary, 0, len(list))
	for _, r := range list {
		if r.AvgRating != nil && *r.AvgRating >= threshold {
			out = append(out, r)
		}
	}
	return out
}

// FilterByName keeps entries whose name contains query, ignoring case. An
// empty query keeps everything.
func FilterByName(list []domain.RestaurantSummary, query string) []domain.RestaurantSummary {
	out := make([]domain.RestaurantSummary, 0, len(list))
	needle := strings.ToLower(query)
	for _, r := range list {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

func cloneList(list []domain.RestaurantSummary) []domain.RestaurantSummary {
	out := make([]domain.RestaurantSummary, len(list))
	copy(out, list)
	return out
}
