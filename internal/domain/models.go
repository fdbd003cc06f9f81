package domain

import "time"

// RestaurantSummary is one catalog entry as shown on a card. Only ID, Name and
// AvgRating take part in filtering; the rest is carried for display.
type RestaurantSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	AvgRating     *float64 `json:"avg_rating,omitempty"`
	AvgRatingText string   `json:"avg_rating_text,omitempty"`
	CostForTwo    string   `json:"cost_for_two,omitempty"`
	Locality      string   `json:"locality,omitempty"`
	AreaName      string   `json:"area_name,omitempty"`
	Cuisines      []string `json:"cuisines,omitempty"`
	ImageID       string   `json:"image_id,omitempty"`
	DeliveryETA   string   `json:"delivery_eta,omitempty"`
	DeliveryTime  int      `json:"delivery_time,omitempty"`
	Badges        []string `json:"badges,omitempty"`
	Discount      string   `json:"discount,omitempty"`
	IsOpen        bool     `json:"is_open"`
	Link          string   `json:"link,omitempty"`
}

// HasRating reports whether the entry carries a usable numeric rating.
func (r RestaurantSummary) HasRating() bool {
	return r.AvgRating != nil
}

type LoadStatus string

const (
	StatusLoading LoadStatus = "loading"
	StatusLoaded  LoadStatus = "loaded"
	StatusFailed  LoadStatus = "failed"
)

// LoadResult is the outcome of a single catalog fetch. Restaurants is only
// meaningful when Status is StatusLoaded; Err is only set when it is StatusFailed.
type LoadResult struct {
	Status      LoadStatus
	Restaurants []RestaurantSummary
	Err         error
	// ShapeMiss is set when the payload decoded but the restaurants path was absent.
	ShapeMiss bool
	FromCache bool
}

// BrowserState is a point-in-time copy of a browser's lists and status.
type BrowserState struct {
	Status     LoadStatus          `json:"status"`
	Error      string              `json:"error,omitempty"`
	Query      string              `json:"query"`
	RatingMode string              `json:"rating_mode"`
	Canonical  []RestaurantSummary `json:"-"`
	Displayed  []RestaurantSummary `json:"displayed"`
	Total      int                 `json:"canonical_count"`
	Shown      int                 `json:"displayed_count"`
}

// FilterEvent is published after every filter action.
type FilterEvent struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	Filter    string    `json:"filter"`
	Threshold float64   `json:"threshold,omitempty"`
	Query     string    `json:"query,omitempty"`
	Before    int       `json:"before"`
	After     int       `json:"after"`
	Timestamp time.Time `json:"timestamp"`
}

// LoadRecord is one row of the load journal.
type LoadRecord struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	SourceURL   string    `json:"source_url"`
	Status      string    `json:"status"`
	Restaurants int       `json:"restaurants"`
	ShapeMiss   bool      `json:"shape_miss"`
	FromCache   bool      `json:"from_cache"`
	Error       string    `json:"error,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// QueryCount is how often a name query was applied.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// FilterStats summarises filter usage across all sessions.
type FilterStats struct {
	Applied    map[string]int64 `json:"applied"`
	Thresholds map[string]int64 `json:"thresholds"`
	TopQueries []QueryCount     `json:"top_queries"`
}
