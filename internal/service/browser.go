package service

import (
	"context"
	"errors"
	"sync"

	"restaurant-catalog/internal/domain"

	"go.uber.org/zap"
)

var ErrNotLoaded = errors.New("catalog is not loaded yet")

// Browser owns the list state of one catalog view: the canonical list from the
// last successful load, the displayed subset, and the held search query. All
// transitions replace slices; callers only ever receive copies.
type Browser struct {
	loader Loader
	mode   RatingMode
	logger *zap.Logger

	mu        sync.RWMutex
	status    domain.LoadStatus
	loadErr   error
	canonical []domain.RestaurantSummary
	displayed []domain.RestaurantSummary
	query     string

	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewBrowser(loader Loader, mode RatingMode, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		loader:    loader,
		mode:      mode,
		logger:    logger,
		status:    domain.StatusLoading,
		canonical: []domain.RestaurantSummary{},
		displayed: []domain.RestaurantSummary{},
		done:      make(chan struct{}),
	}
}

// Mount starts the one and only load for this browser. Further calls are no-ops.
func (b *Browser) Mount(ctx context.Context) {
	b.mu.Lock()
	if b.mounted || b.unmounted {
		b.mu.Unlock()
		return
	}
	b.mounted = true
	loadCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.mu.Unlock()

	go func() {
		defer close(b.done)
		defer cancel()
		result := b.loader.Load(loadCtx)
		b.finishLoad(loadCtx, result)
	}()
}

func (b *Browser) finishLoad(ctx context.Context, result domain.LoadResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unmounted || ctx.Err() != nil {
		b.logger.Debug("Discarding load result for unmounted browser", zap.String("status", string(result.Status)))
		return
	}

	switch result.Status {
	case domain.StatusLoaded:
		b.status = domain.StatusLoaded
		b.loadErr = nil
		b.canonical = cloneList(result.Restaurants)
		b.displayed = cloneList(result.Restaurants)
	default:
		b.status = domain.StatusFailed
		b.loadErr = result.Err
		if b.loadErr == nil {
			b.loadErr = errors.New("catalog load failed")
		}
	}
}

// Unmount cancels an outstanding load and waits for it to settle. A result that
// arrives afterwards is dropped.
func (b *Browser) Unmount() {
	b.mu.Lock()
	if b.unmounted {
		b.mu.Unlock()
		return
	}
	b.unmounted = true
	mounted := b.mounted
	if b.cancel != nil {
		b.cancel()
	}
	b.mu.Unlock()

	if mounted {
		<-b.done
	}
}

// Wait blocks until the load has settled or ctx is done.
func (b *Browser) Wait(ctx context.Context) error {
	b.mu.RLock()
	mounted := b.mounted
	b.mu.RUnlock()
	if !mounted {
		return errors.New("browser is not mounted")
	}

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Browser) Status() domain.LoadStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

func (b *Browser) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadErr
}

func (b *Browser) Canonical() []domain.RestaurantSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneList(b.canonical)
}

func (b *Browser) Displayed() []domain.RestaurantSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneList(b.displayed)
}

func (b *Browser) Query() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.query
}

// ApplyRatingFilter shows the canonical entries rated at or above threshold. In
// RatingModeDestructive the canonical list is replaced as well.
func (b *Browser) ApplyRatingFilter(threshold float64) error {
	_, _, err := b.applyRating(threshold)
	return err
}

// applyRating filters and reports the canonical size it started from together
// with the resulting state, all under one lock.
func (b *Browser) applyRating(threshold float64) (int, domain.BrowserState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != domain.StatusLoaded {
		return 0, domain.BrowserState{}, ErrNotLoaded
	}

	before := len(b.canonical)
	filtered := FilterByRating(b.canonical, threshold)
	if b.mode == RatingModeDestructive {
		b.canonical = cloneList(filtered)
	}
	b.displayed = filtered
	return before, b.snapshotLocked(), nil
}

// SetQuery stores the search text without filtering.
func (b *Browser) SetQuery(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = text
}

// ApplyNameFilter holds query and shows the canonical entries whose name contains it.
func (b *Browser) ApplyNameFilter(query string) error {
	_, _, err := b.applyName(&query)
	return err
}

// Search applies the name filter with the currently held query.
func (b *Browser) Search() error {
	_, _, err := b.applyName(nil)
	return err
}

// applyName filters by query, or by the held query when query is nil.
func (b *Browser) applyName(query *string) (int, domain.BrowserState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != domain.StatusLoaded {
		return 0, domain.BrowserState{}, ErrNotLoaded
	}

	if query != nil {
		b.query = *query
	}
	b.displayed = FilterByName(b.canonical, b.query)
	return len(b.canonical), b.snapshotLocked(), nil
}

func (b *Browser) Snapshot() domain.BrowserState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Browser) snapshotLocked() domain.BrowserState {
	state := domain.BrowserState{
		Status:     b.status,
		Query:      b.query,
		RatingMode: string(b.mode),
		Canonical:  cloneList(b.canonical),
		Displayed:  cloneList(b.displayed),
		Total:      len(b.canonical),
		Shown:      len(b.displayed),
	}
	if b.loadErr != nil {
		state.Error = b.loadErr.Error()
	}
	return state
}
