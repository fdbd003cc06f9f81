package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-catalog/internal/domain"
	"restaurant-catalog/internal/mocks"
	"restaurant-catalog/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mountedBrowser(t *testing.T, result domain.LoadResult, mode service.RatingMode) *service.Browser {
	t.Helper()
	loader := mocks.NewLoader(t)
	loader.On("Load", mock.Anything).Return(result).Once()

	browser := service.NewBrowser(loader, mode, nil)
	browser.Mount(context.Background())
	t.Cleanup(browser.Unmount)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, browser.Wait(ctx))
	return browser
}

func TestBrowser_InitialState(t *testing.T) {
	browser := service.NewBrowser(mocks.NewLoader(t), service.RatingModeView, nil)

	assert.Equal(t, domain.StatusLoading, browser.Status())
	assert.Empty(t, browser.Canonical())
	assert.Empty(t, browser.Displayed())
	assert.Equal(t, "", browser.Query())
	assert.Error(t, browser.Wait(context.Background()))
	assert.ErrorIs(t, browser.ApplyRatingFilter(4.5), service.ErrNotLoaded)
	assert.ErrorIs(t, browser.ApplyNameFilter("pizza"), service.ErrNotLoaded)
	assert.ErrorIs(t, browser.Search(), service.ErrNotLoaded)
}

func TestBrowser_LoadedListsMatch(t *testing.T) {
	browser := mountedBrowser(t, loadedResult(), service.RatingModeView)

	assert.Equal(t, domain.StatusLoaded, browser.Status())
	assert.NoError(t, browser.Err())
	assert.Equal(t, sampleCatalog(), browser.Canonical())
	assert.Equal(t, browser.Canonical(), browser.Displayed())
}

func TestBrowser_FailedLoad(t *testing.T) {
	cause := errors.New("connection refused")
	browser := mountedBrowser(t, domain.LoadResult{
		Status: domain.StatusFailed,
		Err:    errors.Join(service.ErrTransport, cause),
	}, service.RatingModeView)

	assert.Equal(t, domain.StatusFailed, browser.Status())
	assert.ErrorIs(t, browser.Err(), service.ErrTransport)
	assert.Empty(t, browser.Displayed())
	assert.Contains(t, browser.Snapshot().Error, "connection refused")
	assert.ErrorIs(t, browser.ApplyRatingFilter(4.5), service.ErrNotLoaded)
}

func TestBrowser_EmptyCatalog(t *testing.T) {
	browser := mountedBrowser(t, domain.LoadResult{
		Status:      domain.StatusLoaded,
		Restaurants: []domain.RestaurantSummary{},
		ShapeMiss:   true,
	}, service.RatingModeView)

	assert.Equal(t, domain.StatusLoaded, browser.Status())
	require.NoError(t, browser.ApplyRatingFilter(4.5))
	assert.Empty(t, browser.Displayed())
	require.NoError(t, browser.ApplyNameFilter("pizza"))
	assert.Empty(t, browser.Displayed())
}

func TestBrowser_RatingFilterViewMode(t *testing.T) {
	browser := mountedBrowser(t, loadedResult(), service.RatingModeView)

	require.NoError(t, browser.ApplyRatingFilter(4.5))
	assert.Equal(t, []string{"Pizza Hut", "LunchBox - Meals and Thalis"}, names(browser.Displayed()))
	assert.Len(t, browser.Canonical(), 6)

	// the unfiltered baseline is still reachable
	require.NoError(t, browser.ApplyNameFilter(""))
	assert.Len(t, browser.Displayed(), 6)
}

func TestBrowser_RatingFilterDestructiveMode(t *testing.T) {
	browser := mountedBrowser(t, loadedResult(), service.RatingModeDestructive)

	require.NoError(t, browser.ApplyRatingFilter(4.5))
	assert.Equal(t, []string{"Pizza Hut", "LunchBox - Meals and Thalis"}, names(browser.Canonical()))

	require.NoError(t, browser.ApplyNameFilter(""))
	assert.Equal(t, []string{"Pizza Hut", "LunchBox - Meals and Thalis"}, names(browser.Displayed()))

	require.NoError(t, browser.ApplyRatingFilter(4.0))
	assert.Len(t, browser.Displayed(), 2)
}

func TestBrowser_NameFilterReadsCanonical(t *testing.T) {
	browser := mountedBrowser(t, loadedResult(), service.RatingModeView)

	require.NoError(t, browser.ApplyNameFilter("pizza"))
	assert.Equal(t, []string{"Domino's Pizza", "Pizza Hut"}, names(browser.Displayed()))
	assert.Equal(t, "pizza", browser.Query())

	// a second search starts from the canonical list, not the previous result
	require.NoError(t, browser.ApplyNameFilter("kfc"))
	assert.Equal(t, []string{"KFC"}, names(browser.Displayed()))
}

func TestBrowser_SetQueryThenSearch(t *testing.T) {
	browser := mountedBrowser(t, loadedResult(), service.RatingModeView)

	browser.SetQuery("Hut")
	assert.Len(t, browser.Displayed(), 6)

	require.NoError(t, browser.Search())
	assert.Equal(t, []string{"Pizza Hut"}, names(browser.Displayed()))

	snap := browser.Snapshot()
	assert.Equal(t, "Hut", snap.Query)
	assert.Equal(t, 6, snap.Total)
	assert.Equal(t, 1, snap.Shown)
}

func TestBrowser_ReturnedListsAreCopies(t *testing.T) {
	browser := mountedBrowser(t, loadedResult(), service.RatingModeView)

	displayed := browser.Displayed()
	displayed[0].Name = "changed"
	assert.Equal(t, "Domino's Pizza", browser.Displayed()[0].Name)
	assert.Equal(t, "Domino's Pizza", browser.Canonical()[0].Name)
}

func TestBrowser_MountOnce(t *testing.T) {
	loader := mocks.NewLoader(t)
	loader.On("Load", mock.Anything).Return(loadedResult()).Once()

	browser := service.NewBrowser(loader, service.RatingModeView, nil)
	browser.Mount(context.Background())
	browser.Mount(context.Background())
	require.NoError(t, browser.Wait(context.Background()))
	browser.Unmount()

	loader.AssertNumberOfCalls(t, "Load", 1)
}

func TestBrowser_UnmountCancelsLoad(t *testing.T) {
	loader := mocks.NewLoader(t)
	loader.On("Load", mock.Anything).Return(func(ctx context.Context) domain.LoadResult {
		<-ctx.Done()
		return loadedResult()
	}).Once()

	browser := service.NewBrowser(loader, service.RatingModeView, nil)
	browser.Mount(context.Background())
	browser.Unmount()

	assert.Equal(t, domain.StatusLoading, browser.Status())
	assert.Empty(t, browser.Canonical())
	assert.Empty(t, browser.Displayed())
}

func TestBrowser_MountAfterUnmountIsNoop(t *testing.T) {
	browser := service.NewBrowser(mocks.NewLoader(t), service.RatingModeView, nil)
	browser.Unmount()
	browser.Mount(context.Background())

	assert.Equal(t, domain.StatusLoading, browser.Status())
}
