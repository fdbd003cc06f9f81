package main

import (
	"context"
	"fmt"
	"time"

	"restaurant-catalog/internal/domain"
	"restaurant-catalog/internal/extract"
	"restaurant-catalog/internal/render"
	"restaurant-catalog/internal/service"

	"github.com/spf13/cobra"
)

var (
	listFixture   string
	listMinRating float64
	listName      string
	listTopRated  bool
	listPerRow    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Load the catalog once and print it as cards",
	Long: `Loads the catalog, optionally applies the rating and name filters, and
prints the displayed list. The name filter cannot be combined with the
rating flags.

Example:
  catalog list --top-rated
  catalog list --fixture testdata/restaurants.json --name pizza`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFixture, "fixture", "", "read a recorded payload from disk instead of the upstream URL")
	listCmd.Flags().Float64Var(&listMinRating, "min-rating", 0, "apply the rating filter with this threshold")
	listCmd.Flags().StringVar(&listName, "name", "", "apply the name filter with this query")
	listCmd.Flags().BoolVar(&listTopRated, "top-rated", false, "apply the rating filter with the configured threshold")
	listCmd.Flags().IntVar(&listPerRow, "per-row", 3, "cards per row")
	// Both filters start from the canonical list, so only one applies per run.
	listCmd.MarkFlagsMutuallyExclusive("name", "top-rated")
	listCmd.MarkFlagsMutuallyExclusive("name", "min-rating")
}

func runList(cmd *cobra.Command, args []string) error {
	path, err := extract.Parse(cfg.Upstream.RestaurantsPath)
	if err != nil {
		return fmt.Errorf("invalid restaurants path: %w", err)
	}

	loader := service.NewCatalogLoader(newSource(listFixture), nil, path, logger)
	browser := service.NewBrowser(loader, service.ParseRatingMode(cfg.Filter.RatingMode), logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Upstream.Timeout+time.Second)
	defer cancel()
	browser.Mount(ctx)
	defer browser.Unmount()
	if err := browser.Wait(ctx); err != nil {
		return err
	}

	if browser.Status() == domain.StatusLoaded {
		threshold := listMinRating
		if listTopRated && threshold == 0 {
			threshold = cfg.Filter.RatingThreshold
		}
		if threshold > 0 {
			if err := browser.ApplyRatingFilter(threshold); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("name") {
			if err := browser.ApplyNameFilter(listName); err != nil {
				return err
			}
		}
	}

	state := browser.Snapshot()
	fmt.Fprintln(cmd.OutOrStdout(), render.Status(state))
	if state.Status == domain.StatusLoaded {
		fmt.Fprintln(cmd.OutOrStdout(), render.Grid(state.Displayed, listPerRow))
	}
	if state.Status == domain.StatusFailed {
		return browser.Err()
	}
	return nil
}
