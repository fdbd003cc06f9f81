// Package render draws catalog entries as terminal cards.
package render

import (
	"fmt"
	"strings"

	"restaurant-catalog/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#FC8019")
	muted  = lipgloss.Color("#7E808C")
	good   = lipgloss.Color("#48C479")
	fair   = lipgloss.Color("#DB7C38")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			Width(34)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	detailStyle   = lipgloss.NewStyle().Foreground(muted)
	discountStyle = lipgloss.NewStyle().Italic(true)
)

// Card renders one entry: name, cuisines, rating, cost for two and delivery time.
func Card(r domain.RestaurantSummary) string {
	lines := []string{nameStyle.Render(r.Name)}
	if len(r.Cuisines) > 0 {
		lines = append(lines, detailStyle.Render(strings.Join(r.Cuisines, ", ")))
	}
	lines = append(lines, ratingLabel(r))
	if r.CostForTwo != "" {
		lines = append(lines, r.CostForTwo)
	}
	if r.DeliveryETA != "" {
		lines = append(lines, detailStyle.Render(r.DeliveryETA))
	}
	if r.Discount != "" {
		lines = append(lines, discountStyle.Render(r.Discount))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func ratingLabel(r domain.RestaurantSummary) string {
	if r.AvgRating == nil {
		text := r.AvgRatingText
		if text == "" {
			text = "--"
		}
		return detailStyle.Render("★ " + text)
	}
	color := fair
	if *r.AvgRating >= 4.0 {
		color = good
	}
	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("★ %.1f", *r.AvgRating))
}

// Grid lays cards out in rows of perRow.
func Grid(list []domain.RestaurantSummary, perRow int) string {
	if len(list) == 0 {
		return detailStyle.Render("No restaurants to show.")
	}
	if perRow <= 0 {
		perRow = 3
	}

	var rows []string
	for start := 0; start < len(list); start += perRow {
		end := start + perRow
		if end > len(list) {
			end = len(list)
		}
		cards := make([]string, 0, end-start)
		for _, r := range list[start:end] {
			cards = append(cards, Card(r))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Status renders the one-line summary shown above the grid.
func Status(state domain.BrowserState) string {
	switch state.Status {
	case domain.StatusLoading:
		return detailStyle.Render("Loading restaurants…")
	case domain.StatusFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935")).Render("Failed to load restaurants: " + state.Error)
	}
	line := fmt.Sprintf("Showing %d of %d restaurants", state.Shown, state.Total)
	if state.Query != "" {
		line += fmt.Sprintf(" matching %q", state.Query)
	}
	return nameStyle.Render(line)
}
