package service

import (
	"strings"

	"restaurant-catalog/internal/domain"

	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

// Generate encodes the restaurant's deep link, or BaseURL/restaurants/{id} when
// the entry came without one.
func (g DefaultQRGenerator) Generate(restaurant domain.RestaurantSummary) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.Link(restaurant), qrcode.Medium, size)
}

func (g DefaultQRGenerator) Link(restaurant domain.RestaurantSummary) string {
	if restaurant.Link != "" {
		return restaurant.Link
	}
	return strings.TrimRight(g.BaseURL, "/") + "/restaurants/" + restaurant.ID
}
