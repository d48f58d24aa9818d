// Package routing loads the routing table and the listing vocabulary of
// the shop front.
package routing

import (
	"fmt"
	"slices"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
)

// Site is the validated routing configuration.
type Site struct {
	Routes         *domain.RouteTable
	BlogCategories []string
	Flavours       []Flavour
}

// Flavour is a product flavour value and its display label.
type Flavour struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FlavourLabel returns the display label of value, or value itself.
func (s *Site) FlavourLabel(value string) string {
	for _, f := range s.Flavours {
		if f.Value == value {
			return f.Label
		}
	}
	return value
}

var (
	defaultBlogCategories = []string{"Announcements", "Do it yourself", "Behind the scenes"}
	defaultFlavours       = []Flavour{
		{Value: "Macaron", Label: "Macarons"},
		{Value: "Cupcake", Label: "Cup Cakes"},
		{Value: "Pie", Label: "Little Pies"},
	}
)

// Default returns the built-in site.
func Default() (*Site, error) {
	return build(domain.DefaultRouteConfig(), slices.Clone(defaultBlogCategories), slices.Clone(defaultFlavours))
}

// Load returns the site described by path, or the built-in site when path
// is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	file, err := NewLoader(path).Load()
	if err != nil {
		return nil, err
	}
	return NewMapper().MapSite(file)
}

func build(cfg domain.RouteConfig, categories []string, flavours []Flavour) (*Site, error) {
	table, err := domain.NewRouteTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid routes: %w", err)
	}
	return &Site{
		Routes:         table,
		BlogCategories: categories,
		Flavours:       flavours,
	}, nil
}
