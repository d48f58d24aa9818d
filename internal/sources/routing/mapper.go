package routing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
)

// Mapper converts a parsed routes file to a Site
type Mapper struct{}

// NewMapper creates a new routes mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapSite validates file and compiles its routes. Sections left out of the
// file fall back to the built-in ones, except type routes which are required.
func (m *Mapper) MapSite(file RoutesFile) (*Site, error) {
	if len(file.Types) == 0 {
		return nil, errors.New("routes file declares no type routes")
	}

	defaults := domain.DefaultRouteConfig()
	cfg := domain.RouteConfig{
		Broken: file.Broken,
		Types:  file.Types,
	}
	if cfg.Broken == "" {
		cfg.Broken = defaults.Broken
	}

	for _, b := range file.Bookmarks {
		if b.Route == "" {
			return nil, fmt.Errorf("bookmark %q has no route", b.Name)
		}
		cfg.Bookmarks = append(cfg.Bookmarks, domain.NamedRoute{Name: b.Name, Template: b.Route})
	}

	categories := slices.Clone(defaultBlogCategories)
	if len(file.BlogCategories) > 0 {
		categories = file.BlogCategories
	}

	flavours := slices.Clone(defaultFlavours)
	if len(file.ProductFlavours) > 0 {
		flavours = make([]Flavour, 0, len(file.ProductFlavours))
		for _, f := range file.ProductFlavours {
			if f.Value == "" {
				return nil, errors.New("product flavour without value")
			}
			label := f.Label
			if label == "" {
				label = f.Value
			}
			flavours = append(flavours, Flavour{Value: f.Value, Label: label})
		}
	}

	return build(cfg, categories, flavours)
}
