package routing

import (
	"testing"
)

func TestMapperMapSite(t *testing.T) {
	file := RoutesFile{
		Bookmarks: []BookmarkRoute{{Name: "about", Route: "/about{?ref}"}},
		Types: map[string]string{
			"product": "/products/{id}/{slug}{?ref}",
		},
		ProductFlavours: []FlavourEntry{{Value: "Tart"}},
	}

	site, err := NewMapper().MapSite(file)
	if err != nil {
		t.Fatalf("MapSite() error = %v", err)
	}

	if got := site.Routes.BrokenPattern(); got != "/not-found" {
		t.Errorf("broken pattern = %q, want built-in /not-found", got)
	}
	if names := site.Routes.BookmarkNames(); len(names) != 1 || names[0] != "about" {
		t.Errorf("BookmarkNames() = %v", names)
	}
	if len(site.BlogCategories) != 3 {
		t.Errorf("BlogCategories = %v, want built-in categories", site.BlogCategories)
	}
	if got := site.FlavourLabel("Tart"); got != "Tart" {
		t.Errorf("FlavourLabel(Tart) = %q, label should default to value", got)
	}
}

func TestMapperMapSiteErrors(t *testing.T) {
	tests := []struct {
		name string
		file RoutesFile
	}{
		{
			name: "no type routes",
			file: RoutesFile{},
		},
		{
			name: "type route without slug",
			file: RoutesFile{Types: map[string]string{"product": "/products/{id}"}},
		},
		{
			name: "relative template",
			file: RoutesFile{Types: map[string]string{"product": "products/{id}/{slug}"}},
		},
		{
			name: "bookmark without route",
			file: RoutesFile{
				Types:     map[string]string{"product": "/products/{id}/{slug}"},
				Bookmarks: []BookmarkRoute{{Name: "about"}},
			},
		},
		{
			name: "flavour without value",
			file: RoutesFile{
				Types:           map[string]string{"product": "/products/{id}/{slug}"},
				ProductFlavours: []FlavourEntry{{Label: "Tarts"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapper().MapSite(tt.file); err == nil {
				t.Error("MapSite() should have failed")
			}
		})
	}
}

func TestDefaultFlavourLabels(t *testing.T) {
	site, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := map[string]string{
		"Macaron": "Macarons",
		"Cupcake": "Cup Cakes",
		"Pie":     "Little Pies",
		"Tart":    "Tart",
	}
	for value, want := range tests {
		if got := site.FlavourLabel(value); got != want {
			t.Errorf("FlavourLabel(%q) = %q, want %q", value, got, want)
		}
	}
}
