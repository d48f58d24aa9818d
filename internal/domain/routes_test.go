package domain

import "testing"

func TestNewRouteTableRejectsInvalidTemplates(t *testing.T) {
	tests := []struct {
		name string
		cfg  RouteConfig
	}{
		{
			name: "relative broken route",
			cfg:  RouteConfig{Broken: "not-found"},
		},
		{
			name: "type route without slug",
			cfg: RouteConfig{
				Broken: "/not-found",
				Types:  map[string]string{"product": "/products/{id}"},
			},
		},
		{
			name: "type route with extra variable",
			cfg: RouteConfig{
				Broken: "/not-found",
				Types:  map[string]string{"product": "/products/{lang}/{id}/{slug}"},
			},
		},
		{
			name: "unparsable template",
			cfg: RouteConfig{
				Broken: "/not-found",
				Types:  map[string]string{"product": "/products/{id/{slug}"},
			},
		},
		{
			name: "duplicate bookmark",
			cfg: RouteConfig{
				Broken:    "/not-found",
				Bookmarks: []NamedRoute{{Name: "about", Template: "/about"}, {Name: "about", Template: "/a"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRouteTable(tt.cfg); err == nil {
				t.Error("NewRouteTable() should have failed")
			}
		})
	}
}

func TestRoutePatterns(t *testing.T) {
	routes := testRoutes(t)

	if got := routes.BrokenPattern(); got != "/not-found" {
		t.Errorf("BrokenPattern() = %q", got)
	}
	if got, ok := routes.BookmarkPattern("about"); !ok || got != "/about" {
		t.Errorf("BookmarkPattern(about) = %q, %v", got, ok)
	}
	if got, ok := routes.DetailPattern("product"); !ok || got != "/products/{id}/{slug}" {
		t.Errorf("DetailPattern(product) = %q, %v", got, ok)
	}
	if _, ok := routes.DetailPattern("article"); ok {
		t.Error("DetailPattern(article) should not exist")
	}
	if got, ok := routes.DetailPath("store", "X1", "main-street"); !ok || got != "/stores/X1/main-street" {
		t.Errorf("DetailPath() = %q, %v", got, ok)
	}
	names := routes.BookmarkNames()
	if !slicesEqual(names, []string{"about", "jobs", "stores"}) {
		t.Errorf("BookmarkNames() = %v", names)
	}
}
