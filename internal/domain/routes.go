package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// RouteConfig is the raw, ordered routing configuration of the site.
// Templates are RFC 6570 URI templates rooted at "/".
//
// Example: "/products/{id}/{slug}{?ref}"
type RouteConfig struct {
	Broken    string
	Bookmarks []NamedRoute
	Types     map[string]string
}

// NamedRoute binds a bookmark name to the template of its dedicated page.
type NamedRoute struct {
	Name     string
	Template string
}

// DefaultRouteConfig mirrors the routes of the shop front.
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		Broken: "/not-found{?ref}",
		Bookmarks: []NamedRoute{
			{Name: "about", Template: "/about{?ref}"},
			{Name: "jobs", Template: "/jobs{?ref}"},
			{Name: "stores", Template: "/stores{?ref}"},
		},
		Types: map[string]string{
			"store":     "/stores/{id}/{slug}{?ref}",
			"product":   "/products/{id}/{slug}{?ref}",
			"job-offer": "/jobs/{id}/{slug}{?ref}",
			"blog-post": "/blog/{id}/{slug}{?ref}",
			"selection": "/selections/{id}/{slug}{?ref}",
		},
	}
}

// route is a parsed template plus the chi pattern serving it.
type route struct {
	tmpl    *uritemplate.Template
	pattern string
}

// RouteTable is the immutable type→route and bookmark→route table.
// It is built once at startup and shared by every request.
type RouteTable struct {
	broken    route
	bookmarks []namedRoute
	types     map[string]route
}

type namedRoute struct {
	name string
	route
}

var (
	// Only {?ref} / {&ref} style query expressions may follow the path.
	queryExprRe = regexp.MustCompile(`\{[?&][a-z,]+\}`)
	pathExprRe  = regexp.MustCompile(`\{([^}]*)\}`)
)

// NewRouteTable validates cfg and compiles every template.
func NewRouteTable(cfg RouteConfig) (*RouteTable, error) {
	broken, err := compileRoute(cfg.Broken, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid broken route: %w", err)
	}

	t := &RouteTable{
		broken: broken,
		types:  make(map[string]route, len(cfg.Types)),
	}

	seen := make(map[string]bool, len(cfg.Bookmarks))
	for _, b := range cfg.Bookmarks {
		if b.Name == "" {
			return nil, fmt.Errorf("bookmark route without name")
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("duplicate bookmark route %q", b.Name)
		}
		seen[b.Name] = true
		r, err := compileRoute(b.Template, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid route for bookmark %q: %w", b.Name, err)
		}
		t.bookmarks = append(t.bookmarks, namedRoute{name: b.Name, route: r})
	}

	for typ, raw := range cfg.Types {
		if typ == "" {
			return nil, fmt.Errorf("type route without type")
		}
		r, err := compileRoute(raw, []string{"id", "slug"})
		if err != nil {
			return nil, fmt.Errorf("invalid route for type %q: %w", typ, err)
		}
		t.types[typ] = r
	}

	return t, nil
}

// compileRoute parses raw and checks that its path part uses exactly the
// required variables, each as a whole segment.
func compileRoute(raw string, required []string) (route, error) {
	if !strings.HasPrefix(raw, "/") {
		return route{}, fmt.Errorf("template %q must start with /", raw)
	}
	tmpl, err := uritemplate.New(raw)
	if err != nil {
		return route{}, fmt.Errorf("template %q: %w", raw, err)
	}

	path := queryExprRe.ReplaceAllString(raw, "")
	found := make(map[string]bool, len(required))
	for _, m := range pathExprRe.FindAllStringSubmatch(path, -1) {
		found[m[1]] = true
	}
	for _, name := range required {
		if !found[name] {
			return route{}, fmt.Errorf("template %q lacks {%s}", raw, name)
		}
		delete(found, name)
	}
	for name := range found {
		return route{}, fmt.Errorf("template %q uses unsupported path variable {%s}", raw, name)
	}

	return route{tmpl: tmpl, pattern: path}, nil
}

// BookmarkNames returns the configured bookmark names in declaration order.
func (t *RouteTable) BookmarkNames() []string {
	names := make([]string, 0, len(t.bookmarks))
	for _, b := range t.bookmarks {
		names = append(names, b.name)
	}
	return names
}

// Types returns the type tags that have a detail route.
func (t *RouteTable) Types() []string {
	types := make([]string, 0, len(t.types))
	for typ := range t.types {
		types = append(types, typ)
	}
	return types
}

// BrokenPattern is the chi pattern of the broken-link page.
func (t *RouteTable) BrokenPattern() string { return t.broken.pattern }

// BookmarkPattern is the chi pattern of a bookmark page.
func (t *RouteTable) BookmarkPattern(name string) (string, bool) {
	r, ok := t.bookmarkRoute(name)
	return r.pattern, ok
}

// DetailPattern is the chi pattern of a type's detail page.
func (t *RouteTable) DetailPattern(typ string) (string, bool) {
	r, ok := t.types[typ]
	return r.pattern, ok
}

// DetailPath expands the detail route of typ without any query part.
func (t *RouteTable) DetailPath(typ, id, slug string) (string, bool) {
	r, ok := t.types[typ]
	if !ok {
		return "", false
	}
	path, err := expand(r, id, slug, "")
	if err != nil {
		return "", false
	}
	return path, true
}

func (t *RouteTable) bookmarkRoute(name string) (route, bool) {
	for _, b := range t.bookmarks {
		if b.name == name {
			return b.route, true
		}
	}
	return route{}, false
}

// expand fills a route. Empty values are left undefined so that optional
// expressions such as {?ref} disappear.
func expand(r route, id, slug, ref string) (string, error) {
	values := uritemplate.Values{}
	if id != "" {
		values.Set("id", uritemplate.String(id))
	}
	if slug != "" {
		values.Set("slug", uritemplate.String(slug))
	}
	if ref != "" {
		values.Set("ref", uritemplate.String(ref))
	}
	return r.tmpl.Expand(values)
}
