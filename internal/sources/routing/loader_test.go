package routing

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRoutes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeRoutes(t, `---
broken: /oops{?ref}
bookmarks:
  - name: about
    route: /about-us{?ref}
types:
  product: /p/{id}/{slug}{?ref}
blog_categories: [News]
product_flavours:
  - value: Tart
    label: Tarts
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if file.Broken != "/oops{?ref}" {
		t.Errorf("Broken = %q", file.Broken)
	}
	if len(file.Bookmarks) != 1 || file.Bookmarks[0].Name != "about" {
		t.Errorf("Bookmarks = %+v", file.Bookmarks)
	}
	if file.Types["product"] != "/p/{id}/{slug}{?ref}" {
		t.Errorf("Types = %v", file.Types)
	}
	if len(file.ProductFlavours) != 1 || file.ProductFlavours[0].Label != "Tarts" {
		t.Errorf("ProductFlavours = %+v", file.ProductFlavours)
	}
}

func TestLoaderLoadWithVariables(t *testing.T) {
	t.Setenv("SHOP_PREFIX", "/fr")
	path := writeRoutes(t, `---
types:
  product: "{{SHOP_PREFIX}}/products/{id}/{slug}{?ref}"
  store: "{{ UNSET_PREFIX_FOR_TEST }}/stores/{id}/{slug}"
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := file.Types["product"]; got != "/fr/products/{id}/{slug}{?ref}" {
		t.Errorf("product route = %q", got)
	}
	if got := file.Types["store"]; got != "/stores/{id}/{slug}" {
		t.Errorf("store route = %q", got)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load(); err == nil {
		t.Error("Load() should fail on a missing file")
	}
}

func TestLoad(t *testing.T) {
	site, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if _, ok := site.Routes.DetailPattern("selection"); !ok {
		t.Error("built-in site should route selections")
	}

	path := writeRoutes(t, `---
types:
  product: /p/{id}/{slug}
`)
	site, err = Load(path)
	if err != nil {
		t.Fatalf("Load(file) error = %v", err)
	}
	if p, _ := site.Routes.DetailPattern("product"); p != "/p/{id}/{slug}" {
		t.Errorf("product pattern = %q", p)
	}
	if _, ok := site.Routes.DetailPattern("store"); ok {
		t.Error("file routes replace the built-in type routes")
	}
}
