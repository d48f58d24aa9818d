package predicate

import (
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		query    Query
		expected string
	}{
		{
			name:     "empty query",
			query:    nil,
			expected: "",
		},
		{
			name:     "single at",
			query:    Query{At("my.blog-post.category", "Announcements")},
			expected: `[[:d = at(my.blog-post.category, "Announcements")]]`,
		},
		{
			name:     "any with several values",
			query:    Query{Any("document.type", "product", "selection")},
			expected: `[[:d = any(document.type, ["product", "selection"])]]`,
		},
		{
			name: "conjunction",
			query: Query{
				Any("document.type", "product"),
				Fulltext("document", "tart"),
			},
			expected: `[[:d = any(document.type, ["product"])][:d = fulltext(document, "tart")]]`,
		},
		{
			name:     "quotes are escaped",
			query:    Query{Fulltext("document", `tart")][:d = any(document.type, ["secret"])]]`)},
			expected: `[[:d = fulltext(document, "tart\")][:d = any(document.type, [\"secret\"])]]")]]`,
		},
		{
			name:     "backslash is escaped",
			query:    Query{At("my.product.flavour", `a\`)},
			expected: `[[:d = at(my.product.flavour, "a\\")]]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Build() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestBuildRejectsInvalidPaths(t *testing.T) {
	paths := []string{
		"",
		"my.product",
		"document.secret",
		"my.product.flavour)",
		"my.product.flavour, \"x\")][:d = at(document.id",
		"MY.product.flavour",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			if _, err := (Query{At(p, "x")}).Build(); err == nil {
				t.Errorf("Build() with path %q should fail", p)
			}
		})
	}
}
