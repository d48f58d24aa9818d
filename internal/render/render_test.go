package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
)

func newTestRenderer(t *testing.T, release domain.Release) *Renderer {
	t.Helper()
	routes, err := domain.NewRouteTable(domain.DefaultRouteConfig())
	require.NoError(t, err)
	bookmarks := domain.Bookmarks{{Name: "about", DocumentID: "ABOUT1"}}
	return NewRenderer(domain.NewLinkResolver(routes, bookmarks, release, "https://shop.example.com"))
}

func TestStructuredTextBlocks(t *testing.T) {
	r := newTestRenderer(t, domain.Release{Ref: "m"})

	got := r.StructuredText([]domain.Block{
		{Kind: "heading1", Text: "Our <shop>"},
		{Kind: "list-item", Text: "one"},
		{Kind: "list-item", Text: "two"},
		{Kind: "o-list-item", Text: "first"},
		{Kind: "paragraph", Text: "end"},
		{Kind: "image", Image: &domain.Image{URL: "https://img.example.com/a.png", Alt: "A", Width: 4, Height: 3}},
	})

	want := `<h1>Our &lt;shop&gt;</h1>` +
		`<ul><li>one</li><li>two</li></ul>` +
		`<ol><li>first</li></ol>` +
		`<p>end</p>` +
		`<p class="block-img"><img src="https://img.example.com/a.png" alt="A" width="4" height="3"/></p>`
	assert.Equal(t, want, got)
}

func TestStructuredTextSpans(t *testing.T) {
	r := newTestRenderer(t, domain.Release{Ref: "preview", Pinned: true})

	tests := []struct {
		name  string
		block domain.Block
		want  string
	}{
		{
			name:  "strong and em",
			block: domain.Block{Kind: "paragraph", Text: "Hello macaron world", Spans: []domain.Span{{Start: 0, End: 5, Kind: "strong"}, {Start: 6, End: 13, Kind: "em"}}},
			want:  `<p><strong>Hello</strong> <em>macaron</em> world</p>`,
		},
		{
			name: "nested spans",
			block: domain.Block{Kind: "paragraph", Text: "abcdef", Spans: []domain.Span{
				{Start: 1, End: 3, Kind: "em"},
				{Start: 0, End: 4, Kind: "strong"},
			}},
			want: `<p><strong>a<em>bc</em>d</strong>ef</p>`,
		},
		{
			name: "document hyperlink is resolved",
			block: domain.Block{Kind: "paragraph", Text: "see it", Spans: []domain.Span{
				{Start: 4, End: 6, Kind: "hyperlink", Link: &domain.Link{TargetType: "product", TargetID: "P1", TargetSlug: "vanilla"}},
			}},
			want: `<p>see <a href="https://shop.example.com/products/P1/vanilla?ref=preview">it</a></p>`,
		},
		{
			name: "bookmarked target goes to its page",
			block: domain.Block{Kind: "paragraph", Text: "about", Spans: []domain.Span{
				{Start: 0, End: 5, Kind: "hyperlink", Link: &domain.Link{TargetType: "article", TargetID: "ABOUT1", TargetSlug: "about-us"}},
			}},
			want: `<p><a href="https://shop.example.com/about?ref=preview">about</a></p>`,
		},
		{
			name: "unsafe web link is dropped",
			block: domain.Block{Kind: "paragraph", Text: "click", Spans: []domain.Span{
				{Start: 0, End: 5, Kind: "hyperlink", URL: "javascript:alert(1)"},
			}},
			want: `<p>click</p>`,
		},
		{
			name: "multibyte offsets",
			block: domain.Block{Kind: "paragraph", Text: "crème brûlée", Spans: []domain.Span{
				{Start: 6, End: 12, Kind: "strong"},
			}},
			want: `<p>crème <strong>brûlée</strong></p>`,
		},
		{
			name: "out of range span is clipped",
			block: domain.Block{Kind: "paragraph", Text: "tart", Spans: []domain.Span{
				{Start: 2, End: 40, Kind: "em"},
			}},
			want: `<p>ta<em>rt</em></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.StructuredText([]domain.Block{tt.block}))
		})
	}
}

func TestDocumentView(t *testing.T) {
	r := newTestRenderer(t, domain.Release{Ref: "m"})

	doc := &domain.Document{
		ID:    "P1",
		Type:  "product",
		Slugs: []string{"vanilla-macaron", "old"},
		Fields: map[string][]domain.Fragment{
			"product.name":   {{Kind: domain.KindText, Text: "Vanilla Macaron"}},
			"product.price":  {{Kind: domain.KindNumber, Number: 2.5}},
			"product.since":  {{Kind: domain.KindDate, Time: time.Date(2013, 8, 17, 0, 0, 0, 0, time.UTC)}},
			"product.image":  {{Kind: domain.KindImage, Image: &domain.Image{URL: "https://img.example.com/p.png"}}},
			"product.vendor": {{Kind: domain.KindWebLink, URL: "https://vendor.example.com"}},
			"product.related": {
				{Kind: domain.KindDocumentLink, Link: &domain.Link{TargetType: "product", TargetID: "P2", TargetSlug: "pie"}},
				{Kind: domain.KindDocumentLink, Link: &domain.Link{TargetType: "product", TargetID: "P3", Broken: true}},
			},
		},
	}

	v := r.Document(doc)
	assert.Equal(t, "https://shop.example.com/products/P1/vanilla-macaron", v.URL)
	assert.Equal(t, "vanilla-macaron", v.Slug)
	assert.Equal(t, "Vanilla Macaron", v.Fields["name"])
	assert.Equal(t, 2.5, v.Fields["price"])
	assert.Equal(t, "2013-08-17", v.Fields["since"])
	assert.Equal(t, &ImageView{URL: "https://img.example.com/p.png"}, v.Fields["image"])
	assert.Equal(t, LinkView{URL: "https://vendor.example.com"}, v.Fields["vendor"])

	related, ok := v.Fields["related"].([]any)
	require.True(t, ok)
	require.Len(t, related, 2)
	assert.Equal(t, LinkView{URL: "https://shop.example.com/products/P2/pie"}, related[0])
	assert.Equal(t, LinkView{URL: "https://shop.example.com/not-found", Broken: true}, related[1])

	_, err := json.Marshal(v)
	require.NoError(t, err)
}

func TestDocumentsSkipsNil(t *testing.T) {
	r := newTestRenderer(t, domain.Release{Ref: "m"})

	views := r.Documents([]*domain.Document{nil, {ID: "S1", Type: "store", Slugs: []string{"main-street"}}})
	require.Len(t, views, 1)
	assert.Equal(t, "https://shop.example.com/stores/S1/main-street", views[0].URL)

	assert.NotNil(t, r.Documents(nil))
}
