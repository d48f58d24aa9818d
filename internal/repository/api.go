package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/patisserie/internal/domain"
)

// Wire format of the repository API.

type apiEntry struct {
	Refs      []apiRef          `json:"refs"`
	Bookmarks map[string]string `json:"bookmarks"`
}

type apiRef struct {
	ID          string `json:"id"`
	Ref         string `json:"ref"`
	Label       string `json:"label"`
	IsMasterRef bool   `json:"isMasterRef"`
}

type apiSearchResponse struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	NextPage   *string       `json:"next_page"`
	Results    []apiDocument `json:"results"`
}

type apiDocument struct {
	ID    string                                `json:"id"`
	Type  string                                `json:"type"`
	Href  string                                `json:"href"`
	Tags  []string                              `json:"tags"`
	Slugs []string                              `json:"slugs"`
	Data  map[string]map[string]json.RawMessage `json:"data"`
}

type apiFragment struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type apiDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type apiImageView struct {
	URL        string        `json:"url"`
	Alt        string        `json:"alt"`
	Dimensions apiDimensions `json:"dimensions"`
}

type apiDocumentLink struct {
	Document struct {
		ID   string   `json:"id"`
		Type string   `json:"type"`
		Slug string   `json:"slug"`
		Tags []string `json:"tags"`
	} `json:"document"`
	IsBroken bool `json:"isBroken"`
}

type apiWebLink struct {
	URL string `json:"url"`
}

type apiBlock struct {
	Type       string        `json:"type"`
	Text       string        `json:"text"`
	Spans      []apiSpan     `json:"spans"`
	URL        string        `json:"url"`
	Alt        string        `json:"alt"`
	Dimensions apiDimensions `json:"dimensions"`
}

type apiSpan struct {
	Start int          `json:"start"`
	End   int          `json:"end"`
	Type  string       `json:"type"`
	Data  *apiFragment `json:"data"`
}

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05-0700"
)

// masterRef returns the ref flagged as master in the entry.
func (e apiEntry) masterRef() (string, bool) {
	for _, r := range e.Refs {
		if r.IsMasterRef && r.Ref != "" {
			return r.Ref, true
		}
	}
	return "", false
}

// toDocument converts a search result. Fragments of unknown types are
// skipped so that new field kinds do not break existing pages.
func (d apiDocument) toDocument() (*domain.Document, error) {
	doc := &domain.Document{
		ID:     d.ID,
		Type:   d.Type,
		Slugs:  d.Slugs,
		Tags:   d.Tags,
		Fields: make(map[string][]domain.Fragment),
	}

	for typ, fields := range d.Data {
		for name, raw := range fields {
			frags, err := decodeField(raw)
			if err != nil {
				return nil, fmt.Errorf("document %s field %s.%s: %w", d.ID, typ, name, err)
			}
			if len(frags) > 0 {
				doc.Fields[typ+"."+name] = frags
			}
		}
	}
	return doc, nil
}

// decodeField accepts a single fragment or an array of fragments.
func decodeField(raw json.RawMessage) ([]domain.Fragment, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []apiFragment
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	} else {
		var one apiFragment
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, err
		}
		items = []apiFragment{one}
	}

	frags := make([]domain.Fragment, 0, len(items))
	for _, it := range items {
		f, ok, err := it.toFragment()
		if err != nil {
			return nil, err
		}
		if ok {
			frags = append(frags, f)
		}
	}
	return frags, nil
}

func (f apiFragment) toFragment() (domain.Fragment, bool, error) {
	switch f.Type {
	case "Text", "Select", "Color":
		var s string
		if err := json.Unmarshal(f.Value, &s); err != nil {
			return domain.Fragment{}, false, fmt.Errorf("%s: %w", f.Type, err)
		}
		return domain.Fragment{Kind: domain.KindText, Text: s}, true, nil

	case "Number":
		var n float64
		if err := json.Unmarshal(f.Value, &n); err != nil {
			return domain.Fragment{}, false, fmt.Errorf("Number: %w", err)
		}
		return domain.Fragment{Kind: domain.KindNumber, Number: n}, true, nil

	case "Date":
		t, err := parseTime(f.Value, dateLayout)
		if err != nil {
			return domain.Fragment{}, false, fmt.Errorf("Date: %w", err)
		}
		return domain.Fragment{Kind: domain.KindDate, Time: t}, true, nil

	case "Timestamp":
		t, err := parseTime(f.Value, timestampLayout, time.RFC3339)
		if err != nil {
			return domain.Fragment{}, false, fmt.Errorf("Timestamp: %w", err)
		}
		return domain.Fragment{Kind: domain.KindTimestamp, Time: t}, true, nil

	case "Image":
		var v struct {
			Main apiImageView `json:"main"`
		}
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return domain.Fragment{}, false, fmt.Errorf("Image: %w", err)
		}
		return domain.Fragment{Kind: domain.KindImage, Image: v.Main.toImage()}, true, nil

	case "Link.document":
		link, err := decodeDocumentLink(f.Value)
		if err != nil {
			return domain.Fragment{}, false, err
		}
		return domain.Fragment{Kind: domain.KindDocumentLink, Link: link}, true, nil

	case "Link.web":
		var v apiWebLink
		if err := json.Unmarshal(f.Value, &v); err != nil {
			return domain.Fragment{}, false, fmt.Errorf("Link.web: %w", err)
		}
		return domain.Fragment{Kind: domain.KindWebLink, URL: v.URL}, true, nil

	case "StructuredText":
		var blocks []apiBlock
		if err := json.Unmarshal(f.Value, &blocks); err != nil {
			return domain.Fragment{}, false, fmt.Errorf("StructuredText: %w", err)
		}
		out := make([]domain.Block, 0, len(blocks))
		for _, b := range blocks {
			block, err := b.toBlock()
			if err != nil {
				return domain.Fragment{}, false, err
			}
			out = append(out, block)
		}
		return domain.Fragment{Kind: domain.KindStructuredText, Blocks: out}, true, nil

	default:
		return domain.Fragment{}, false, nil
	}
}

func decodeDocumentLink(raw json.RawMessage) (*domain.Link, error) {
	var v apiDocumentLink
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("Link.document: %w", err)
	}
	return &domain.Link{
		TargetType: v.Document.Type,
		TargetID:   v.Document.ID,
		TargetSlug: v.Document.Slug,
		Broken:     v.IsBroken,
	}, nil
}

func (b apiBlock) toBlock() (domain.Block, error) {
	block := domain.Block{Kind: b.Type, Text: b.Text}
	if b.Type == "image" {
		block.Image = apiImageView{URL: b.URL, Alt: b.Alt, Dimensions: b.Dimensions}.toImage()
		return block, nil
	}

	for _, s := range b.Spans {
		span := domain.Span{Start: s.Start, End: s.End, Kind: s.Type}
		if s.Type == "hyperlink" && s.Data != nil {
			switch s.Data.Type {
			case "Link.document":
				link, err := decodeDocumentLink(s.Data.Value)
				if err != nil {
					return domain.Block{}, err
				}
				span.Link = link
			case "Link.web":
				var v apiWebLink
				if err := json.Unmarshal(s.Data.Value, &v); err != nil {
					return domain.Block{}, fmt.Errorf("hyperlink: %w", err)
				}
				span.URL = v.URL
			}
		}
		block.Spans = append(block.Spans, span)
	}
	return block, nil
}

func (v apiImageView) toImage() *domain.Image {
	if v.URL == "" {
		return nil
	}
	return &domain.Image{
		URL:    v.URL,
		Alt:    v.Alt,
		Width:  v.Dimensions.Width,
		Height: v.Dimensions.Height,
	}
}

func parseTime(raw json.RawMessage, layouts ...string) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
