package handlers

import (
	"github.com/MrSnakeDoc/patisserie/internal/render"
	"github.com/MrSnakeDoc/patisserie/internal/sources/routing"
)

type homeView struct {
	Products []render.DocumentView `json:"products"`
	Featured []render.DocumentView `json:"featured"`
}

type bookmarkView struct {
	Page  render.DocumentView   `json:"page"`
	Items []render.DocumentView `json:"items,omitempty"`
}

type detailView struct {
	Document render.DocumentView              `json:"document"`
	Page     *render.DocumentView             `json:"page,omitempty"`
	Related  map[string][]render.DocumentView `json:"related,omitempty"`
}

type blogView struct {
	Category   string                `json:"category,omitempty"`
	Categories []string              `json:"categories"`
	Posts      []render.DocumentView `json:"posts"`
}

type productsView struct {
	Flavours []routing.Flavour     `json:"flavours"`
	Products []render.DocumentView `json:"products"`
}

type flavourView struct {
	Flavour  string                `json:"flavour"`
	Label    string                `json:"label"`
	Products []render.DocumentView `json:"products"`
}

type searchView struct {
	Query    string                `json:"query"`
	Products []render.DocumentView `json:"products"`
	Others   []render.DocumentView `json:"others"`
}
