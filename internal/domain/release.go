package domain

import (
	"context"
	"fmt"
	"strings"
)

// Release selects the repository snapshot one request reads from.
//
// Ref is always the concrete snapshot token used for fetches. Pinned is true
// when the inbound request named the ref explicitly (preview, scheduled
// release); only pinned refs are carried into generated URLs so that
// unpinned pages keep following the live master.
type Release struct {
	Ref    string
	Pinned bool
}

// URLRef returns the ref to embed in generated URLs, or "".
func (r Release) URLRef() string {
	if !r.Pinned {
		return ""
	}
	return r.Ref
}

// RefSource knows the current master ref of the repository.
type RefSource interface {
	MasterRef(ctx context.Context) (string, error)
}

// ResolveRelease turns the ref found in an inbound request into a Release.
// An empty requested ref falls back to the current master.
func ResolveRelease(ctx context.Context, src RefSource, requested string) (Release, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		return Release{Ref: requested, Pinned: true}, nil
	}
	master, err := src.MasterRef(ctx)
	if err != nil {
		return Release{}, fmt.Errorf("failed to resolve master ref: %w", err)
	}
	return Release{Ref: master}, nil
}
