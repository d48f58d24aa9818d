package domain

import (
	"context"

	"github.com/MrSnakeDoc/patisserie/internal/predicate"
)

// Repository is the read API of the content repository as seen by pages.
// Every call reads from the snapshot selected by release.
//
// Implementations return (nil, nil) from Document when the id does not
// exist, and an error only when the repository itself failed.
type Repository interface {
	Document(ctx context.Context, id string, release Release) (*Document, error)
	// Documents keeps the order of ids, duplicates included; ids that do not
	// exist are omitted.
	Documents(ctx context.Context, ids []string, release Release) ([]*Document, error)
	Query(ctx context.Context, form string, q predicate.Query, release Release) ([]*Document, error)
	BookmarkTargetID(ctx context.Context, name string, release Release) (string, bool, error)
}
