package domain

import "context"

// ResolveRelated fetches the documents linked from doc at path whose type is
// expectedType, in authoring order. Broken and mistyped links are dropped
// silently. At most one batched repository call is made; none when no link
// survives.
func ResolveRelated(ctx context.Context, repo Repository, doc *Document, path, expectedType string, release Release) ([]*Document, error) {
	ids := RelatedIDs(doc, path, expectedType)
	if len(ids) == 0 {
		return []*Document{}, nil
	}
	return repo.Documents(ctx, ids, release)
}

// RelatedIDs returns the ids of the non broken links at path targeting
// expectedType, preserving order and duplicates.
func RelatedIDs(doc *Document, path, expectedType string) []string {
	links := doc.LinksAt(path)
	ids := make([]string, 0, len(links))
	for _, l := range links {
		if l.Broken || l.TargetType != expectedType || l.TargetID == "" {
			continue
		}
		ids = append(ids, l.TargetID)
	}
	return ids
}
