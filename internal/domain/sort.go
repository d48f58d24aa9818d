package domain

import (
	"slices"
	"time"
)

// SortByDateDesc orders docs newest first by the date at path. Documents
// without a date sort as the earliest possible date. The sort is stable.
func SortByDateDesc(docs []*Document, path string) {
	slices.SortStableFunc(docs, func(a, b *Document) int {
		return dateOrZero(b, path).Compare(dateOrZero(a, path))
	})
}

func dateOrZero(d *Document, path string) time.Time {
	t, ok := d.Date(path)
	if !ok {
		return time.Time{}
	}
	return t
}
