package repository

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/MrSnakeDoc/patisserie/internal/cache"
)

// Every key embeds the concrete ref: a snapshot never changes, so entries
// of one ref can be served until they expire.

func documentKey(ref, id string) string {
	return cache.RefPrefix(ref) + "doc:" + id
}

func documentsKey(ref string, ids []string) string {
	return cache.RefPrefix(ref) + "docs:" + digest(strings.Join(ids, "\x00"))
}

func queryKey(ref, form, q string) string {
	return cache.RefPrefix(ref) + "query:" + form + ":" + digest(q)
}

func bookmarkKey(ref, name string) string {
	return cache.RefPrefix(ref) + "bookmark:" + name
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
