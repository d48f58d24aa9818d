// Package predicate builds repository queries from structured predicates.
//
// Paths are code-owned and checked against a strict grammar. Values are
// always bound as quoted string literals, so search text or category names
// coming from a request can never change the shape of a query.
package predicate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type op string

const (
	opAt       op = "at"
	opAny      op = "any"
	opFulltext op = "fulltext"
)

// Predicate is one condition of a query.
type Predicate struct {
	op     op
	path   string
	values []string
}

// At matches documents whose path equals value.
func At(path, value string) Predicate {
	return Predicate{op: opAt, path: path, values: []string{value}}
}

// Any matches documents whose path equals one of values.
func Any(path string, values ...string) Predicate {
	return Predicate{op: opAny, path: path, values: values}
}

// Fulltext matches documents whose path contains text.
func Fulltext(path, text string) Predicate {
	return Predicate{op: opFulltext, path: path, values: []string{text}}
}

// Query is a conjunction of predicates. The empty query selects whatever
// the form selects by default.
type Query []Predicate

var pathRe = regexp.MustCompile(`^(document(\.(id|type|tags))?|my\.[a-z0-9][a-z0-9_-]*\.[a-z0-9][a-z0-9_-]*)$`)

// Build renders the query, e.g.
//
//	[[:d = at(my.product.flavour, "Macaron")][:d = fulltext(document, "tart")]]
func (q Query) Build() (string, error) {
	if len(q) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("[")
	for _, p := range q {
		s, err := p.build()
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteString("]")
	return sb.String(), nil
}

func (p Predicate) build() (string, error) {
	if !pathRe.MatchString(p.path) {
		return "", fmt.Errorf("invalid predicate path %q", p.path)
	}

	var arg string
	switch p.op {
	case opAt, opFulltext:
		if len(p.values) != 1 {
			return "", fmt.Errorf("%s(%s) takes exactly one value", p.op, p.path)
		}
		arg = quote(p.values[0])
	case opAny:
		quoted := make([]string, len(p.values))
		for i, v := range p.values {
			quoted[i] = quote(v)
		}
		arg = "[" + strings.Join(quoted, ", ") + "]"
	default:
		return "", fmt.Errorf("unknown predicate %q", p.op)
	}

	return fmt.Sprintf("[:d = %s(%s, %s)]", p.op, p.path, arg), nil
}

// quote renders v as a JSON string literal.
func quote(v string) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Marshalling a string cannot fail.
		panic(err)
	}
	return string(b)
}
