package domain

// VerdictKind is the outcome of a slug check.
type VerdictKind int

const (
	// VerdictNotFound: no document exists for the requested id.
	VerdictNotFound VerdictKind = iota
	// VerdictOK: the requested slug is canonical, render the document.
	VerdictOK
	// VerdictRedirect: the id is valid but the slug is stale.
	VerdictRedirect
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictOK:
		return "ok"
	case VerdictRedirect:
		return "redirect"
	default:
		return "not_found"
	}
}

// Verdict tells a detail page whether to render, redirect or answer not found.
// The zero value is a NotFound verdict.
type Verdict struct {
	kind      VerdictKind
	canonical string
}

func (v Verdict) Kind() VerdictKind { return v.kind }

// CanonicalSlug is the slug to redirect to. Only meaningful for VerdictRedirect.
func (v Verdict) CanonicalSlug() string { return v.canonical }

// CheckSlug compares the slug found in an inbound URL with the document's
// canonical slug. A nil document yields NotFound regardless of the slug.
//
// An empty canonical slug is compared like any other value: the caller
// decides what a redirect to an empty slug means.
func CheckSlug(doc *Document, requested string) Verdict {
	if doc == nil {
		return Verdict{kind: VerdictNotFound}
	}
	canonical := doc.Slug()
	if canonical == requested {
		return Verdict{kind: VerdictOK}
	}
	return Verdict{kind: VerdictRedirect, canonical: canonical}
}
