package search

import (
	"strings"

	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"golang.org/x/text/cases"
)

// Request describes one search: where to start and what names to look for.
// Query is stored case-folded; a Request is not modified once a run starts.
type Request struct {
	Roots []string
	Query string
}

// NewRequest folds query and normalizes roots. Empty roots are dropped.
func NewRequest(query string, roots ...string) Request {
	normalized := make([]string, 0, len(roots))
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		normalized = append(normalized, fsutil.NormalizePath(root))
	}
	return Request{
		Roots: normalized,
		Query: cases.Fold().String(query),
	}
}

// nameMatcher checks whether a base name contains the folded query. A Caser
// is stateful, so every worker owns its own matcher.
type nameMatcher struct {
	query string
	fold  cases.Caser
}

func newNameMatcher(query string) *nameMatcher {
	return &nameMatcher{query: query, fold: cases.Fold()}
}

func (m *nameMatcher) matches(name string) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(m.fold.String(name), m.query)
}
