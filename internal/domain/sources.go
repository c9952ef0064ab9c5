package domain

import "sort"

// CitationGroup is the per-document view of a turn's citations, derived on
// demand for display and never persisted.
type CitationGroup struct {
	Doc   string
	Pages []int
}

// GroupCitations collapses raw per-chunk citations into one group per
// document, in first-seen order, with page numbers deduplicated and sorted
// ascending. Pure and idempotent: grouping a flattened result yields the
// same groups.
func GroupCitations(citations []Citation) []CitationGroup {
	var order []string
	pages := make(map[string]map[int]struct{})

	for _, c := range citations {
		if _, ok := pages[c.Doc]; !ok {
			order = append(order, c.Doc)
			pages[c.Doc] = make(map[int]struct{})
		}
		pages[c.Doc][c.Page] = struct{}{}
	}

	groups := make([]CitationGroup, 0, len(order))
	for _, doc := range order {
		ps := make([]int, 0, len(pages[doc]))
		for p := range pages[doc] {
			ps = append(ps, p)
		}
		sort.Ints(ps)
		groups = append(groups, CitationGroup{Doc: doc, Pages: ps})
	}
	return groups
}

// FlattenGroups expands citation groups back into raw citations, preserving
// group order. Mostly useful in tests of the grouping laws.
func FlattenGroups(groups []CitationGroup) []Citation {
	var out []Citation
	for _, g := range groups {
		for _, p := range g.Pages {
			out = append(out, Citation{Doc: g.Doc, Page: p})
		}
	}
	return out
}
