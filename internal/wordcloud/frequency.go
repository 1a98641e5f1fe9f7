package wordcloud

import "sort"

// TermCount is the number of times a term occurred in one run.
type TermCount struct {
	Term  string
	Count int
}

// CountTerms sorts a copy of terms and run-length encodes it, returning one
// entry per distinct term in ascending lexicographic order.
func CountTerms(terms []string) []TermCount {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Strings(sorted)

	var counts []TermCount
	for i, term := range sorted {
		if i > 0 && term == sorted[i-1] {
			counts[len(counts)-1].Count++
			continue
		}
		counts = append(counts, TermCount{Term: term, Count: 1})
	}
	return counts
}
