package search

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Score returns the fuzzy subsequence score of query against text. Zero means
// the query is not a subsequence of text; any match scores at least one.
func Score(query, text string) int {
	if query == "" {
		return 0
	}
	return scoreAll(query, []string{text})[0]
}

// scoreAll scores query against every text in one pass. The library reports
// negative scores for weak matches, so matched texts are shifted to start at
// one and zero is reserved for "no match".
func scoreAll(query string, texts []string) []int {
	scores := make([]int, len(texts))
	if query == "" || len(texts) == 0 {
		return scores
	}
	for _, match := range fuzzy.Find(query, texts) {
		scores[match.Index] = max(match.Score, 0) + 1
	}
	return scores
}

// containsFold reports whether text contains query, ignoring case.
func containsFold(text, query string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}
