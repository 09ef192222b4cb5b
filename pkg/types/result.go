package types

// SearchResult records a pattern found at an absolute position in a source.
// Offsets are a half-open byte range [Start, End).
type SearchResult struct {
	// Pattern is the pattern that matched.
	Pattern *Pattern

	// Start is the absolute offset of the first matched byte.
	Start int64

	// End is the absolute offset one past the last matched byte.
	End int64
}

// ResultsEndingAt builds results for patterns whose last byte sits at endPos,
// keeping only matches that start within [from, to]. Patterns are reported in
// the order given.
func ResultsEndingAt(endPos int64, patterns []*Pattern, from, to int64) []SearchResult {
	results := []SearchResult{}
	for _, p := range patterns {
		start := endPos - int64(len(p.Bytes)) + 1
		if start >= from && start <= to {
			results = append(results, SearchResult{Pattern: p, Start: start, End: endPos + 1})
		}
	}
	return results
}

// ResultsStartingAt builds results for patterns starting at startPos.
func ResultsStartingAt(startPos int64, patterns []*Pattern) []SearchResult {
	results := make([]SearchResult, 0, len(patterns))
	for _, p := range patterns {
		results = append(results, SearchResult{Pattern: p, Start: startPos, End: startPos + int64(len(p.Bytes))})
	}
	return results
}

// NoResults is the explicit empty result of a completed search that found
// nothing. It is never nil, so callers can distinguish "no matches" from a
// failed search.
func NoResults() []SearchResult {
	return []SearchResult{}
}
