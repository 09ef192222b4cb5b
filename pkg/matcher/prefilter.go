package matcher

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/sigseek/sigseek/pkg/reader"
	"github.com/sigseek/sigseek/pkg/types"
)

// Prefilter answers which patterns of a set occur anywhere in a source,
// using Aho-Corasick over the whole content. It reports presence only, not
// positions: callers narrow a catalogue down to the candidate patterns
// before running positional searches.
type Prefilter struct {
	matcher  *ahocorasick.Matcher
	patterns []*types.Pattern
	overlap  int
}

// NewPrefilter builds a prefilter over the given patterns.
func NewPrefilter(patterns []*types.Pattern) (*Prefilter, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	sequences := make([][]byte, len(patterns))
	maxLength := 0
	for i, p := range patterns {
		if len(p.Bytes) == 0 {
			return nil, ErrEmptySequence
		}
		sequences[i] = p.Bytes
		if len(p.Bytes) > maxLength {
			maxLength = len(p.Bytes)
		}
	}
	return &Prefilter{
		matcher:  ahocorasick.NewMatcher(sequences),
		patterns: patterns,
		overlap:  maxLength - 1,
	}, nil
}

// Contains returns the subset of patterns present anywhere in content, in
// registration order.
func (pf *Prefilter) Contains(content []byte) []*types.Pattern {
	hits := pf.matcher.Match(content)
	if len(hits) == 0 {
		return nil
	}
	present := make(map[int]bool, len(hits))
	for _, hit := range hits {
		present[hit] = true
	}
	var found []*types.Pattern
	for i, p := range pf.patterns {
		if present[i] {
			found = append(found, p)
		}
	}
	return found
}

// ContainsReader streams the reader's windows through the automaton,
// carrying a maxLength-1 byte overlap between windows so sequences that
// straddle a window boundary are still seen.
func (pf *Prefilter) ContainsReader(rd *reader.Reader) ([]*types.Pattern, error) {
	present := make(map[int]bool)
	var carry []byte

	for window, err := range rd.Windows() {
		if err != nil {
			return nil, err
		}
		chunk := window.Bytes()
		if len(carry) > 0 {
			chunk = append(append(make([]byte, 0, len(carry)+len(chunk)), carry...), chunk...)
		}
		for _, hit := range pf.matcher.Match(chunk) {
			present[hit] = true
		}
		if len(present) == len(pf.patterns) {
			break
		}
		if pf.overlap > 0 && len(chunk) > 0 {
			tail := pf.overlap
			if tail > len(chunk) {
				tail = len(chunk)
			}
			carry = append(carry[:0], chunk[len(chunk)-tail:]...)
		} else {
			carry = carry[:0]
		}
	}

	if len(present) == 0 {
		return nil, nil
	}
	var found []*types.Pattern
	for i, p := range pf.patterns {
		if present[i] {
			found = append(found, p)
		}
	}
	return found, nil
}
