// Package search implements a multi-pattern shift-table search engine of
// the Wu-Manber family. The engine scans either a byte slice or a windowed
// reader, skipping most positions via precomputed safe shifts and delegating
// full-sequence confirmation at candidate positions to a Verifier. The
// slice and reader variants report identical positions for identical
// content; the choice between them is purely about memory residency.
package search

import (
	"sync"

	"github.com/sigseek/sigseek/pkg/reader"
	"github.com/sigseek/sigseek/pkg/types"
)

// Verifier confirms which patterns of a set fully match at a candidate
// position. Implementations must be deterministic and side-effect-free with
// respect to the engine. The metadata methods feed the shift-table builder
// and the engine's scan margins.
type Verifier interface {
	// MinLength returns the shortest pattern length in the set.
	MinLength() int

	// MaxLength returns the longest pattern length in the set.
	MaxLength() int

	// Sequences returns the raw byte sequences of the set.
	Sequences() [][]byte

	// MatchesEndingAt returns the patterns whose last byte sits at pos.
	MatchesEndingAt(data []byte, pos int) []*types.Pattern

	// MatchesStartingAt returns the patterns whose first byte sits at pos.
	MatchesStartingAt(data []byte, pos int) []*types.Pattern

	// ReaderMatchesEndingAt is MatchesEndingAt through a windowed reader.
	ReaderMatchesEndingAt(rd *reader.Reader, pos int64) ([]*types.Pattern, error)

	// ReaderMatchesStartingAt is MatchesStartingAt through a windowed reader.
	ReaderMatchesStartingAt(rd *reader.Reader, pos int64) ([]*types.Pattern, error)
}

// Engine searches forwards or backwards for any pattern of a fixed set.
// Shift tables are built lazily once per direction and reused across
// searches, so construct one engine per pattern set and share it.
type Engine struct {
	verifier Verifier

	forwardOnce sync.Once
	forward     *searchInfo
	forwardErr  error

	backwardOnce sync.Once
	backward     *searchInfo
	backwardErr  error
}

// NewEngine creates an engine over a verifier's pattern set.
func NewEngine(v Verifier) (*Engine, error) {
	if len(v.Sequences()) == 0 {
		return nil, ErrNoPatterns
	}
	return &Engine{verifier: v}, nil
}

func (e *Engine) forwardInfo() (*searchInfo, error) {
	e.forwardOnce.Do(func() {
		e.forward, e.forwardErr = newSearchInfo(e.verifier.Sequences(), false)
	})
	return e.forward, e.forwardErr
}

func (e *Engine) backwardInfo() (*searchInfo, error) {
	e.backwardOnce.Do(func() {
		e.backward, e.backwardErr = newSearchInfo(e.verifier.Sequences(), true)
	})
	return e.backward, e.backwardErr
}

// SearchForwards scans data from low to high positions for the first
// position where one or more patterns match starting within [from, to].
// It returns every pattern matching at that position, or an explicit empty
// result if none match in range.
//
// The scan runs a 3x-unrolled skip loop while it is at least
// 3*MinLength bytes clear of the end of the slice, then falls back to a
// scalar loop for the tail; both implement the same scan, the unrolling
// only amortizes bounds checks.
func (e *Engine) SearchForwards(data []byte, from, to int64) ([]types.SearchResult, error) {
	return e.searchForwards(data, from, to, e.firstForwardPosition(from))
}

// firstForwardPosition is the lowest candidate end position for a match
// starting at from.
func (e *Engine) firstForwardPosition(from int64) int64 {
	pos := int64(e.verifier.MinLength()) - 1
	if from > 0 {
		pos += from
	}
	return pos
}

// searchForwards scans candidate end positions from resume upwards, keeping
// only matches whose start falls within [from, to]. The resume point is
// separate from the filter bound so find-all rounds can continue past a
// reported candidate without narrowing which matches qualify.
func (e *Engine) searchForwards(data []byte, from, to, resume int64) ([]types.SearchResult, error) {
	info, err := e.forwardInfo()
	if err != nil {
		return nil, err
	}
	safeShifts := &info.shifts
	finalShifts := &info.finalShifts
	v := e.verifier

	// A pattern starting at to may end up to MaxLength-1 bytes later.
	minLength := v.MinLength()
	lastPossible := int64(len(data)) - 1
	lastUnrolledPossible := lastPossible - 3*int64(minLength)
	lastTo := to + int64(v.MaxLength()) - 1
	lastUnrolled := min(lastTo, lastUnrolledPossible)

	pos := resume

	// Unrolled scan: three skip steps per bounds check. Safe because the
	// loop never runs closer than three minimum lengths to the end of the
	// slice, so the intermediate unchecked reads stay in bounds.
unrolled:
	for pos <= lastUnrolled {
		b := data[pos]
		shift := safeShifts[b]
		for shift != 0 {
			pos += int64(shift)
			pos += int64(safeShifts[data[pos]])
			pos += int64(safeShifts[data[pos]])
			if pos > lastUnrolled {
				break unrolled
			}
			b = data[pos]
			shift = safeShifts[b]
		}

		if matches := v.MatchesEndingAt(data, int(pos)); len(matches) > 0 {
			if results := types.ResultsEndingAt(pos, matches, from, to); len(results) > 0 {
				return results, nil
			}
		}
		pos += int64(finalShifts[b&finalHashMask])
	}

	// Scalar scan covers the remainder up to the last position any
	// in-range match could end at.
	last := min(lastTo, lastPossible)
	for pos <= last {
		b := data[pos]
		if shift := safeShifts[b]; shift > 0 {
			pos += int64(shift)
			continue
		}
		if matches := v.MatchesEndingAt(data, int(pos)); len(matches) > 0 {
			if results := types.ResultsEndingAt(pos, matches, from, to); len(results) > 0 {
				return results, nil
			}
		}
		pos += int64(finalShifts[b&finalHashMask])
	}

	return types.NoResults(), nil
}

// SearchBackwards scans data from high to low positions for the first
// position at or below from where one or more patterns start, stopping at
// to. It returns every pattern matching at that position, or an explicit
// empty result.
func (e *Engine) SearchBackwards(data []byte, from, to int64) ([]types.SearchResult, error) {
	info, err := e.backwardInfo()
	if err != nil {
		return nil, err
	}
	safeShifts := &info.shifts
	finalShifts := &info.finalShifts
	v := e.verifier

	last := max(to, 0)
	pos := min(from, int64(len(data))-1)

	for pos >= last {
		b := data[pos]
		if shift := safeShifts[b]; shift > 0 {
			pos -= int64(shift)
			continue
		}
		if matches := v.MatchesStartingAt(data, int(pos)); len(matches) > 0 {
			return types.ResultsStartingAt(pos, matches), nil
		}
		pos -= int64(finalShifts[b&finalHashMask])
	}

	return types.NoResults(), nil
}

// ReaderSearchForwards is SearchForwards over a windowed reader. The scan
// proceeds window by window, using each window's bytes for shift decisions
// and the reader for cross-window verification at candidate positions.
// Verifier and reader errors abort the search; no position is skipped on
// error.
func (e *Engine) ReaderSearchForwards(rd *reader.Reader, from, to int64) ([]types.SearchResult, error) {
	return e.readerSearchForwards(rd, from, to, e.firstForwardPosition(from))
}

// readerSearchForwards is searchForwards over a windowed reader: candidate
// end positions from resume upwards, matches filtered to starts in [from, to].
func (e *Engine) readerSearchForwards(rd *reader.Reader, from, to, resume int64) ([]types.SearchResult, error) {
	info, err := e.forwardInfo()
	if err != nil {
		return nil, err
	}
	safeShifts := &info.shifts
	finalShifts := &info.finalShifts
	v := e.verifier

	finalPos := to + int64(v.MaxLength()) - 1
	pos := resume

	for pos <= finalPos {
		window, err := rd.GetWindow(pos)
		if err != nil {
			return nil, err
		}
		if window == nil {
			break
		}

		data := window.Bytes()
		start := rd.WindowOffset(pos)
		last := window.Length() - 1
		if distance := finalPos - window.Start(); distance < int64(last) {
			last = int(distance)
		}

		i := start
		for i <= last {
			b := data[i]
			if shift := safeShifts[b]; shift > 0 {
				i += shift
				continue
			}
			endPos := pos + int64(i-start)
			matches, err := v.ReaderMatchesEndingAt(rd, endPos)
			if err != nil {
				return nil, err
			}
			if len(matches) > 0 {
				if results := types.ResultsEndingAt(endPos, matches, from, to); len(results) > 0 {
					return results, nil
				}
			}
			i += finalShifts[b&finalHashMask]
		}

		// Resume at the absolute position the in-window scan reached.
		pos += int64(i - start)
	}

	return types.NoResults(), nil
}

// ReaderSearchBackwards is SearchBackwards over a windowed reader.
func (e *Engine) ReaderSearchBackwards(rd *reader.Reader, from, to int64) ([]types.SearchResult, error) {
	info, err := e.backwardInfo()
	if err != nil {
		return nil, err
	}
	safeShifts := &info.shifts
	finalShifts := &info.finalShifts
	v := e.verifier

	lowest := max(to, 0)
	pos := min(from, rd.Length()-1)

	for pos >= lowest {
		window, err := rd.GetWindow(pos)
		if err != nil {
			return nil, err
		}
		if window == nil {
			break
		}

		data := window.Bytes()
		start := rd.WindowOffset(pos)
		last := 0
		if distance := lowest - window.Start(); distance > 0 {
			last = int(distance)
		}

		i := start
		for i >= last {
			b := data[i]
			if shift := safeShifts[b]; shift > 0 {
				i -= shift
				continue
			}
			startPos := pos + int64(i-start)
			matches, err := v.ReaderMatchesStartingAt(rd, startPos)
			if err != nil {
				return nil, err
			}
			if len(matches) > 0 {
				return types.ResultsStartingAt(startPos, matches), nil
			}
			i -= finalShifts[b&finalHashMask]
		}

		pos -= int64(start - i)
	}

	return types.NoResults(), nil
}
