// Package matcher provides an exact multi-sequence matcher used to verify
// search-engine candidates and to answer pattern-set metadata queries
// (minimum/maximum length, per-byte membership).
package matcher

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sigseek/sigseek/pkg/reader"
	"github.com/sigseek/sigseek/pkg/types"
)

var (
	// ErrNoPatterns reports construction over an empty pattern set.
	ErrNoPatterns = errors.New("no patterns")

	// ErrEmptySequence reports a pattern with no bytes.
	ErrEmptySequence = errors.New("pattern has an empty byte sequence")
)

// MultiSequence matches a fixed set of byte sequences at exact positions.
// Verification is deterministic: patterns are reported in registration
// order. A MultiSequence is immutable and safe for concurrent use.
type MultiSequence struct {
	patterns  []*types.Pattern
	sequences [][]byte

	// patterns grouped by their last and first byte, so verification only
	// compares sequences that could possibly match at the position.
	byLast  [256][]*types.Pattern
	byFirst [256][]*types.Pattern

	minLength int
	maxLength int
}

// NewMultiSequence builds a matcher over the given patterns.
func NewMultiSequence(patterns []*types.Pattern) (*MultiSequence, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	m := &MultiSequence{
		patterns:  patterns,
		sequences: make([][]byte, 0, len(patterns)),
		minLength: len(patterns[0].Bytes),
	}
	for _, p := range patterns {
		if len(p.Bytes) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptySequence, p.ID)
		}
		m.sequences = append(m.sequences, p.Bytes)
		if len(p.Bytes) < m.minLength {
			m.minLength = len(p.Bytes)
		}
		if len(p.Bytes) > m.maxLength {
			m.maxLength = len(p.Bytes)
		}
		last := p.Bytes[len(p.Bytes)-1]
		first := p.Bytes[0]
		m.byLast[last] = append(m.byLast[last], p)
		m.byFirst[first] = append(m.byFirst[first], p)
	}
	return m, nil
}

// Patterns returns the pattern set in registration order.
func (m *MultiSequence) Patterns() []*types.Pattern {
	return m.patterns
}

// MinLength returns the shortest pattern length.
func (m *MultiSequence) MinLength() int {
	return m.minLength
}

// MaxLength returns the longest pattern length.
func (m *MultiSequence) MaxLength() int {
	return m.maxLength
}

// Sequences returns the raw byte sequences in registration order.
func (m *MultiSequence) Sequences() [][]byte {
	return m.sequences
}

// MatchesEndingAt returns the patterns whose last byte sits at pos in data.
// It returns nil when nothing matches, allocating only on a hit.
func (m *MultiSequence) MatchesEndingAt(data []byte, pos int) []*types.Pattern {
	if pos < 0 || pos >= len(data) {
		return nil
	}
	var matches []*types.Pattern
	for _, p := range m.byLast[data[pos]] {
		start := pos - len(p.Bytes) + 1
		if start >= 0 && bytes.Equal(data[start:pos+1], p.Bytes) {
			matches = append(matches, p)
		}
	}
	return matches
}

// MatchesStartingAt returns the patterns whose first byte sits at pos in data.
func (m *MultiSequence) MatchesStartingAt(data []byte, pos int) []*types.Pattern {
	if pos < 0 || pos >= len(data) {
		return nil
	}
	var matches []*types.Pattern
	for _, p := range m.byFirst[data[pos]] {
		end := pos + len(p.Bytes)
		if end <= len(data) && bytes.Equal(data[pos:end], p.Bytes) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ReaderMatchesEndingAt is MatchesEndingAt through a windowed reader.
// Candidate sequences may straddle window boundaries; comparison walks the
// reader byte by byte and any read error aborts verification.
func (m *MultiSequence) ReaderMatchesEndingAt(rd *reader.Reader, pos int64) ([]*types.Pattern, error) {
	if pos < 0 || pos >= rd.Length() {
		return nil, nil
	}
	b, err := rd.ReadByte(pos)
	if err != nil {
		return nil, err
	}
	var matches []*types.Pattern
	for _, p := range m.byLast[b] {
		start := pos - int64(len(p.Bytes)) + 1
		if start < 0 {
			continue
		}
		ok, err := m.readerEqual(rd, start, p.Bytes)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// ReaderMatchesStartingAt is MatchesStartingAt through a windowed reader.
func (m *MultiSequence) ReaderMatchesStartingAt(rd *reader.Reader, pos int64) ([]*types.Pattern, error) {
	if pos < 0 || pos >= rd.Length() {
		return nil, nil
	}
	b, err := rd.ReadByte(pos)
	if err != nil {
		return nil, err
	}
	var matches []*types.Pattern
	for _, p := range m.byFirst[b] {
		if pos+int64(len(p.Bytes)) > rd.Length() {
			continue
		}
		ok, err := m.readerEqual(rd, pos, p.Bytes)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// readerEqual reports whether the reader's bytes at start equal seq,
// comparing window slices to avoid a ReadByte call per byte.
func (m *MultiSequence) readerEqual(rd *reader.Reader, start int64, seq []byte) (bool, error) {
	pos := start
	remaining := seq
	for len(remaining) > 0 {
		window, err := rd.GetWindow(pos)
		if err != nil {
			return false, err
		}
		if window == nil {
			return false, nil
		}
		offset := rd.WindowOffset(pos)
		chunk := window.Bytes()[offset:]
		if len(chunk) > len(remaining) {
			chunk = chunk[:len(remaining)]
		}
		if !bytes.Equal(chunk, remaining[:len(chunk)]) {
			return false, nil
		}
		remaining = remaining[len(chunk):]
		pos += int64(len(chunk))
	}
	return true, nil
}
