package search

import (
	"errors"
	"fmt"
)

// ErrNoPatterns reports an attempt to build shift tables for an empty
// pattern set; there is no safe shift over zero patterns.
var ErrNoPatterns = errors.New("no patterns to search for")

// finalTableSize is the size of the final-shift hash table. With one-byte
// blocks the hash of the examined bytes is the byte value itself, so the
// table covers every byte value and the mask is the identity.
const finalTableSize = 256

const finalHashMask = finalTableSize - 1

// searchInfo holds the precomputed tables for one search direction.
//
// shifts maps a byte value to the minimum safe shift: the smallest distance,
// over all patterns, from that byte's occurrence to the pattern's end
// (forward) or the pattern's start (backward). A zero shift marks a
// candidate position that must be verified.
//
// finalShifts bounds the worst case once a candidate has been rejected: the
// same computation excluding the final position, so it is always at least 1.
type searchInfo struct {
	shifts      [256]int
	finalShifts [finalTableSize]int
}

// newSearchInfo builds the tables for a pattern set. Building is
// deterministic and pure: identical pattern sets always produce identical
// tables, so callers may build once and reuse across searches.
func newSearchInfo(sequences [][]byte, backward bool) (*searchInfo, error) {
	if len(sequences) == 0 {
		return nil, ErrNoPatterns
	}
	minLength := len(sequences[0])
	for _, seq := range sequences {
		if len(seq) == 0 {
			return nil, fmt.Errorf("%w: empty sequence in pattern set", ErrNoPatterns)
		}
		if len(seq) < minLength {
			minLength = len(seq)
		}
	}

	info := &searchInfo{}
	for i := range info.shifts {
		info.shifts[i] = minLength
	}
	for i := range info.finalShifts {
		info.finalShifts[i] = minLength
	}

	// Forward candidates are pattern ends, so the table registers each
	// pattern's last minLength bytes with their distance to the end;
	// backward candidates are pattern starts, so it registers the first
	// minLength bytes with their distance to the start. Bytes further than
	// minLength from the anchor never contribute: a larger shift could
	// skip over the shortest pattern entirely.
	for _, seq := range sequences {
		for shift := 0; shift < minLength; shift++ {
			b := seq[len(seq)-1-shift]
			if backward {
				b = seq[shift]
			}
			if shift < info.shifts[b] {
				info.shifts[b] = shift
			}
			if shift > 0 && shift < info.finalShifts[b&finalHashMask] {
				info.finalShifts[b&finalHashMask] = shift
			}
		}
	}
	return info, nil
}
