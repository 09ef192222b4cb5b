// Package sigseek provides multi-pattern byte search over large binary
// sources.
//
// Sigseek pairs a windowed, cache-backed random-access reader with a
// Wu-Manber-family shift-table search engine, so a set of byte signatures
// can be located in files far larger than memory without loading them
// whole.
//
// # Basic Usage
//
// Create a searcher over a pattern set and scan a byte slice:
//
//	searcher, err := sigseek.NewSearcher([]*sigseek.Pattern{
//	    {ID: "fmt.zip", Name: "ZIP archive", Bytes: []byte{0x50, 0x4B, 0x03, 0x04}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := searcher.SearchForwards(content, 0, int64(len(content))-1)
//	for _, r := range results {
//	    fmt.Printf("%s at offset %d\n", r.Pattern.ID, r.Start)
//	}
//
// # Large Files
//
// Scan through a windowed reader instead of loading the file:
//
//	rd, err := sigseek.NewFileReader("/path/to/disk.img",
//	    sigseek.WithWindowSize(65536),
//	    sigseek.WithCacheCapacity(64),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rd.Close()
//
//	results, err := searcher.SearchReaderForwards(rd, 0, rd.Length()-1)
//
// An empty result is an empty slice, never nil: "no matches" is distinct
// from a failed search, which returns an error.
package sigseek

import (
	"github.com/sigseek/sigseek/pkg/matcher"
	"github.com/sigseek/sigseek/pkg/reader"
	"github.com/sigseek/sigseek/pkg/search"
	"github.com/sigseek/sigseek/pkg/types"
)

// Re-export commonly used types for convenience. Users can import just
// "github.com/sigseek/sigseek" without subpackages.
type (
	// Pattern is a byte sequence to search for.
	Pattern = types.Pattern

	// Result records a pattern found at an absolute position.
	Result = types.SearchResult

	// Reader provides windowed random access over a byte source.
	Reader = reader.Reader

	// Window is an immutable block of a byte source.
	Window = reader.Window

	// Cache is a pluggable window retention strategy.
	Cache = reader.Cache

	// Option configures a Reader.
	Option = reader.Option
)

// Reader configuration options.
var (
	// WithWindowSize sets the reader's window size in bytes.
	WithWindowSize = reader.WithWindowSize

	// WithCache sets the reader's cache strategy.
	WithCache = reader.WithCache

	// WithCacheCapacity sets a bounded LRU cache of the given capacity.
	WithCacheCapacity = reader.WithCacheCapacity
)

// NewFileReader opens a file for windowed random access. Close the reader
// to release the file handle.
func NewFileReader(path string, opts ...Option) (*Reader, error) {
	return reader.OpenFile(path, opts...)
}

// NewByteReader wraps an in-memory byte slice in a Reader. The slice is
// shared, not copied; do not mutate it while the reader is in use.
func NewByteReader(data []byte) *Reader {
	return reader.FromBytes(data)
}

// Searcher locates any of a fixed set of patterns in byte slices or
// readers. A Searcher is immutable and safe for concurrent searches.
type Searcher struct {
	sequences *matcher.MultiSequence
	prefilter *matcher.Prefilter
	engine    *search.Engine
}

// NewSearcher creates a searcher over a pattern set. The set must be
// non-empty and every pattern must have at least one byte.
func NewSearcher(patterns []*Pattern) (*Searcher, error) {
	sequences, err := matcher.NewMultiSequence(patterns)
	if err != nil {
		return nil, err
	}
	prefilter, err := matcher.NewPrefilter(patterns)
	if err != nil {
		return nil, err
	}
	engine, err := search.NewEngine(sequences)
	if err != nil {
		return nil, err
	}
	return &Searcher{sequences: sequences, prefilter: prefilter, engine: engine}, nil
}

// Patterns returns the searcher's pattern set.
func (s *Searcher) Patterns() []*Pattern {
	return s.sequences.Patterns()
}

// SearchForwards scans data from low to high positions and returns every
// pattern matching at the first position whose start falls in [from, to].
func (s *Searcher) SearchForwards(data []byte, from, to int64) ([]Result, error) {
	return s.engine.SearchForwards(data, from, to)
}

// SearchBackwards scans data from high to low positions, from down to to.
func (s *Searcher) SearchBackwards(data []byte, from, to int64) ([]Result, error) {
	return s.engine.SearchBackwards(data, from, to)
}

// SearchReaderForwards is SearchForwards over a windowed reader.
func (s *Searcher) SearchReaderForwards(rd *Reader, from, to int64) ([]Result, error) {
	return s.engine.ReaderSearchForwards(rd, from, to)
}

// SearchReaderBackwards is SearchBackwards over a windowed reader.
func (s *Searcher) SearchReaderBackwards(rd *Reader, from, to int64) ([]Result, error) {
	return s.engine.ReaderSearchBackwards(rd, from, to)
}

// FindAll returns every match starting in [from, to], ascending.
func (s *Searcher) FindAll(data []byte, from, to int64) ([]Result, error) {
	return s.engine.FindAllForwards(data, from, to)
}

// FindAllReader is FindAll over a windowed reader.
func (s *Searcher) FindAllReader(rd *Reader, from, to int64) ([]Result, error) {
	return s.engine.ReaderFindAllForwards(rd, from, to)
}

// Contains reports which of the searcher's patterns occur anywhere in
// content, without positions. Useful as a cheap prefilter before
// position-exact searches.
func (s *Searcher) Contains(content []byte) []*Pattern {
	return s.prefilter.Contains(content)
}

// ContainsReader is Contains over a windowed reader, streaming the source
// window by window.
func (s *Searcher) ContainsReader(rd *Reader) ([]*Pattern, error) {
	return s.prefilter.ContainsReader(rd)
}
