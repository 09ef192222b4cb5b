// Package reader provides position-addressed random access over byte
// sources of unbounded size, through fixed-size windows retained by a
// pluggable cache strategy. Reads are byte-for-byte identical to the
// underlying source regardless of window size or cache configuration.
package reader

import (
	"errors"
	"fmt"
	"iter"
	"sync/atomic"
)

// DefaultWindowSize is the window size used when none is configured.
const DefaultWindowSize = 4096

// DefaultCacheCapacity is the LRU capacity used when no cache is configured.
const DefaultCacheCapacity = 32

var (
	// ErrOutOfBounds reports a position outside [0, Length()).
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrClosed reports an operation on a closed reader.
	ErrClosed = errors.New("reader is closed")

	// ErrInvalidConfig reports a non-positive window size or cache capacity.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// source materializes the bytes for any window start position. Implemented
// by the paged file adapter and the whole-array adapter; the Reader depends
// only on this capability, never on a concrete source type.
type source interface {
	// readWindow returns the window starting at start, whose length is the
	// configured window size except for a short final window. start is
	// always a multiple of the window size and less than length().
	readWindow(start int64) (*Window, error)

	// length returns the total byte count of the source.
	length() int64

	// close releases any held resource. Idempotent.
	close() error
}

// Reader exposes random-access byte reads over a source through windows
// resolved via a cache strategy. A reader is safe for concurrent searches:
// windows are immutable once published and the cache strategies synchronize
// their own bookkeeping.
type Reader struct {
	src        source
	windowSize int64
	cache      Cache

	// last-used window hint, checked before the cache on the hot path.
	last atomic.Pointer[Window]

	closed atomic.Bool
}

// Option configures a Reader.
type Option func(*config)

type config struct {
	windowSize int
	cache      Cache
}

// WithWindowSize sets the window size in bytes. Must be positive.
func WithWindowSize(size int) Option {
	return func(c *config) {
		c.windowSize = size
	}
}

// WithCache sets the cache strategy. The default is a bounded LRU of
// DefaultCacheCapacity windows.
func WithCache(cache Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithCacheCapacity sets a bounded LRU cache of the given capacity.
// Must be positive.
func WithCacheCapacity(capacity int) Option {
	return func(c *config) {
		c.cache = &lruPlaceholder{capacity: capacity}
	}
}

// lruPlaceholder defers LRU construction (and its capacity validation) to
// newReader so WithCacheCapacity can stay error-free at the call site.
type lruPlaceholder struct {
	capacity int
}

func (*lruPlaceholder) Get(int64) *Window { return nil }
func (*lruPlaceholder) Put(*Window)       {}

func newReader(src source, opts ...Option) (*Reader, error) {
	cfg := &config{windowSize: DefaultWindowSize}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.windowSize < 1 {
		return nil, fmt.Errorf("%w: window size %d", ErrInvalidConfig, cfg.windowSize)
	}
	if cfg.cache == nil {
		cache, err := NewLRU(DefaultCacheCapacity)
		if err != nil {
			return nil, err
		}
		cfg.cache = cache
	}
	if p, ok := cfg.cache.(*lruPlaceholder); ok {
		cache, err := NewLRU(p.capacity)
		if err != nil {
			return nil, err
		}
		cfg.cache = cache
	}
	return &Reader{
		src:        src,
		windowSize: int64(cfg.windowSize),
		cache:      cfg.cache,
	}, nil
}

// Length returns the total byte count of the source.
func (r *Reader) Length() int64 {
	return r.src.length()
}

// WindowSize returns the configured window size.
func (r *Reader) WindowSize() int {
	return int(r.windowSize)
}

// ReadByte returns the byte at an absolute position.
func (r *Reader) ReadByte(pos int64) (byte, error) {
	if r.closed.Load() {
		return 0, fmt.Errorf("reading byte at %d: %w", pos, ErrClosed)
	}
	if pos < 0 || pos >= r.Length() {
		return 0, fmt.Errorf("%w: position %d in source of length %d", ErrOutOfBounds, pos, r.Length())
	}
	w, err := r.GetWindow(pos)
	if err != nil {
		return 0, err
	}
	return w.ByteAt(r.WindowOffset(pos))
}

// GetWindow returns the window containing an absolute position, or nil if
// the position is outside [0, Length()). This is the search engine's hot
// path: the last-used window is checked before the cache, and a freshly
// created window is published to the cache before being returned.
func (r *Reader) GetWindow(pos int64) (*Window, error) {
	if r.closed.Load() {
		return nil, fmt.Errorf("window for position %d: %w", pos, ErrClosed)
	}
	if pos < 0 || pos >= r.Length() {
		return nil, nil
	}
	start := pos - (pos % r.windowSize)

	if w := r.last.Load(); w != nil && w.Start() == start {
		return w, nil
	}
	if w := r.cache.Get(start); w != nil {
		r.last.Store(w)
		return w, nil
	}

	w, err := r.src.readWindow(start)
	if err != nil {
		return nil, err
	}
	r.cache.Put(w)
	r.last.Store(w)
	return w, nil
}

// WindowOffset returns the offset of an absolute position within its window.
func (r *Reader) WindowOffset(pos int64) int {
	return int(pos % r.windowSize)
}

// Windows returns a lazy, restartable iterator over every window of the
// source in ascending order. A zero-length source yields nothing. Iteration
// stops at the first read error, yielding a nil window with that error.
func (r *Reader) Windows() iter.Seq2[*Window, error] {
	return func(yield func(*Window, error) bool) {
		for pos := int64(0); pos < r.Length(); pos += r.windowSize {
			w, err := r.GetWindow(pos)
			if err != nil {
				yield(nil, err)
				return
			}
			if w == nil || !yield(w, nil) {
				return
			}
		}
	}
}

// Close releases the underlying resource. All subsequent read operations
// fail with ErrClosed. Close is idempotent.
func (r *Reader) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.src.close()
}
