package reader

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a pluggable retention policy for windows, keyed by window start
// position. Cache operations never fail: absence is a nil window, never an
// error. Implementations must never return a window whose start does not
// match the requested key, and must never mutate a stored window.
type Cache interface {
	// Get returns the cached window starting at start, or nil.
	Get(start int64) *Window

	// Put stores a window. Storing the same start twice is a no-op.
	Put(w *Window)
}

// NoCache retains nothing; every access recreates the window.
type NoCache struct{}

// NewNoCache returns a cache that never retains windows.
func NewNoCache() NoCache { return NoCache{} }

func (NoCache) Get(int64) *Window { return nil }
func (NoCache) Put(*Window)       {}

// AllWindows retains every window ever created, keyed by start position.
// Memory use is unbounded; suitable only for sources known to be small.
type AllWindows struct {
	mu      sync.RWMutex
	windows map[int64]*Window
}

// NewAllWindows returns an unbounded window cache.
func NewAllWindows() *AllWindows {
	return &AllWindows{windows: make(map[int64]*Window)}
}

func (c *AllWindows) Get(start int64) *Window {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.windows[start]
}

func (c *AllWindows) Put(w *Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.windows[w.Start()]; !ok {
		c.windows[w.Start()] = w
	}
}

// Len returns the number of retained windows.
func (c *AllWindows) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.windows)
}

// LRU retains up to a fixed number of windows, evicting the least recently
// used when capacity is exceeded. Eviction runs synchronously inside Put and
// never evicts the window just inserted. Lookup-or-insert is the only
// critical section; window contents are immutable and shared freely once
// published.
type LRU struct {
	windows *lru.Cache[int64, *Window]
}

// NewLRU returns a bounded window cache holding at most capacity windows.
func NewLRU(capacity int) (*LRU, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: cache capacity %d", ErrInvalidConfig, capacity)
	}
	windows, err := lru.New[int64, *Window](capacity)
	if err != nil {
		return nil, err
	}
	return &LRU{windows: windows}, nil
}

func (c *LRU) Get(start int64) *Window {
	if w, ok := c.windows.Get(start); ok {
		return w
	}
	return nil
}

func (c *LRU) Put(w *Window) {
	c.windows.Add(w.Start(), w)
}

// Len returns the number of retained windows.
func (c *LRU) Len() int {
	return c.windows.Len()
}
