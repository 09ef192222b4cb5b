package reader

import "fmt"

// Window is an immutable block of bytes tagged with its absolute start
// position in the source. Windows are created by a Reader, shared by
// reference between the cache and in-flight searches, and recreated
// identically if evicted and re-requested.
type Window struct {
	start int64
	data  []byte
}

// NewWindow wraps data as a window starting at the given absolute position.
// The data slice is not copied; the caller must not mutate it afterwards.
func NewWindow(start int64, data []byte) *Window {
	return &Window{start: start, data: data}
}

// Start returns the absolute position of the window's first byte.
func (w *Window) Start() int64 {
	return w.start
}

// Length returns the number of valid bytes in the window. The final window
// of a source may be shorter than the reader's configured window size.
func (w *Window) Length() int {
	return len(w.data)
}

// ByteAt returns the byte at a window-relative offset.
func (w *Window) ByteAt(off int) (byte, error) {
	if off < 0 || off >= len(w.data) {
		return 0, fmt.Errorf("%w: offset %d in window of length %d", ErrOutOfBounds, off, len(w.data))
	}
	return w.data[off], nil
}

// Bytes returns the window's backing bytes without copying. The slice must
// be treated as read-only; mutating it corrupts every holder of the window.
func (w *Window) Bytes() []byte {
	return w.data
}

func (w *Window) String() string {
	return fmt.Sprintf("Window[start:%d length:%d]", w.start, len(w.data))
}
