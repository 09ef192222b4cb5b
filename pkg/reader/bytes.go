package reader

// byteSource exposes an in-memory byte slice as a single window spanning the
// whole slice. The slice is not copied: the window shares it by reference,
// so callers relying on the reader must not mutate the slice while reading.
type byteSource struct {
	data []byte
}

// FromBytes wraps a byte slice in a Reader. The window size equals the
// slice length, so every position resolves to one shared zero-copy window
// and no cache retention is needed.
func FromBytes(data []byte) *Reader {
	windowSize := len(data)
	if windowSize == 0 {
		windowSize = 1
	}
	r, err := newReader(&byteSource{data: data}, WithWindowSize(windowSize), WithCache(NoCache{}))
	if err != nil {
		// Unreachable: the window size above is always positive.
		panic(err)
	}
	return r
}

func (s *byteSource) readWindow(start int64) (*Window, error) {
	return NewWindow(start, s.data[start:]), nil
}

func (s *byteSource) length() int64 {
	return int64(len(s.data))
}

func (s *byteSource) close() error {
	return nil
}
