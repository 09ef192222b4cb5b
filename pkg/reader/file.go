package reader

import (
	"fmt"
	"io"
	"os"
)

// fileSource pages a file into windows with ReadAt. The reader owns the file
// handle exclusively for its lifetime and releases it on close.
type fileSource struct {
	file       *os.File
	size       int64
	windowSize int64
}

// OpenFile opens a file and wraps it in a Reader. The file's length is fixed
// at open; a file that shrinks underneath the reader surfaces an I/O error
// on the first read past its new end.
func OpenFile(path string, opts ...Option) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	src := &fileSource{file: file, size: info.Size()}
	r, err := newReader(src, opts...)
	if err != nil {
		file.Close()
		return nil, err
	}
	src.windowSize = r.windowSize
	return r, nil
}

func (s *fileSource) readWindow(start int64) (*Window, error) {
	size := s.windowSize
	if remaining := s.size - start; remaining < size {
		size = remaining
	}
	data := make([]byte, size)
	if _, err := s.file.ReadAt(data, start); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = fmt.Errorf("source truncated below %d bytes: %w", s.size, err)
		}
		return nil, fmt.Errorf("reading window at %d: %w", start, err)
	}
	return NewWindow(start, data), nil
}

func (s *fileSource) length() int64 {
	return s.size
}

func (s *fileSource) close() error {
	return s.file.Close()
}
