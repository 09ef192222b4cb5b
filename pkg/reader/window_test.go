package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	w := NewWindow(4096, []byte{0x50, 0x4B, 0x03, 0x04})

	assert.Equal(t, int64(4096), w.Start())
	assert.Equal(t, 4, w.Length())

	b, err := w.ByteAt(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x50), b)

	b, err = w.ByteAt(3)
	require.NoError(t, err)
	assert.Equal(t, byte(0x04), b)
}

func TestWindow_ByteAtOutOfBounds(t *testing.T) {
	w := NewWindow(0, []byte{1, 2, 3})

	_, err := w.ByteAt(3)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = w.ByteAt(-1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestWindow_BytesIsZeroCopy(t *testing.T) {
	data := []byte{1, 2, 3}
	w := NewWindow(0, data)

	// The backing slice is shared, not copied.
	assert.Equal(t, &data[0], &w.Bytes()[0])
	assert.Equal(t, data, w.Bytes())
}

func TestWindow_Empty(t *testing.T) {
	w := NewWindow(0, nil)
	assert.Equal(t, 0, w.Length())

	_, err := w.ByteAt(0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
