package sigseek

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigseek/sigseek/pkg/signature"
)

var zipHeader = []byte{0x50, 0x4B, 0x03, 0x04}

func builtinSearcher(t *testing.T) *Searcher {
	t.Helper()
	signatures, err := signature.LoadBuiltin()
	require.NoError(t, err)
	patterns, err := signature.Patterns(signatures)
	require.NoError(t, err)
	searcher, err := NewSearcher(patterns)
	require.NoError(t, err)
	return searcher
}

// fakeArchive is binary content with a ZIP header at 1000 and a PDF header
// at 9000, surrounded by filler that contains no builtin signature.
func fakeArchive(t *testing.T) []byte {
	t.Helper()
	content := bytes.Repeat([]byte{0xEE}, 12000)
	copy(content[1000:], zipHeader)
	copy(content[9000:], []byte("%PDF-1.7"))
	return content
}

func TestNewSearcher_Validation(t *testing.T) {
	_, err := NewSearcher(nil)
	assert.Error(t, err)

	_, err = NewSearcher([]*Pattern{{ID: "empty"}})
	assert.Error(t, err)
}

func TestSearcher_SearchForwards(t *testing.T) {
	searcher := builtinSearcher(t)
	content := fakeArchive(t)

	results, err := searcher.SearchForwards(content, 0, int64(len(content))-1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fmt.zip", results[0].Pattern.ID)
	assert.Equal(t, int64(1000), results[0].Start)
	assert.Equal(t, int64(1004), results[0].End)
}

func TestSearcher_SearchBackwards(t *testing.T) {
	searcher := builtinSearcher(t)
	content := fakeArchive(t)

	results, err := searcher.SearchBackwards(content, int64(len(content))-1, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fmt.pdf", results[0].Pattern.ID)
	assert.Equal(t, int64(9000), results[0].Start)
}

func TestSearcher_FindAll(t *testing.T) {
	searcher := builtinSearcher(t)
	content := fakeArchive(t)

	results, err := searcher.FindAll(content, 0, int64(len(content))-1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "fmt.zip", results[0].Pattern.ID)
	assert.Equal(t, "fmt.pdf", results[1].Pattern.ID)
}

func TestSearcher_EmptyResultIsNotError(t *testing.T) {
	searcher := builtinSearcher(t)
	content := bytes.Repeat([]byte{0xEE}, 100)

	results, err := searcher.SearchForwards(content, 0, int64(len(content))-1)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearcher_FileReaderRoundTrip(t *testing.T) {
	searcher := builtinSearcher(t)
	content := fakeArchive(t)
	path := filepath.Join(t.TempDir(), "archive.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	rd, err := NewFileReader(path, WithWindowSize(512), WithCacheCapacity(4))
	require.NoError(t, err)
	defer rd.Close()

	arrayResults, err := searcher.SearchForwards(content, 0, int64(len(content))-1)
	require.NoError(t, err)
	readerResults, err := searcher.SearchReaderForwards(rd, 0, rd.Length()-1)
	require.NoError(t, err)
	assert.Equal(t, arrayResults, readerResults)

	all, err := searcher.FindAllReader(rd, 0, rd.Length()-1)
	require.NoError(t, err)
	require.Len(t, all, 2)

	backward, err := searcher.SearchReaderBackwards(rd, rd.Length()-1, 0)
	require.NoError(t, err)
	require.Len(t, backward, 1)
	assert.Equal(t, "fmt.pdf", backward[0].Pattern.ID)
}

func TestSearcher_Contains(t *testing.T) {
	searcher := builtinSearcher(t)
	content := fakeArchive(t)

	found := searcher.Contains(content)
	require.Len(t, found, 2)
	assert.Equal(t, "fmt.zip", found[0].ID)
	assert.Equal(t, "fmt.pdf", found[1].ID)
}

func TestSearcher_ContainsReader(t *testing.T) {
	searcher := builtinSearcher(t)
	content := fakeArchive(t)
	path := filepath.Join(t.TempDir(), "archive.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	rd, err := NewFileReader(path, WithWindowSize(256))
	require.NoError(t, err)
	defer rd.Close()

	found, err := searcher.ContainsReader(rd)
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestNewByteReader(t *testing.T) {
	content := fakeArchive(t)
	rd := NewByteReader(content)
	defer rd.Close()

	searcher := builtinSearcher(t)
	results, err := searcher.SearchReaderForwards(rd, 0, rd.Length()-1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1000), results[0].Start)
}
