package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetScanFlags restores the scan flag defaults between tests.
func resetScanFlags() {
	scanSignaturesPath = ""
	scanWindowSize = 0
	scanCacheCapacity = 0
	scanBackwards = false
	scanAll = false
	scanFrom = 0
	scanTo = -1
	scanMaxInMemory = 16 * 1024 * 1024
	quiet = false
}

// writeTestArchive writes a file with a ZIP header planted at offset 100.
func writeTestArchive(t *testing.T) string {
	t.Helper()
	content := bytes.Repeat([]byte{0xEE}, 500)
	copy(content[100:], []byte{0x50, 0x4B, 0x03, 0x04})
	path := filepath.Join(t.TempDir(), "archive.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestRunScan(t *testing.T) {
	resetScanFlags()
	path := writeTestArchive(t)

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runScan(cmd, []string{path})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "fmt.zip")
	assert.Contains(t, output, "100")
	assert.Contains(t, output, "1 match(es)")
}

func TestRunScanWindowed(t *testing.T) {
	resetScanFlags()
	path := writeTestArchive(t)

	// Force the streaming path with a tiny in-memory limit.
	scanMaxInMemory = 1
	scanWindowSize = 64
	scanCacheCapacity = 2

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runScan(cmd, []string{path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fmt.zip")
}

func TestRunScanBackwards(t *testing.T) {
	resetScanFlags()
	path := writeTestArchive(t)
	scanBackwards = true

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runScan(cmd, []string{path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "fmt.zip")
}

func TestRunScanNoMatches(t *testing.T) {
	resetScanFlags()
	path := filepath.Join(t.TempDir(), "plain.bin")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xEE}, 200), 0o600))

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runScan(cmd, []string{path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no signatures found")
}

func TestRunScanCustomCatalogue(t *testing.T) {
	resetScanFlags()
	dir := t.TempDir()

	sigsPath := filepath.Join(dir, "sigs.yaml")
	sigsYAML := `signatures:
  - id: custom.marker
    name: Custom Marker
    ascii: "MARKER"
`
	require.NoError(t, os.WriteFile(sigsPath, []byte(sigsYAML), 0o600))

	target := filepath.Join(dir, "target.bin")
	require.NoError(t, os.WriteFile(target, []byte("....MARKER...."), 0o600))
	scanSignaturesPath = sigsPath

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runScan(cmd, []string{target})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "custom.marker")
}

func TestRunScanInvalidTarget(t *testing.T) {
	resetScanFlags()

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runScan(cmd, []string{"/nonexistent/path"})
	assert.Error(t, err)
}

func TestRunScanAll(t *testing.T) {
	resetScanFlags()
	content := bytes.Repeat([]byte{0xEE}, 400)
	copy(content[50:], []byte{0x50, 0x4B, 0x03, 0x04})
	copy(content[300:], []byte("%PDF-"))
	path := filepath.Join(t.TempDir(), "multi.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	scanAll = true

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runScan(cmd, []string{path})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "fmt.zip")
	assert.Contains(t, output, "fmt.pdf")
	assert.Contains(t, output, "2 match(es)")
}
