package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the full CLI against the given database and returns the
// captured stdout. The config flag points at a missing file so tests always
// run on the built-in defaults.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	full := append([]string{}, args...)
	full = append(full, "--db", dbPath, "--config", filepath.Join(filepath.Dir(dbPath), "absent.yaml"))

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(full)

	err := cmd.Execute()
	return out.String(), err
}

// writeTestImage writes a small PNG and returns its path.
func writeTestImage(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 90, A: 255})
		}
	}

	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))

	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

// mustAdd adds an outfit and returns its id, parsed from the text output.
func mustAdd(t *testing.T, dbPath string, extra ...string) string {
	t.Helper()

	img := writeTestImage(t, t.TempDir())
	args := append([]string{"add", img}, extra...)
	out, err := execute(t, dbPath, args...)
	require.NoError(t, err)

	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(line)
	require.Len(t, fields, 2, "unexpected add output: %q", out)
	return fields[1]
}
