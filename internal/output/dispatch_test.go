package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(opts ...Option) (*Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	opts = append([]Option{WithWriters(&out, &errOut)}, opts...)
	return NewDispatcher(opts...), &out, &errOut
}

func TestDispatch_Console_Binary(t *testing.T) {
	d, out, errOut := newTestDispatcher()

	err := d.Dispatch(Binary(make([]byte, 1234)), "")

	require.NoError(t, err)
	assert.Empty(t, out.String(), "raw bytes must never reach the console")
	assert.Equal(t, "Binary data received (1,234 bytes). Use --output to save it.\n", errOut.String())
}

func TestDispatch_Console_Text(t *testing.T) {
	d, out, errOut := newTestDispatcher()

	require.NoError(t, d.Dispatch(Text("# Title\n\nbody\n"), ""))

	assert.Equal(t, "# Title\n\nbody\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestDispatch_Console_TextAddsMissingNewline(t *testing.T) {
	d, out, _ := newTestDispatcher()

	require.NoError(t, d.Dispatch(Text("<html></html>"), ""))

	assert.Equal(t, "<html></html>\n", out.String())
}

func TestDispatch_Console_Structured(t *testing.T) {
	d, out, _ := newTestDispatcher()
	v := map[string]any{"result": []any{"https://example.com/a"}}

	require.NoError(t, d.Dispatch(Structured(v), ""))

	assert.Equal(t, "{\n  \"result\": [\"https://example.com/a\"]\n}\n", out.String())
}

func TestDispatch_Console_StructuredColor(t *testing.T) {
	d, out, _ := newTestDispatcher(WithColor(true, false))

	require.NoError(t, d.Dispatch(Structured(map[string]any{"k": "v"}), ""))

	assert.Contains(t, out.String(), "\x1b[")
}

func TestDispatch_Console_StructuredYAML(t *testing.T) {
	d, out, _ := newTestDispatcher(WithFormat(FormatYAML))

	require.NoError(t, d.Dispatch(Structured(map[string]any{"title": "Example"}), ""))

	assert.Equal(t, "title: Example\n", out.String())
}

func TestDispatch_Save_Binary(t *testing.T) {
	d, out, errOut := newTestDispatcher()
	path := filepath.Join(t.TempDir(), "screenshot.png")
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}

	require.NoError(t, d.Dispatch(Binary(data), path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Empty(t, out.String())
	assert.Equal(t, "Saved file to "+path+"\n", errOut.String())
}

func TestDispatch_Save_Text(t *testing.T) {
	d, _, _ := newTestDispatcher()
	path := filepath.Join(t.TempDir(), "page.html")

	require.NoError(t, d.Dispatch(Text("<p>no trailing newline</p>"), path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>no trailing newline</p>", string(got))
}

func TestDispatch_Save_StructuredRoundTrip(t *testing.T) {
	d, _, _ := newTestDispatcher()
	path := filepath.Join(t.TempDir(), "links.json")

	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"success":true,"result":["a","b"],"meta":{"n":2.5}}`), &v))

	require.NoError(t, d.Dispatch(Structured(v), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back any
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, v, back)
}

func TestDispatch_Save_Overwrites(t *testing.T) {
	d, _, _ := newTestDispatcher()
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("old content ", 100)), 0o644))

	require.NoError(t, d.Dispatch(Text("new"), path))
	require.NoError(t, d.Dispatch(Text("new"), path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestDispatch_Save_WriteErrorUnmodified(t *testing.T) {
	d, out, errOut := newTestDispatcher()
	path := filepath.Join(t.TempDir(), "missing-dir", "out.pdf")

	err := d.Dispatch(Binary([]byte("%PDF")), path)

	require.Error(t, err)
	var pathErr *fs.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, path, pathErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, out.String(), "no console fallback")
	assert.Empty(t, errOut.String())
}

func TestDispatch_UnknownKind(t *testing.T) {
	d, _, _ := newTestDispatcher()

	require.Error(t, d.Dispatch(Result{}, ""))
	require.Error(t, d.Dispatch(Result{}, filepath.Join(t.TempDir(), "x")))
}

func TestDispatch_NoticeColor(t *testing.T) {
	d, _, errOut := newTestDispatcher(WithColor(false, true))

	require.NoError(t, d.Dispatch(Binary([]byte("abc")), ""))

	assert.Contains(t, errOut.String(), "\x1b[33m")
	assert.Contains(t, errOut.String(), "Binary data received (3 bytes)")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(&buf, false), "buffers are never terminals")

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, ColorEnabled(f, false), "regular files are not terminals")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout, false))
	assert.False(t, ColorEnabled(os.Stdout, true))
}
