package files

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/taxis/lib/consoles"
)

func newStorage(t *testing.T, envelope bool) (*filesStorage, string) {
	dir := filepath.Join(t.TempDir(), "export")

	s, err := NewFilesStorage(dir, Options{Envelope: envelope}, consoles.NewNullConsole())
	require.NoError(t, err)

	fs := s.(*filesStorage)
	fs.now = func() time.Time {
		return time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	}
	return fs, dir
}

func TestWriteDocumentWithEnvelope(t *testing.T) {
	t.Parallel()

	s, dir := newStorage(t, true)

	err := s.WriteDocument("district-full.json", "Districts", []int{1, 2})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "district-full.json"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"meta":{"title":"district-full","description":"Districts","generated":"2023-05-06T07:08:09Z"},"data":[1,2]}`,
		string(data))
}

func TestWriteDocumentWithoutDescriptionIsRaw(t *testing.T) {
	t.Parallel()

	s, dir := newStorage(t, true)

	err := s.WriteDocument("a.topojson", "", map[string]string{"type": "Topology"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.topojson"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Topology"}`, string(data))
}

func TestWriteDocumentEnvelopeDisabled(t *testing.T) {
	t.Parallel()

	s, dir := newStorage(t, false)

	err := s.WriteDocument("national.json", "National", []string{"x"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "national.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `["x"]`, string(data))
}

func TestCopyFileKeepsBytes(t *testing.T) {
	t.Parallel()

	s, dir := newStorage(t, true)

	src := filepath.Join(t.TempDir(), "in.topojson")
	content := []byte("{ \"type\" : \"Topology\" }\n")
	require.NoError(t, os.WriteFile(src, content, 0o600))

	require.NoError(t, s.CopyFile("admin-areas.topojson", src))

	data, err := os.ReadFile(filepath.Join(dir, "admin-areas.topojson"))
	require.NoError(t, err)
	assert.Equal(t, content, data)

	var v map[string]any
	assert.NoError(t, json.Unmarshal(data, &v))
}

func TestCopyFileMissingSource(t *testing.T) {
	t.Parallel()

	s, _ := newStorage(t, true)

	assert.Error(t, s.CopyFile("x", filepath.Join(t.TempDir(), "missing")))
}
