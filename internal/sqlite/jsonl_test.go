package sqlite

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/types"
)

func TestReadJSONLSkipsMalformed(t *testing.T) {
	in := "{\"a\":1}\n\nnot json\n[1,2]\n{\"b\":\n"
	records, skipped, err := readJSONL(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, skipped)
}

func TestWriteJSONLAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	records := []json.RawMessage{json.RawMessage(`{"x":1}`), json.RawMessage(`{"x":2}`)}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"x\":1}\n{\"x\":2}\n", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func seed(t *testing.T, b *Backend) {
	t.Helper()
	for _, e := range []*types.Entry{
		{Name: "mtow", Kind: dim.KindMass, Values: []float64{79000}, Unit: "kg", Note: "max takeoff"},
		{Name: "cabin_pressure", Kind: dim.KindPressure, Values: []float64{11.8}, Unit: "psi"},
		{Name: "gust", Kind: dim.KindVelocity, Values: []float64{15, 0, -3}, Vector: true, Unit: "m/s"},
	} {
		_, err := b.Set(e)
		require.NoError(t, err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := attachTemp(t)
	seed(t, src)

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"name":"cabin_pressure"`)

	dst, _ := attachTemp(t)
	n, err := dst.Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want, err := src.List("")
	require.NoError(t, err)
	got, err := dst.List("")
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].EntryID, got[i].EntryID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Values, got[i].Values)
		assert.Equal(t, want[i].Vector, got[i].Vector)
		assert.Equal(t, want[i].Note, got[i].Note)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.True(t, want[i].UpdatedAt.Equal(got[i].UpdatedAt))
	}

	// Importing again updates in place.
	n, err = dst.Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	got, err = dst.List("")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExportFileImportFile(t *testing.T) {
	src, _ := attachTemp(t)
	seed(t, src)

	path := filepath.Join(t.TempDir(), "sheet.jsonl")
	require.NoError(t, src.ExportFile(path))

	dst, _ := attachTemp(t)
	n, err := dst.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = dst.ImportFile(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)
}

func TestImportStopsAtInvalidEntry(t *testing.T) {
	b, _ := attachTemp(t)

	in := `{"entry_id":"0190f3a4-7b1c-7000-8000-00000000000a","name":"ok","kind":"mass","values":[1],"unit":"kg"}
garbage
{"entry_id":"0190f3a4-7b1c-7000-8000-00000000000b","name":"bad","kind":"mass","values":[1],"unit":"m"}
{"entry_id":"0190f3a4-7b1c-7000-8000-00000000000c","name":"later","kind":"mass","values":[1],"unit":"kg"}
`
	n, err := b.Import(strings.NewReader(in))
	assert.ErrorIs(t, err, types.ErrKindMismatch)
	assert.Equal(t, 1, n)

	_, err = b.GetByName("ok")
	assert.NoError(t, err)
	_, err = b.GetByName("later")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
