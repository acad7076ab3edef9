package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tableflip.dev/tourcatalog/pkg/runner/datasets"
	"tableflip.dev/tourcatalog/pkg/store"
)

type testConfig struct{ path string }

func (t testConfig) BasePath() string    { return t.path }
func (t testConfig) DataPath() string    { return "" }
func (t testConfig) RowHeight() int      { return store.DefaultRowHeight }
func (t testConfig) ViewportHeight() int { return store.DefaultViewportHeight }
func (t testConfig) Width() int          { return store.DefaultWidth }

const body = `{"success": true, "main": {"request_id": "req-7"}, "hotels": [
  {"hotel": {"id": 1, "name": "Alpha", "rating": 4.5}, "min_price": 1200},
  {"hotel": {"id": 2, "name": "Beta", "rating": 3}, "min_price": 900}
]}`

func TestImportThenListAndDelete(t *testing.T) {
	ctx := context.Background()
	p, err := store.Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hotels.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	var out bytes.Buffer
	imp := Importer{Path: path, Persistence: p, Out: &out}
	require.NoError(t, imp.Do(ctx))
	require.Equal(t, "imported 2 hotels as req-7\n", out.String())

	ds, err := p.Load("req-7")
	require.NoError(t, err)
	require.Len(t, ds.Items, 2)
	require.Equal(t, path, ds.Source)

	out.Reset()
	list := datasets.Datasets{Persistence: p, JSON: true, Out: &out}
	require.NoError(t, list.Do(ctx))
	require.Contains(t, out.String(), `"request_id": "req-7"`)

	out.Reset()
	del := datasets.Datasets{Persistence: p, Delete: []string{"req-7"}, Out: &out}
	require.NoError(t, del.Do(ctx))
	require.Equal(t, "deleted req-7\n", out.String())
	require.Empty(t, p.List(ctx))
}

func TestImportFailures(t *testing.T) {
	p, err := store.Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)

	require.Error(t, (&Importer{Path: filepath.Join(t.TempDir(), "nope.json"), Persistence: p}).Do(context.Background()))
	require.Error(t, (&Importer{Path: "x"}).Do(context.Background()))
}
