package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

func TestYAMLSymbolStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := m.Path(filepath.Join(t.TempDir(), "nested", "symbols.yaml"))
	store := NewSymbolStore()

	dumps := []m.SymbolDump{
		{
			Scope:     "run",
			Variables: []m.Symbol{{Original: "title", Synthetic: "a"}, {Original: "items", Synthetic: "b"}},
			Functions: []m.Symbol{{Original: "render", Synthetic: "fn0"}},
		},
	}

	require.NoError(t, store.SaveSymbols(ctx, path, dumps))

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 1")
	assert.Contains(t, string(data), "original: title")

	loaded, err := store.LoadSymbols(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, dumps, loaded)
}

func TestYAMLSymbolStore_LoadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewSymbolStore()

	_, err := store.LoadSymbols(ctx, m.Path(filepath.Join(dir, "missing.yaml")))
	assert.ErrorContains(t, err, "read symbols")

	badVersion := filepath.Join(dir, "old.yaml")
	require.NoError(t, os.WriteFile(badVersion, []byte("version: 7\nscopes: []\n"), 0o600))

	_, err = store.LoadSymbols(ctx, m.Path(badVersion))
	assert.ErrorContains(t, err, "unsupported symbols file version 7")

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("version: [\n"), 0o600))

	_, err = store.LoadSymbols(ctx, m.Path(garbage))
	assert.ErrorContains(t, err, "unmarshal symbols")
}
