package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Carlos")
	cfg.Store.Path = "data/fechamento.db"
	cfg.Log.Level = "debug"
	cfg.Import.DefaultID = 3

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Profile.Name, got.Profile.Name)
	assert.Equal(t, cfg.Profile.Currency, got.Profile.Currency)
	assert.Equal(t, cfg.Store.Path, got.Store.Path)
	assert.Equal(t, cfg.Log.Level, got.Log.Level)
	assert.Equal(t, cfg.Log.Format, got.Log.Format)
	assert.Equal(t, cfg.Import.Dir, got.Import.Dir)
	assert.Equal(t, cfg.Import.DefaultID, got.Import.DefaultID)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Carlos")

	assert.Equal(t, "Carlos", cfg.Profile.Name)
	assert.Equal(t, "BRL", cfg.Profile.Currency)
	assert.Equal(t, "fechamento.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "import", cfg.Import.Dir)
	assert.Zero(t, cfg.Import.DefaultID)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Carlos")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Carlos")
	assert.Contains(t, contents, "currency: BRL")
	assert.Contains(t, contents, "path: fechamento.db")
	assert.Contains(t, contents, "level: info")
}
