package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Format.Locale = "en-US"
	cfg.Cache.MaxEntries = 4

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Layout, got.Layout)
	assert.Equal(t, "en-US", got.Format.Locale)
	assert.Equal(t, 2, got.Format.AmountPlaces)
	assert.Equal(t, 4, got.Cache.MaxEntries)
	assert.Equal(t, cfg.Logging, got.Logging)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 21, cfg.Layout.HeaderRows)
	assert.Equal(t, 18, cfg.Layout.FooterRows)
	assert.Equal(t, 7, cfg.Layout.Columns)
	assert.Equal(t, []int{0, 2}, cfg.Layout.DroppedColumns)
	assert.Equal(t, 1, cfg.Layout.SeparatorRow)
	assert.Equal(t, "02/01/06", cfg.Layout.DateLayout)
	assert.Equal(t, 40, cfg.Layout.MinRows())
	assert.Equal(t, 1, cfg.Cache.MaxEntries)
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NoError(t, cfg.Layout.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("format:\n  locale: en-GB\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en-GB", cfg.Format.Locale)
	assert.Equal(t, 21, cfg.Layout.HeaderRows)
	assert.Equal(t, "02 January 2006", cfg.Format.DateLayout)
}

func TestLoad_InvalidLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  columns: 9\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must leave 5")
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LayoutConfig)
		ok     bool
	}{
		{"default", func(*LayoutConfig) {}, true},
		{"negative header", func(l *LayoutConfig) { l.HeaderRows = -1 }, false},
		{"dropped out of range", func(l *LayoutConfig) { l.DroppedColumns = []int{0, 7} }, false},
		{"dropped twice", func(l *LayoutConfig) { l.DroppedColumns = []int{2, 2} }, false},
		{"no date layout", func(l *LayoutConfig) { l.DateLayout = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Default().Layout
			tt.mutate(&l)
			err := l.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "header_rows: 21")
	assert.Contains(t, contents, "footer_rows: 18")
	assert.Contains(t, contents, "locale: en-IN")
	assert.Contains(t, contents, "max_entries: 1")
}
