package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/unitsim/internal/config"
	"github.com/udisondev/unitsim/internal/data"
	"github.com/udisondev/unitsim/internal/world"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestLoadBuffCatalog_Builtin(t *testing.T) {
	catalog, err := loadBuffCatalog(context.Background(), config.DefaultSimulation())
	require.NoError(t, err)
	assert.Equal(t, data.DefaultBuffCatalog().IDs(), catalog.IDs())
}

func TestLoadBuffCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
buffs:
  - id: 100
    class: SampleBuff
    duration: 2s
    tick_interval: 500ms
`), 0o600))

	cfg := config.DefaultSimulation()
	cfg.BuffCatalog = path

	catalog, err := loadBuffCatalog(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []int32{100}, catalog.IDs())
}

func TestLoadBuffCatalog_MissingFile(t *testing.T) {
	cfg := config.DefaultSimulation()
	cfg.BuffCatalog = filepath.Join(t.TempDir(), "absent.yaml")

	_, err := loadBuffCatalog(context.Background(), cfg)
	assert.Error(t, err)
}

func TestDefaultSceneBootsAndReports(t *testing.T) {
	cfg := config.DefaultSimulation()
	scenes, err := cfg.StaticScenes()
	require.NoError(t, err)

	sim := world.NewSimulation(world.Deps{})
	require.NoError(t, sim.LoadScene(context.Background(), cfg.InitialScene, scenes))

	counts := factionCounts(sim)
	assert.Equal(t, 1, counts["FRIEND"])
	assert.Equal(t, 2, counts["HOSTILE"])
	assert.Equal(t, 1, counts["OBJECT"])
	assert.Equal(t, 0, counts["sim_ms"])
}
