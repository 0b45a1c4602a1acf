package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"moss_distance": 0.05,
		"normal_mode": "average",
		"brush_size": 3,
		"workers": 2,
		"poll_interval_ms": 5
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{BrushSize: 4, StrokeMode: "swept"})
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.05, cfg.MossDistance)
	assert.Equal(t, "average", cfg.NormalMode)
	assert.Equal(t, 4.0, cfg.BrushSize, "flags override the file")
	assert.Equal(t, 2.0, cfg.BrushAngle)
	assert.Equal(t, "swept", cfg.StrokeMode)
	assert.Equal(t, 2, cfg.Pool().Workers)
	assert.Equal(t, 64, cfg.Pool().BatchSize)
	assert.Equal(t, 5*time.Millisecond, cfg.PollInterval())
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.01, cfg.MossDistance)
	assert.Equal(t, "sum", cfg.NormalMode)
	assert.Equal(t, "immediate", cfg.StrokeMode)
	assert.Equal(t, 1<<16, cfg.ProbeThreshold)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, 256, cfg.RenderSize)
	assert.Equal(t, filepath.Join("out", "moss.webp"), cfg.WebPOutput)
}

func TestValidateRejectsUnknownModes(t *testing.T) {
	cfg := Config{NormalMode: "median"}
	cfg.Resolve(Flags{})
	assert.Error(t, cfg.Validate())

	cfg = Config{StrokeMode: "spray"}
	cfg.Resolve(Flags{})
	assert.Error(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "config: parse")
}
