package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/ballz/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSimDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	want := sim.DefaultConfig(400, 800)
	got := cfg.Sim()
	assert.Equal(t, want.ForwardDuration, got.ForwardDuration)
	assert.Equal(t, want.Gain, got.Gain)
	assert.Equal(t, want.ScoreMode, got.ScoreMode)
	assert.InDelta(t, want.Spring.AngularFrequency, got.Spring.AngularFrequency, 1e-12)
	assert.InDelta(t, want.Spring.DampingRatio, got.Spring.DampingRatio, 1e-12)
	assert.Equal(t, sim.Vector2{X: 175, Y: 650}, got.CanonicalStart())
}

func TestPresets(t *testing.T) {
	relaxed, err := Preset(PresetRelaxed)
	require.NoError(t, err)
	assert.Equal(t, 1400*time.Millisecond, relaxed.Sim().Period())

	base, err := Preset("")
	require.NoError(t, err)
	assert.Equal(t, 1200*time.Millisecond, base.Sim().Period())

	_, err = Preset("frantic")
	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestParseOverlaysPreset(t *testing.T) {
	cfg, err := Parse([]byte(`
preset: relaxed
screen:
  width: 360
tilt:
  gate: false
score:
  mode: settle
  delay: 250ms
`))
	require.NoError(t, err)

	assert.Equal(t, 700*time.Millisecond, cfg.Platform.Forward, "preset value kept")
	assert.Equal(t, 360.0, cfg.Screen.Width)
	assert.Equal(t, 800.0, cfg.Screen.Height, "unset fields keep the default")
	assert.False(t, cfg.Tilt.Gate)

	s := cfg.Sim()
	assert.Equal(t, sim.ScoreOnSettle, s.ScoreMode)
	assert.Equal(t, 250*time.Millisecond, s.ScoreDelay)
}

func TestParseRejectsInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"bad yaml":    "screen: [",
		"score mode":  "score: {mode: sometimes}",
		"screen":      "screen: {width: -1}",
		"spring":      "spring: {tension: 0}",
		"hub address": "hub: {enabled: true, addr: ''}",
		"preset":      "preset: frantic",
	} {
		_, err := Parse([]byte(doc))
		assert.ErrorIs(t, err, sim.ErrInvalidConfig, name)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "ballz.yaml")
	out, err := Default().Marshal()
	require.NoError(t, err)
	out = bytes.Replace(out, []byte("strict: false"), []byte("strict: true"), 1)
	require.NoError(t, os.WriteFile(path, out, 0o644))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Sim().Strict)
}
