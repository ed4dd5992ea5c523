// Package config loads ballz settings from defaults, presets and an optional
// YAML file. Command flags are layered on top by each command.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plus3/ballz/sim"
)

// Preset names.
const (
	PresetBase    = "base"
	PresetRelaxed = "relaxed"
)

// Screen is the logical playfield size in pixels.
type Screen struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Tilt controls how gyroscope rates move the ball.
type Tilt struct {
	// Gain is pixels per frame per unit of tilt rate.
	Gain float64 `yaml:"gain" json:"gain"`
	// Gate requires |tilt.y| above Threshold for a hit to count.
	Gate      bool    `yaml:"gate" json:"gate"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// Platform controls the oscillating platform.
type Platform struct {
	Forward time.Duration `yaml:"forward" json:"forward"`
	Back    time.Duration `yaml:"back" json:"back"`
}

// Spring is the flick animation in tension/friction form.
type Spring struct {
	Tension  float64 `yaml:"tension" json:"tension"`
	Friction float64 `yaml:"friction" json:"friction"`
}

// Score selects what earns a point.
type Score struct {
	// Mode is "impact" or "settle".
	Mode  string        `yaml:"mode" json:"mode"`
	Delay time.Duration `yaml:"delay" json:"delay"`
}

// Store is the high score file.
type Store struct {
	Path string `yaml:"path" json:"path"`
}

// Hub is the websocket tilt feed server.
type Hub struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// Config holds every ballz setting.
type Config struct {
	// Preset is applied before the rest of the file.
	Preset   string   `yaml:"preset" json:"preset"`
	LogLevel string   `yaml:"log_level" json:"log_level"`
	Screen   Screen   `yaml:"screen" json:"screen"`
	Tilt     Tilt     `yaml:"tilt" json:"tilt"`
	Platform Platform `yaml:"platform" json:"platform"`
	Spring   Spring   `yaml:"spring" json:"spring"`
	Score    Score    `yaml:"score" json:"score"`
	// Strict panics on invariant violations instead of clamping.
	Strict bool  `yaml:"strict" json:"strict"`
	Store  Store `yaml:"store" json:"store"`
	Hub    Hub   `yaml:"hub" json:"hub"`
}

// Default returns the base preset.
func Default() Config {
	return Config{
		Preset:   PresetBase,
		LogLevel: "info",
		Screen:   Screen{Width: 400, Height: 800},
		Tilt:     Tilt{Gain: 5, Gate: true, Threshold: 1},
		Platform: Platform{Forward: 600 * time.Millisecond, Back: 600 * time.Millisecond},
		Spring:   Spring{Tension: 40, Friction: 7},
		Score:    Score{Mode: string(sim.ScoreOnImpact), Delay: 100 * time.Millisecond},
		Store:    Store{Path: "ballz-scores.json"},
		Hub:      Hub{Addr: ":8090"},
	}
}

// Preset returns the named preset. The relaxed variant slows the platform
// sweep to 700ms each way.
func Preset(name string) (Config, error) {
	cfg := Default()
	switch name {
	case "", PresetBase:
	case PresetRelaxed:
		cfg.Preset = PresetRelaxed
		cfg.Platform = Platform{Forward: 700 * time.Millisecond, Back: 700 * time.Millisecond}
	default:
		return Config{}, fmt.Errorf("%w: unknown preset %q", sim.ErrInvalidConfig, name)
	}
	return cfg, nil
}

// Load reads a YAML file over its preset. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the preset it names.
func Parse(data []byte) (Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("%w: %w", sim.ErrInvalidConfig, err)
	}

	cfg, err := Preset(head.Preset)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", sim.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the settings that do not map onto the simulation and then
// the simulation config itself.
func (c Config) Validate() error {
	if c.Spring.Tension <= 0 || c.Spring.Friction <= 0 {
		return fmt.Errorf("%w: spring tension and friction must be positive", sim.ErrInvalidConfig)
	}
	if c.Hub.Enabled && c.Hub.Addr == "" {
		return fmt.Errorf("%w: hub enabled without an address", sim.ErrInvalidConfig)
	}
	if err := c.Sim().Validate(); err != nil {
		return errors.Join(fmt.Errorf("config %q", c.Preset), err)
	}
	return nil
}

// Sim converts to a simulation config.
func (c Config) Sim() sim.Config {
	cfg := sim.DefaultConfig(c.Screen.Width, c.Screen.Height)
	cfg.Gain = c.Tilt.Gain
	cfg.TiltGate = c.Tilt.Gate
	cfg.TiltThreshold = c.Tilt.Threshold
	cfg.ForwardDuration = c.Platform.Forward
	cfg.BackDuration = c.Platform.Back
	cfg.Spring = c.Spring.Params()
	cfg.ScoreMode = sim.ScoreMode(c.Score.Mode)
	cfg.ScoreDelay = c.Score.Delay
	cfg.Strict = c.Strict
	return cfg
}

// Params converts a unit-mass tension/friction spring to frequency and
// damping ratio.
func (s Spring) Params() sim.SpringParams {
	params := sim.DefaultSpring()
	if s.Tension > 0 {
		params.AngularFrequency = math.Sqrt(s.Tension)
		params.DampingRatio = s.Friction / (2 * params.AngularFrequency)
	}
	return params
}
