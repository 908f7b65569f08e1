package gesture

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Fixed tuning that is not exposed through Config.
const (
	velocityHorizonMs  = 120.0 // sampler window
	doubleTapRadius    = 12.0  // max distance between the two taps
	pinchClamp         = 0.5   // max log2 scale step per move
	pinchMinDelta      = 1e-4  // smaller pinch steps are dropped
	tapSuppressMs      = 400   // taps swallowed after a pinch ends
	mouseSuppressMs    = 500   // mouse events swallowed after a touch starts
	inertiaFrameMs     = 16.0  // InertiaDecay is expressed per this interval
	minSampleElapsedMs = 1.0
)

// Config holds the dispatcher's knobs. It is copied by New and never changed
// afterwards; to apply a new Config, dispose the dispatcher and build another.
//
// Start from DefaultConfig: the zero value disables inertia and hover
// throttling.
type Config struct {
	// DragDeadZone is how far (in surface units) a contact must move before
	// the press counts as a drag.
	DragDeadZone float64 `yaml:"drag_dead_zone" toml:"drag_dead_zone"`
	// Inertia enables coasting after a drag release.
	Inertia bool `yaml:"inertia" toml:"inertia"`
	// InertiaDecay is the velocity multiplier per 16 ms of coasting, 0..1.
	// Closer to 1 coasts longer; 0 coasts for a single frame.
	InertiaDecay float64 `yaml:"inertia_decay" toml:"inertia_decay"`
	// InertiaMinSpeed is the speed (units/ms) below which coasting stops and
	// below which a release does not coast at all.
	InertiaMinSpeed float64 `yaml:"inertia_min_speed" toml:"inertia_min_speed"`
	// PinchToWheelScale converts a log2 pinch scale step into wheel units.
	// Negative so that spreading the fingers zooms in.
	PinchToWheelScale float64 `yaml:"pinch_to_wheel_scale" toml:"pinch_to_wheel_scale"`
	// DoubleTapZoomDelta is the wheel value emitted for a touch double-tap.
	DoubleTapZoomDelta float64 `yaml:"double_tap_zoom_delta" toml:"double_tap_zoom_delta"`
	// DoubleTapMs is the longest gap between two taps of a double-tap.
	DoubleTapMs int `yaml:"double_tap_ms" toml:"double_tap_ms"`
	// HoverThrottleMs is the minimum gap between two hover emissions.
	HoverThrottleMs int `yaml:"hover_throttle_ms" toml:"hover_throttle_ms"`
	// Debug traces mode transitions to stderr.
	Debug bool `yaml:"debug" toml:"debug"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		DragDeadZone:       4,
		Inertia:            true,
		InertiaDecay:       0,
		InertiaMinSpeed:    0.02,
		PinchToWheelScale:  -320,
		DoubleTapZoomDelta: -160,
		DoubleTapMs:        300,
		HoverThrottleMs:    10,
	}
}

// Validate reports the first knob that cannot be used as given.
func (c Config) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"drag_dead_zone", c.DragDeadZone},
		{"inertia_decay", c.InertiaDecay},
		{"inertia_min_speed", c.InertiaMinSpeed},
		{"pinch_to_wheel_scale", c.PinchToWheelScale},
		{"double_tap_zoom_delta", c.DoubleTapZoomDelta},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be finite", f.name)
		}
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("drag_dead_zone must not be negative")
	}
	if c.InertiaDecay < 0 || c.InertiaDecay > 1 {
		return fmt.Errorf("inertia_decay must be within [0, 1], got %v", c.InertiaDecay)
	}
	if c.InertiaMinSpeed <= 0 {
		return fmt.Errorf("inertia_min_speed must be positive")
	}
	if c.DoubleTapMs < 0 {
		return fmt.Errorf("double_tap_ms must not be negative")
	}
	if c.HoverThrottleMs < 0 {
		return fmt.Errorf("hover_throttle_ms must not be negative")
	}
	return nil
}

// ParseConfig decodes a YAML or TOML document over DefaultConfig. format is
// "yaml", "yml" or "toml".
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("gesture: failed to parse config: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("gesture: failed to parse config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("gesture: unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("gesture: config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a config file, picking the decoder from its extension.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gesture: failed to read config file: %w", err)
	}
	return ParseConfig(data, filepath.Ext(path))
}
