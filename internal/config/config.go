// Package config loads the showcase settings from YAML layered over a named preset.
package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/philipparndt/showcase/pkg/choreo"
	"github.com/philipparndt/showcase/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// Config holds everything the showcase needs besides the model itself
type Config struct {
	Preset string        `yaml:"preset"`
	Choreo choreo.Config `yaml:"choreography"`
	Scene  SceneConfig   `yaml:"scene"`
	Render RenderConfig  `yaml:"render"`
}

// SceneConfig places the model, camera and key light
type SceneConfig struct {
	// FitSize scales the model so its largest dimension matches. Zero keeps model units.
	FitSize float64 `yaml:"fit_size"`
	// CameraDirection points from the model center towards the initial camera.
	CameraDirection geometry.Vector3 `yaml:"camera_direction"`
	// CameraDistance is the initial distance from the model center. Zero frames the model.
	CameraDistance float64          `yaml:"camera_distance"`
	KeyLight       geometry.Vector3 `yaml:"key_light"`
	KeyIntensity   float64          `yaml:"key_intensity"`
}

// RenderConfig controls the output surfaces
type RenderConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	FPS         int `yaml:"fps"`
	Supersample int `yaml:"supersample"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Preset string
	Width  int
	Height int
	FPS    int
}

var presets = map[string]func() Config{
	"default":   defaultPreset,
	"closeup":   closeupPreset,
	"turntable": turntablePreset,
}

// Presets lists the available preset names
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the named preset
func Preset(name string) (Config, error) {
	if name == "" {
		name = "default"
	}
	build, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("config: unknown preset %q", name)
	}
	return build(), nil
}

func defaultPreset() Config {
	return Config{
		Preset: "default",
		Choreo: choreo.DefaultConfig(),
		Scene: SceneConfig{
			FitSize:         1,
			CameraDirection: geometry.NewVector3(0, 0.3, -1),
			KeyLight:        geometry.NewVector3(1, 1, 1),
			KeyIntensity:    2,
		},
		Render: RenderConfig{
			Width:       960,
			Height:      540,
			FPS:         60,
			Supersample: 2,
		},
	}
}

// closeupPreset zooms tighter and lingers
func closeupPreset() Config {
	cfg := defaultPreset()
	cfg.Preset = "closeup"
	cfg.Choreo.ZoomFOV = 12
	cfg.Choreo.Hold = 3 * time.Second
	cfg.Choreo.Zoom.CameraOffset = geometry.NewVector3(0, 0.15, -0.5)
	cfg.Choreo.Lighting.Spot = 4
	return cfg
}

// turntablePreset spins slowly with long gaps between zooms
func turntablePreset() Config {
	cfg := defaultPreset()
	cfg.Preset = "turntable"
	cfg.Choreo.RotateInterval = 20 * time.Second
	cfg.Choreo.RotationSpeed = geometry.NewVector3(0, 0.005, 0)
	cfg.Choreo.Zoom.Axis = choreo.AxisY
	cfg.Scene.CameraDirection = geometry.NewVector3(0, 0.5, -1)
	return cfg
}

// Load reads a YAML config file on top of a preset. The preset comes from
// flags when set, else from the file, else "default". An empty path yields
// the preset alone.
func Load(path string, flags Flags) (Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return Parse(data, flags)
}

// Parse decodes YAML content on top of a preset
func Parse(data []byte, flags Flags) (Config, error) {
	name := flags.Preset
	if name == "" && len(data) > 0 {
		var head struct {
			Preset string `yaml:"preset"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil {
			return Config{}, fmt.Errorf("config: parse: %w", err)
		}
		name = head.Preset
	}

	cfg, err := Preset(name)
	if err != nil {
		return Config{}, err
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse: %w", err)
		}
		// The file may not switch presets once the flag picked one.
		cfg.Preset = name
		if cfg.Preset == "" {
			cfg.Preset = "default"
		}
	}

	cfg.apply(flags)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(flags Flags) {
	if flags.Width > 0 {
		c.Render.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Render.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.Render.FPS = flags.FPS
	}
}

// Validate checks the config for values the showcase cannot run with
func (c Config) Validate() error {
	if err := c.Choreo.Validate(); err != nil {
		return fmt.Errorf("config: choreography: %w", err)
	}
	if c.Scene.FitSize < 0 {
		return fmt.Errorf("config: scene: fit_size must not be negative, got %v", c.Scene.FitSize)
	}
	if c.Scene.CameraDistance < 0 {
		return fmt.Errorf("config: scene: camera_distance must not be negative, got %v", c.Scene.CameraDistance)
	}
	if c.Scene.CameraDirection.Length() == 0 {
		return fmt.Errorf("config: scene: camera_direction must not be zero")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("config: render: invalid size %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("config: render: fps must be positive, got %d", c.Render.FPS)
	}
	if c.Render.Supersample < 1 {
		return fmt.Errorf("config: render: supersample must be at least 1, got %d", c.Render.Supersample)
	}
	return nil
}

// FrameInterval is the duration of one render tick
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Render.FPS)
}
