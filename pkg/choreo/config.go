package choreo

import (
	"fmt"
	"time"

	"github.com/philipparndt/showcase/pkg/geometry"
)

// Axis selects which bounding box axis the zoom target sits on
type Axis string

const (
	AxisX    Axis = "x"
	AxisY    Axis = "y"
	AxisZ    Axis = "z"
	AxisAuto Axis = "auto" // longest box dimension
)

// Side selects the min or max extent on the zoom axis
type Side string

const (
	SideMin Side = "min"
	SideMax Side = "max"
)

// ZoomConfig describes where the zoom-in ends
type ZoomConfig struct {
	Axis  Axis             `yaml:"axis"`
	Side  Side             `yaml:"side"`
	Tweak geometry.Vector3 `yaml:"tweak"`
	// CameraOffset is added to the zoom target to place the camera.
	CameraOffset geometry.Vector3 `yaml:"camera_offset"`
	// FallbackTweak applies Tweak when the front orientation is unknown.
	FallbackTweak bool `yaml:"fallback_tweak"`
}

// LightingConfig holds the supplemental lighting levels
type LightingConfig struct {
	Ambient      float64          `yaml:"ambient"`
	AmbientBoost float64          `yaml:"ambient_boost"`
	Spot         float64          `yaml:"spot"`
	SpotOffset   geometry.Vector3 `yaml:"spot_offset"`
}

// Config holds the choreography timings and targets
type Config struct {
	RotateInterval time.Duration `yaml:"rotate_interval"`
	ZoomIn         time.Duration `yaml:"zoom_in"`
	Hold           time.Duration `yaml:"hold"`
	ZoomOut        time.Duration `yaml:"zoom_out"`
	ResumeDelay    time.Duration `yaml:"resume_delay"`

	NormalFOV float64 `yaml:"normal_fov"`
	ZoomFOV   float64 `yaml:"zoom_fov"`

	// RotationSpeed is the idle rotation per tick around each world axis, in radians.
	RotationSpeed geometry.Vector3 `yaml:"rotation_speed"`

	Zoom     ZoomConfig     `yaml:"zoom"`
	Lighting LightingConfig `yaml:"lighting"`
}

// DefaultConfig returns the stock five second idle, one second zoom cycle
func DefaultConfig() Config {
	return Config{
		RotateInterval: 5000 * time.Millisecond,
		ZoomIn:         1000 * time.Millisecond,
		Hold:           2000 * time.Millisecond,
		ZoomOut:        1000 * time.Millisecond,
		ResumeDelay:    2000 * time.Millisecond,
		NormalFOV:      30,
		ZoomFOV:        18,
		RotationSpeed:  geometry.NewVector3(0, 0.01, 0),
		Zoom: ZoomConfig{
			Axis:          AxisAuto,
			Side:          SideMax,
			CameraOffset:  geometry.NewVector3(0, 0.3, -0.8),
			FallbackTweak: true,
		},
		Lighting: LightingConfig{
			Ambient:      0.4,
			AmbientBoost: 0.6,
			Spot:         3,
			SpotOffset:   geometry.NewVector3(0, 0.5, -0.5),
		},
	}
}

// Validate rejects configurations the machine cannot run
func (c Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"rotate_interval", c.RotateInterval},
		{"zoom_in", c.ZoomIn},
		{"hold", c.Hold},
		{"zoom_out", c.ZoomOut},
		{"resume_delay", c.ResumeDelay},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", d.name, d.d)
		}
	}

	if c.NormalFOV <= 0 || c.NormalFOV >= 180 {
		return fmt.Errorf("normal_fov must be in (0, 180), got %v", c.NormalFOV)
	}
	if c.ZoomFOV <= 0 || c.ZoomFOV >= 180 {
		return fmt.Errorf("zoom_fov must be in (0, 180), got %v", c.ZoomFOV)
	}

	switch c.Zoom.Axis {
	case AxisX, AxisY, AxisZ, AxisAuto:
	default:
		return fmt.Errorf("unknown zoom axis %q", c.Zoom.Axis)
	}
	switch c.Zoom.Side {
	case SideMin, SideMax:
	default:
		return fmt.Errorf("unknown zoom side %q", c.Zoom.Side)
	}

	return nil
}

// CycleLength is the time from entering ZOOMING_IN until ROTATING resumes
func (c Config) CycleLength() time.Duration {
	return c.ZoomIn + c.Hold + c.ZoomOut
}
