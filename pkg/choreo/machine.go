// Package choreo drives the idle rotation / zoom-in / hold / zoom-out cycle
// of a showcased model and the lighting that goes with it.
package choreo

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/showcase/pkg/geometry"
)

// Lighting is the supplemental light state for a frame
type Lighting struct {
	Spot         float64
	Ambient      float64
	SpotPosition geometry.Vector3
	SpotTarget   geometry.Vector3
}

// Frame is what the machine wants applied for one tick
type Frame struct {
	Mode            Mode
	Pose            Pose
	Lighting        Lighting
	ControlsEnabled bool
	AutoRotate      bool
	// Transitioned is set when the mode changed during this tick.
	Transitioned bool
}

// Machine owns the choreography state. It is not safe for concurrent use;
// the render loop is its only caller.
type Machine struct {
	cfg    Config
	logger *log.Logger

	mode    Mode
	entered time.Duration

	saved    Pose
	from     Pose
	hasSaved bool
	target   geometry.Vector3

	model    Bounder
	front    mgl64.Quat
	hasFront bool

	autoRotate      bool
	controlsEnabled bool
	interacting     bool
	lighting        Lighting
}

// NewMachine creates a machine in ROTATING with auto-rotation and user controls on.
// A nil logger discards output.
func NewMachine(cfg Config, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Machine{
		cfg:             cfg,
		logger:          logger,
		mode:            Rotating,
		autoRotate:      true,
		controlsEnabled: true,
	}
	m.lighting = m.restLighting()
	return m
}

// Attach hands the loaded model to the machine. Only the first front
// orientation is kept and only the first attach starts the mode timer.
// Replacing the model mid-cycle cancels the cycle; the saved pre-zoom pose
// is then returned for immediate application.
func (m *Machine) Attach(model Bounder, front mgl64.Quat, now time.Duration) (Pose, bool) {
	first := m.model == nil
	m.model = model
	if !m.hasFront {
		m.front = normalize(front)
		m.hasFront = true
	}

	if first {
		m.entered = now
		return Pose{}, false
	}
	if m.mode == Rotating || !m.hasSaved {
		return Pose{}, false
	}

	m.logger.Debug("cycle cancelled by model change", "mode", m.mode, "elapsed", now-m.entered)
	m.controlsEnabled = true
	m.lighting = m.restLighting()
	m.enter(Rotating, now)
	return m.saved, true
}

// Loaded reports whether a model has been attached
func (m *Machine) Loaded() bool { return m.model != nil }

// Mode returns the active mode
func (m *Machine) Mode() Mode { return m.mode }

// Entered returns the timestamp at which the active mode was entered
func (m *Machine) Entered() time.Duration { return m.entered }

// Saved returns the pre-zoom snapshot, if one was taken
func (m *Machine) Saved() (Pose, bool) { return m.saved, m.hasSaved }

// From returns the start pose of the running interpolation
func (m *Machine) From() Pose { return m.from }

// ZoomTarget returns the target computed when the current cycle began
func (m *Machine) ZoomTarget() geometry.Vector3 { return m.target }

// Front returns the default front orientation, if captured
func (m *Machine) Front() (mgl64.Quat, bool) { return m.front, m.hasFront }

// AutoRotate reports whether idle rotation is enabled
func (m *Machine) AutoRotate() bool { return m.autoRotate }

// ControlsEnabled reports whether the user may orbit the camera
func (m *Machine) ControlsEnabled() bool { return m.controlsEnabled }

// Interacting reports whether the user is currently dragging
func (m *Machine) Interacting() bool { return m.interacting }

// Config returns the active configuration
func (m *Machine) Config() Config { return m.cfg }

// SetConfig swaps the configuration. Timings apply from the next tick, the
// zoom target from the next ZOOMING_IN entry.
func (m *Machine) SetConfig(cfg Config) {
	m.cfg = cfg
	if m.mode == Rotating {
		m.lighting = m.restLighting()
	}
}

// Advance evaluates one tick. live is the pose currently applied to the
// scene; the returned frame carries the pose to apply next.
func (m *Machine) Advance(now time.Duration, live Pose) Frame {
	if m.model == nil {
		return m.frame(live, false)
	}

	elapsed := now - m.entered
	pose := live
	start := m.mode

	switch m.mode {
	case Rotating:
		if !m.autoRotate || m.interacting {
			break
		}
		if elapsed >= m.cfg.RotateInterval {
			m.enterZoomIn(now, live)
			break
		}
		pose.Orientation = m.rotate(live.Orientation)

	case ZoomingIn:
		t := Progress(elapsed, m.cfg.ZoomIn)
		e := Ease(t)
		pose = Blend(m.from, m.zoomPose(), e)
		m.lighting = m.boostLighting(e)
		if t >= 1 {
			m.enter(Holding, now)
			pose.OrbitTarget = m.target
		}

	case Holding:
		pose.OrbitTarget = m.target
		m.lighting = m.boostLighting(1)
		if elapsed >= m.cfg.Hold {
			m.from = Capture(pose.Orientation, pose.CameraPosition, pose.FOV, pose.OrbitTarget)
			m.enter(ZoomingOut, now)
		}

	case ZoomingOut:
		t := Progress(elapsed, m.cfg.ZoomOut)
		pose = Blend(m.from, m.saved, Ease(t))
		m.lighting = m.boostLighting(1 - t)
		if t >= 1 {
			m.controlsEnabled = true
			m.autoRotate = true
			m.lighting = m.restLighting()
			m.enter(Rotating, now)
		}

	default:
		panic(fmt.Sprintf("choreo: unexpected mode %v", m.mode))
	}

	return m.frame(pose, m.mode != start)
}

// Interrupt cancels a running zoom cycle in favour of the user. Idle
// rotation stops until Resume. When the machine was mid-cycle the saved
// pre-zoom pose is returned for immediate application.
func (m *Machine) Interrupt(now time.Duration) (Pose, bool) {
	m.interacting = true
	m.autoRotate = false

	if m.mode == Rotating || !m.hasSaved {
		return Pose{}, false
	}

	m.logger.Debug("cycle interrupted", "mode", m.mode, "elapsed", now-m.entered)
	m.controlsEnabled = true
	m.lighting = m.restLighting()
	m.enter(Rotating, now)
	return m.saved, true
}

// Resume re-enables idle rotation after user interaction. The rotate
// interval restarts at now.
func (m *Machine) Resume(now time.Duration) {
	m.interacting = false
	m.autoRotate = true
	m.enter(Rotating, now)
}

func (m *Machine) enterZoomIn(now time.Duration, live Pose) {
	m.saved = Capture(live.Orientation, live.CameraPosition, live.FOV, live.OrbitTarget)
	m.from = m.saved
	m.hasSaved = true

	var front *mgl64.Quat
	if m.hasFront {
		front = &m.front
	}
	m.target = NewLocator(m.cfg.Zoom).Locate(m.model, front, live.Orientation)
	m.controlsEnabled = false
	m.enter(ZoomingIn, now)
}

func (m *Machine) enter(mode Mode, now time.Duration) {
	if mode != m.mode {
		m.logger.Debug("mode change", "from", m.mode, "to", mode, "at", now)
	}
	m.mode = mode
	m.entered = now
}

// zoomPose is where ZOOMING_IN ends
func (m *Machine) zoomPose() Pose {
	orientation := m.from.Orientation
	if m.hasFront {
		orientation = m.front
	}
	return Pose{
		Orientation:    orientation,
		CameraPosition: m.target.Add(m.cfg.Zoom.CameraOffset),
		FOV:            m.cfg.ZoomFOV,
		OrbitTarget:    m.target,
	}
}

func (m *Machine) rotate(q mgl64.Quat) mgl64.Quat {
	s := m.cfg.RotationSpeed
	delta := mgl64.AnglesToQuat(s.X, s.Y, s.Z, mgl64.XYZ)
	return normalize(delta.Mul(q))
}

func (m *Machine) restLighting() Lighting {
	return Lighting{
		Ambient:      m.cfg.Lighting.Ambient,
		SpotPosition: m.target.Add(m.cfg.Lighting.SpotOffset),
		SpotTarget:   m.target,
	}
}

// boostLighting scales the supplemental lights by level in [0,1]
func (m *Machine) boostLighting(level float64) Lighting {
	level = clamp01(level)
	l := m.restLighting()
	l.Spot = m.cfg.Lighting.Spot * level
	l.Ambient += m.cfg.Lighting.AmbientBoost * level
	return l
}

func (m *Machine) frame(pose Pose, transitioned bool) Frame {
	return Frame{
		Mode:            m.mode,
		Pose:            pose,
		Lighting:        m.lighting,
		ControlsEnabled: m.controlsEnabled,
		AutoRotate:      m.autoRotate,
		Transitioned:    transitioned,
	}
}
