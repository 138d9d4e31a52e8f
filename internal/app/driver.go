// Package app wires the choreography to a live scene and the hosts that show it.
package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/philipparndt/showcase/internal/config"
	"github.com/philipparndt/showcase/pkg/choreo"
	"github.com/philipparndt/showcase/pkg/orbit"
	"github.com/philipparndt/showcase/pkg/render"
	"github.com/philipparndt/showcase/pkg/scene"
)

// Surface draws one frame of the scene
type Surface interface {
	Draw(s render.Scene)
}

// Driver runs the per-frame loop. All state is owned by the goroutine
// calling Tick; loads and config reloads arrive through channels.
type Driver struct {
	cfg     config.Config
	logger  *log.Logger
	surface Surface

	machine *choreo.Machine
	gate    *choreo.Gate
	orbit   *orbit.Control

	camera render.Camera
	object *scene.Object
	lights render.Lights

	loader  *Loader
	configs <-chan config.Config
	reloads <-chan string

	now    time.Duration
	frames int
	last   choreo.Frame
}

// NewDriver creates a driver drawing to surface. A nil logger discards output.
func NewDriver(cfg config.Config, surface Surface, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	machine := choreo.NewMachine(cfg.Choreo, logger.WithPrefix("choreo"))
	d := &Driver{
		cfg:     cfg,
		logger:  logger,
		surface: surface,
		machine: machine,
		gate:    choreo.NewGate(machine),
		camera:  defaultCamera(cfg),
		lights:  keyLights(cfg),
	}

	d.orbit = orbit.New(d.camera.Target, cfg.Render.FPS)
	d.orbit.OnStart(d.beginInteraction)
	d.orbit.OnEnd(d.endInteraction)
	return d
}

// SetSurface replaces the surface frames are drawn to
func (d *Driver) SetSurface(surface Surface) {
	d.surface = surface
}

// Load starts loading a model in the background
func (d *Driver) Load(path string) {
	d.logger.Info("loading model", "path", path)
	d.loader = LoadAsync(path)
}

// WatchConfig makes the driver apply configs received on ch
func (d *Driver) WatchConfig(ch <-chan config.Config) {
	d.configs = ch
}

// WatchModel makes the driver reload the model whenever a path arrives on ch
func (d *Driver) WatchModel(ch <-chan string) {
	d.reloads = ch
}

// Orbit returns the user camera control hosts feed input into
func (d *Driver) Orbit() *orbit.Control { return d.orbit }

// Machine returns the choreography state machine
func (d *Driver) Machine() *choreo.Machine { return d.machine }

// Gate returns the interaction gate
func (d *Driver) Gate() *choreo.Gate { return d.gate }

// Loaded reports whether a model is showing
func (d *Driver) Loaded() bool { return d.object != nil }

// Config returns the active configuration
func (d *Driver) Config() config.Config { return d.cfg }

// LastFrame returns the frame applied by the latest loaded tick
func (d *Driver) LastFrame() choreo.Frame { return d.last }

// Frames returns the number of ticks drawn so far
func (d *Driver) Frames() int { return d.frames }

// Scene returns the scene as it will be drawn next
func (d *Driver) Scene() render.Scene {
	return render.Scene{Object: d.object, Camera: d.camera, Lights: d.lights}
}

// Show attaches an already loaded mesh object. The first object's
// orientation becomes the default front orientation. A replacement arriving
// mid-cycle cancels the cycle and takes over the saved pre-zoom orientation.
func (d *Driver) Show(obj *scene.Object, now time.Duration) {
	if saved, cancelled := d.machine.Attach(obj, obj.Orientation, now); cancelled {
		obj.Orientation = saved.Orientation
		d.orbit.SetEnabled(d.machine.ControlsEnabled())
		d.lights.Spot = 0
		d.lights.Ambient = d.cfg.Choreo.Lighting.Ambient
	}

	d.object = obj
	d.camera = frameCamera(d.cfg, obj)
	d.orbit.Target = d.camera.Target
	d.logger.Info("model ready",
		"name", obj.Mesh.Name,
		"triangles", obj.Mesh.TriangleCount(),
	)
}

// Tick advances one frame at time now, measured from the start of the loop
func (d *Driver) Tick(now time.Duration) {
	d.now = now
	d.frames++

	d.camera.Position = d.orbit.Update(d.camera.Position)
	d.camera.Target = d.orbit.Target

	d.drain(now)

	if d.object == nil {
		d.surface.Draw(d.Scene())
		return
	}

	if d.gate.Poll(now) {
		d.logger.Debug("idle rotation resumed", "at", now)
	}

	live := choreo.Capture(d.object.Orientation, d.camera.Position, d.camera.FOV, d.orbit.Target)
	frame := d.machine.Advance(now, live)
	d.apply(frame)
	d.last = frame

	d.surface.Draw(d.Scene())
}

// drain handles everything the background goroutines delivered since the last tick
func (d *Driver) drain(now time.Duration) {
	if d.loader != nil {
	progress:
		for {
			select {
			case fraction, ok := <-d.loader.Progress:
				if !ok {
					break progress
				}
				d.logger.Debug("loading", "percent", int(fraction*100))
			default:
				break progress
			}
		}

		select {
		case res := <-d.loader.Results:
			d.loader = nil
			if res.Err != nil {
				d.logger.Error("model load failed", "err", res.Err)
				break
			}
			d.logger.Info("model loaded", "path", res.Path, "took", res.Took.Round(time.Millisecond))
			d.Show(Prepare(res.Mesh, d.cfg.Scene.FitSize), now)
		default:
		}
	}

	if d.reloads != nil && d.loader == nil {
		select {
		case path := <-d.reloads:
			d.Load(path)
		default:
		}
	}

	if d.configs != nil {
		select {
		case cfg, ok := <-d.configs:
			if !ok {
				d.configs = nil
				break
			}
			d.SetConfig(cfg)
		default:
		}
	}
}

// SetConfig swaps the configuration in place
func (d *Driver) SetConfig(cfg config.Config) {
	d.cfg = cfg
	d.machine.SetConfig(cfg.Choreo)
	d.lights.KeyDirection = cfg.Scene.KeyLight
	d.lights.KeyIntensity = cfg.Scene.KeyIntensity
	d.logger.Info("config applied", "preset", cfg.Preset)
}

func (d *Driver) apply(frame choreo.Frame) {
	pose := frame.Pose
	d.object.Orientation = pose.Orientation
	d.camera.Position = pose.CameraPosition
	d.camera.FOV = pose.FOV
	d.orbit.Target = pose.OrbitTarget
	d.camera.Target = pose.OrbitTarget

	if d.orbit.Enabled() != frame.ControlsEnabled {
		d.orbit.SetEnabled(frame.ControlsEnabled)
	}

	l := frame.Lighting
	d.lights.Ambient = l.Ambient
	d.lights.Spot = l.Spot
	d.lights.SpotPosition = l.SpotPosition
	d.lights.SpotTarget = l.SpotTarget
}

func (d *Driver) beginInteraction() {
	pose, restored := d.gate.Begin(d.now)
	if !restored || d.object == nil {
		return
	}
	d.object.Orientation = pose.Orientation
	d.camera.Position = pose.CameraPosition
	d.camera.FOV = pose.FOV
	d.orbit.Target = pose.OrbitTarget
	d.camera.Target = pose.OrbitTarget
	d.orbit.SetEnabled(true)
	d.lights.Spot = 0
	d.lights.Ambient = d.cfg.Choreo.Lighting.Ambient
}

func (d *Driver) endInteraction() {
	d.gate.End(d.now)
}
