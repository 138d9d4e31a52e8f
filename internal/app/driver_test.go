package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/showcase/internal/config"
	"github.com/philipparndt/showcase/pkg/choreo"
	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/philipparndt/showcase/pkg/mesh"
	"github.com/philipparndt/showcase/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 10 * time.Millisecond

type recorder struct {
	scenes []render.Scene
}

func (r *recorder) Draw(s render.Scene) {
	r.scenes = append(r.scenes, s)
}

func boxMesh(w, h, d float64) *mesh.Mesh {
	m := mesh.New("box")
	corners := []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(w, 0, 0),
		geometry.NewVector3(w, h, 0),
		geometry.NewVector3(0, h, d),
	}
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, corners[0], corners[1], corners[2]))
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, corners[0], corners[2], corners[3]))
	return m
}

func newTestDriver(t *testing.T) (*Driver, *recorder) {
	t.Helper()
	cfg, err := config.Load("", config.Flags{})
	require.NoError(t, err)
	surface := &recorder{}
	return NewDriver(cfg, surface, nil), surface
}

// runUntil ticks every step from `from` up to and including `to`
func runUntil(d *Driver, from, to time.Duration) {
	for now := from; now <= to; now += step {
		d.Tick(now)
	}
}

func TestTickBeforeLoadDrawsEmptyScene(t *testing.T) {
	d, surface := newTestDriver(t)

	d.Tick(0)
	d.Tick(step)

	require.Len(t, surface.scenes, 2)
	assert.Nil(t, surface.scenes[0].Object)
	assert.False(t, d.Loaded())
	assert.Equal(t, choreo.Rotating, d.Machine().Mode())
	assert.Equal(t, 2, d.Frames())
}

func TestPrepareCentersAndScales(t *testing.T) {
	obj := Prepare(boxMesh(4, 2, 1), 1)

	bbox := obj.CurrentBounds()
	assert.InDelta(t, 0.25, obj.Scale, 1e-12)
	assert.True(t, bbox.Center().ApproxEqual(geometry.Vector3{}, 1e-12), "center %v", bbox.Center())
	assert.InDelta(t, 1, bbox.MaxDimension(), 1e-12)
}

func TestPrepareKeepsUnitsWithoutFitSize(t *testing.T) {
	obj := Prepare(boxMesh(4, 2, 1), 0)
	assert.Equal(t, 1.0, obj.Scale)
}

func TestDriverRunsFullCycle(t *testing.T) {
	d, _ := newTestDriver(t)
	d.Show(Prepare(boxMesh(2, 1, 1), 1), 0)

	runUntil(d, 0, 5000*time.Millisecond)
	require.Equal(t, choreo.ZoomingIn, d.Machine().Mode())
	assert.False(t, d.Orbit().Enabled(), "controls are off while zooming")

	saved, ok := d.Machine().Saved()
	require.True(t, ok)

	runUntil(d, 5000*time.Millisecond+step, 6000*time.Millisecond)
	require.Equal(t, choreo.Holding, d.Machine().Mode())
	assert.Equal(t, d.Config().Choreo.ZoomFOV, d.Scene().Camera.FOV)
	assert.Equal(t, d.Machine().ZoomTarget(), d.Orbit().Target)
	assert.Greater(t, d.Scene().Lights.Spot, 0.0)

	runUntil(d, 6000*time.Millisecond+step, 8000*time.Millisecond)
	require.Equal(t, choreo.ZoomingOut, d.Machine().Mode())

	runUntil(d, 8000*time.Millisecond+step, 9000*time.Millisecond)
	require.Equal(t, choreo.Rotating, d.Machine().Mode())

	s := d.Scene()
	assert.True(t, s.Camera.Position.ApproxEqual(saved.CameraPosition, 1e-9))
	assert.InDelta(t, saved.FOV, s.Camera.FOV, 1e-9)
	assert.True(t, s.Object.Orientation.ApproxEqualThreshold(saved.Orientation, 1e-9))
	assert.Equal(t, 0.0, s.Lights.Spot)
	assert.True(t, d.Orbit().Enabled())
	assert.True(t, d.LastFrame().Transitioned)
}

func TestDragDuringHoldRestoresSavedPose(t *testing.T) {
	d, _ := newTestDriver(t)
	d.Show(Prepare(boxMesh(2, 1, 1), 1), 0)

	runUntil(d, 0, 7000*time.Millisecond)
	require.Equal(t, choreo.Holding, d.Machine().Mode())
	saved, _ := d.Machine().Saved()

	d.Orbit().BeginDrag()

	assert.Equal(t, choreo.Rotating, d.Machine().Mode())
	assert.True(t, d.Orbit().Enabled())
	assert.Equal(t, saved.OrbitTarget, d.Orbit().Target)
	assert.True(t, d.Scene().Camera.Position.ApproxEqual(saved.CameraPosition, 1e-12))
	assert.Equal(t, 0.0, d.Scene().Lights.Spot)
	assert.False(t, d.Machine().AutoRotate())

	d.Orbit().EndDrag()
	require.True(t, d.Gate().Pending())
	assert.Equal(t, 9000*time.Millisecond, d.Gate().ResumeAt())

	runUntil(d, 7000*time.Millisecond+step, 8990*time.Millisecond)
	assert.False(t, d.Machine().AutoRotate())

	d.Tick(9000 * time.Millisecond)
	assert.True(t, d.Machine().AutoRotate())
	assert.False(t, d.Gate().Pending())
}

func TestDriverAppliesConfigUpdates(t *testing.T) {
	d, _ := newTestDriver(t)
	updates := make(chan config.Config, 1)
	d.WatchConfig(updates)

	cfg := d.Config()
	cfg.Choreo.RotateInterval = time.Second
	cfg.Scene.KeyIntensity = 1
	updates <- cfg

	d.Tick(0)

	assert.Equal(t, time.Second, d.Machine().Config().RotateInterval)
	assert.Equal(t, 1.0, d.Scene().Lights.KeyIntensity)
}

func writeSTL(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, []byte(`solid part
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 2 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid part
`), 0o644))
	return path
}

func TestLoadSTLInBackground(t *testing.T) {
	path := writeSTL(t)

	d, surface := newTestDriver(t)
	d.Load(path)

	deadline := time.Now().Add(5 * time.Second)
	for now := time.Duration(0); !d.Loaded() && time.Now().Before(deadline); now += step {
		d.Tick(now)
		time.Sleep(time.Millisecond)
	}

	require.True(t, d.Loaded())
	front, ok := d.Machine().Front()
	require.True(t, ok)
	assert.True(t, front.ApproxEqualThreshold(mgl64.QuatIdent(), 1e-12))
	assert.Equal(t, surface.scenes[len(surface.scenes)-1].Object, d.Scene().Object)
}

func TestLoadFailureKeepsSceneEmpty(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := config.Load("", config.Flags{})
	require.NoError(t, err)
	d := NewDriver(cfg, &recorder{}, log.New(&buf))

	d.Load(filepath.Join(t.TempDir(), "missing.stl"))

	deadline := time.Now().Add(5 * time.Second)
	for now := time.Duration(0); time.Now().Before(deadline); now += step {
		d.Tick(now)
		if strings.Contains(buf.String(), "model load failed") {
			break
		}
		time.Sleep(time.Millisecond)
	}

	assert.Contains(t, buf.String(), "model load failed")
	assert.False(t, d.Loaded())
	assert.Equal(t, choreo.Rotating, d.Machine().Mode())
}

func TestReloadDuringHoldCancelsCycle(t *testing.T) {
	d, _ := newTestDriver(t)
	reloads := make(chan string, 1)
	d.WatchModel(reloads)

	first := Prepare(boxMesh(2, 1, 1), 1)
	initial := mgl64.QuatRotate(0.4, mgl64.Vec3{0, 1, 0})
	first.Orientation = initial
	d.Show(first, 0)

	runUntil(d, 0, 7000*time.Millisecond)
	require.Equal(t, choreo.Holding, d.Machine().Mode())
	saved, _ := d.Machine().Saved()

	// model time stands still until the reload lands
	reloadAt := 7000 * time.Millisecond
	reloads <- writeSTL(t)
	deadline := time.Now().Add(5 * time.Second)
	for d.Scene().Object == first && time.Now().Before(deadline) {
		d.Tick(reloadAt)
		time.Sleep(time.Millisecond)
	}
	require.NotSame(t, first, d.Scene().Object)

	front, ok := d.Machine().Front()
	require.True(t, ok)
	assert.True(t, front.ApproxEqualThreshold(initial, 1e-12), "reload keeps the first front")

	assert.Equal(t, choreo.Rotating, d.Machine().Mode())
	assert.Equal(t, reloadAt, d.Machine().Entered())
	assert.True(t, d.Orbit().Enabled())

	s := d.Scene()
	speed := d.Config().Choreo.RotationSpeed
	expected := mgl64.AnglesToQuat(speed.X, speed.Y, speed.Z, mgl64.XYZ).Mul(saved.Orientation).Normalize()
	assert.True(t, s.Object.Orientation.ApproxEqualThreshold(expected, 1e-9), "new model continues from the saved orientation")
	assert.InDelta(t, saved.FOV, s.Camera.FOV, 1e-12)
	assert.Equal(t, s.Camera.Target, d.Orbit().Target)
	assert.Equal(t, 0.0, s.Lights.Spot)

	runUntil(d, reloadAt+step, reloadAt+5000*time.Millisecond-step)
	assert.Equal(t, choreo.Rotating, d.Machine().Mode())
	d.Tick(reloadAt + 5000*time.Millisecond)
	assert.Equal(t, choreo.ZoomingIn, d.Machine().Mode(), "next cycle starts a rotate interval after the reload")
}
