package orbit

import (
	"testing"

	"github.com/philipparndt/showcase/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestUpdateWithoutMomentumKeepsPosition(t *testing.T) {
	c := New(geometry.Vector3{}, 60)
	pos := geometry.NewVector3(0.3, 1.1, -2.7)

	assert.Equal(t, pos, c.Update(pos))
}

func TestDragRotatesAroundTargetAndSettles(t *testing.T) {
	target := geometry.NewVector3(1, 0, 0)
	c := New(target, 60)
	pos := geometry.NewVector3(1, 0, 5)

	c.BeginDrag()
	c.Drag(40, 0)
	c.EndDrag()

	moved := c.Update(pos)
	assert.NotEqual(t, pos, moved)
	assert.InDelta(t, 5.0, moved.Distance(target), 1e-9, "orbiting keeps the distance")

	for i := 0; i < 600 && c.Moving(); i++ {
		moved = c.Update(moved)
	}
	assert.False(t, c.Moving(), "momentum decays to rest")
}

func TestDisabledControlIgnoresInputButNotifies(t *testing.T) {
	c := New(geometry.Vector3{}, 60)
	c.SetEnabled(false)

	started, ended := 0, 0
	c.OnStart(func() { started++ })
	c.OnEnd(func() { ended++ })

	c.BeginDrag()
	c.BeginDrag()
	c.Drag(100, 100)
	c.Scroll(50)
	c.EndDrag()
	c.EndDrag()

	assert.Equal(t, 1, started)
	assert.Equal(t, 1, ended)
	assert.False(t, c.Moving())
}

func TestDisableDropsMomentum(t *testing.T) {
	c := New(geometry.Vector3{}, 60)
	c.BeginDrag()
	c.Drag(10, 10)
	assert.True(t, c.Moving())

	c.SetEnabled(false)
	assert.False(t, c.Moving())
}

func TestPitchIsClamped(t *testing.T) {
	c := New(geometry.Vector3{}, 60)
	pos := geometry.NewVector3(0, 0, 3)

	c.BeginDrag()
	c.Drag(0, 10000)
	pos = c.Update(pos)

	assert.Less(t, pos.Y, 3.0)
	assert.Greater(t, pos.Y, 0.0)
}
