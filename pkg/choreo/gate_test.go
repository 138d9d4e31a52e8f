package choreo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateResumesAfterDelay(t *testing.T) {
	cfg := DefaultConfig()
	r := newRig(t, cfg)
	r.run(time.Second, 10*ms)

	r.begin()
	r.run(3*time.Second, 10*ms)
	r.g.End(r.now)
	require.True(t, r.g.Pending())
	assert.Equal(t, r.now+cfg.ResumeDelay, r.g.ResumeAt())

	frozen := r.live
	r.run(4990*ms, 10*ms)
	assert.False(t, r.m.AutoRotate(), "must not resume before the delay")
	assert.Equal(t, frozen, r.live)

	r.tickAt(5000 * ms)
	assert.True(t, r.m.AutoRotate())
	assert.False(t, r.m.Interacting())
	assert.False(t, r.g.Pending())
	assert.Equal(t, 5000*ms, r.m.Entered(), "rotate interval restarts on resume")
}

func TestGateFiresOnce(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.begin()
	r.g.End(r.now)

	fired := 0
	for now := 10 * ms; now <= 10*time.Second; now += 10 * ms {
		if r.g.Poll(now) {
			fired++
		}
	}
	assert.Equal(t, 1, fired)
}

func TestGateBeginCancelsPendingResume(t *testing.T) {
	r := newRig(t, DefaultConfig())
	r.begin()
	r.g.End(0)

	r.tickAt(time.Second)
	r.begin()
	assert.False(t, r.g.Pending())

	r.run(10*time.Second, 100*ms)
	assert.False(t, r.m.AutoRotate())
	assert.True(t, r.m.Interacting())
}

func TestGateEndReplacesPendingResume(t *testing.T) {
	cfg := DefaultConfig()
	r := newRig(t, cfg)
	r.begin()
	r.g.End(0)
	r.g.End(1500 * ms)

	assert.False(t, r.g.Poll(cfg.ResumeDelay), "first deadline was replaced")
	assert.True(t, r.g.Poll(1500*ms+cfg.ResumeDelay))
}

func TestResumeNeverCountsInteractionTime(t *testing.T) {
	cfg := DefaultConfig()
	r := newRig(t, cfg)

	// Drag for longer than the rotate interval.
	r.begin()
	r.run(8*time.Second, 100*ms)
	r.g.End(r.now)
	r.run(10*time.Second, 100*ms)
	require.True(t, r.m.AutoRotate())

	r.run(14900*ms, 100*ms)
	assert.Equal(t, Rotating, r.m.Mode(), "interval restarts from the resume")

	r.tickAt(15000 * ms)
	assert.Equal(t, ZoomingIn, r.m.Mode())
}
