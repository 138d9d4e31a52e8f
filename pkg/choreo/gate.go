package choreo

import "time"

// Gate turns drag begin/end notifications into machine interrupts and a
// delayed resume. At most one resume is pending at any time.
type Gate struct {
	machine  *Machine
	resumeAt time.Duration
	armed    bool
}

// NewGate creates a gate for the machine
func NewGate(m *Machine) *Gate {
	return &Gate{machine: m}
}

// Begin marks the start of user interaction and cancels any pending resume.
// If a zoom cycle was running the saved pose is returned so the caller can
// put the camera back before handing control to the user.
func (g *Gate) Begin(now time.Duration) (Pose, bool) {
	g.armed = false
	return g.machine.Interrupt(now)
}

// End arms the resume timer, replacing one that is already pending
func (g *Gate) End(now time.Duration) {
	g.resumeAt = now + g.machine.Config().ResumeDelay
	g.armed = true
}

// Pending reports whether a resume is armed
func (g *Gate) Pending() bool { return g.armed }

// ResumeAt returns the deadline of the pending resume
func (g *Gate) ResumeAt() time.Duration { return g.resumeAt }

// Poll fires the pending resume once its deadline has passed.
// It reports whether the resume fired on this call.
func (g *Gate) Poll(now time.Duration) bool {
	if !g.armed || now < g.resumeAt {
		return false
	}
	g.armed = false
	g.machine.Resume(now)
	return true
}
