package choreo

import "fmt"

// Mode is the active choreography phase
type Mode int

const (
	Rotating Mode = iota
	ZoomingIn
	Holding
	ZoomingOut
)

func (m Mode) String() string {
	switch m {
	case Rotating:
		return "ROTATING"
	case ZoomingIn:
		return "ZOOMING_IN"
	case Holding:
		return "HOLDING"
	case ZoomingOut:
		return "ZOOMING_OUT"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
