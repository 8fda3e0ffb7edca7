package gesture

import "github.com/Carmen-Shannon/oxy-sandbox/common"

// DefaultSensitivity converts drag pixels into radians.
const DefaultSensitivity float32 = 0.01

// Rotator receives incremental rotations. orientation.State satisfies it.
type Rotator interface {
	ApplyDelta(dx, dy float32)
}

// Zoomer receives magnification deltas. camera.Camera satisfies it.
type Zoomer interface {
	Magnify(m float32) bool
}

// Interrupter is cancelled before a direct rotation is applied so that a running face
// transition does not fight the drag. camera.Planner satisfies it.
type Interrupter interface {
	Cancel()
}

// TapHandler receives taps in gizmo-local coordinates.
type TapHandler func(TapEvent)

type mapperImpl struct {
	rotator     Rotator
	zoomer      Zoomer
	interrupter Interrupter
	onTap       TapHandler
	sensitivity float32
}

// Mapper applies recognized gestures.
//
//	pan     ApplyDelta(-dy*k, dx*k)
//	twist   ApplyDelta(0, θ)
//	tap     forwarded to the tap handler, orientation untouched
//	magnify forwarded to the zoomer
type Mapper interface {
	// Handle applies one event. Zero and non-finite deltas are ignored.
	//
	// Parameters:
	//   - e: the event
	//
	// Returns:
	//   - bool: true if the event changed something or reached a handler
	Handle(e Event) bool

	// Sensitivity returns the pan factor k in radians per pixel.
	//
	// Returns:
	//   - float32: the sensitivity
	Sensitivity() float32
}

var _ Mapper = &mapperImpl{}

// NewMapper creates a mapper that rotates r.
//
// Parameters:
//   - r: the rotation target
//   - options: functional options to configure the mapper
//
// Returns:
//   - Mapper: the newly created mapper
func NewMapper(r Rotator, options ...MapperBuilderOption) Mapper {
	m := &mapperImpl{
		rotator:     r,
		sensitivity: DefaultSensitivity,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *mapperImpl) Handle(e Event) bool {
	switch ev := e.(type) {
	case PanEvent:
		if !common.Finite(ev.DX) || !common.Finite(ev.DY) || (ev.DX == 0 && ev.DY == 0) {
			return false
		}
		m.rotate(-ev.DY*m.sensitivity, ev.DX*m.sensitivity)
		return true
	case TwistEvent:
		if !common.Finite(ev.Angle) || ev.Angle == 0 {
			return false
		}
		m.rotate(0, ev.Angle)
		return true
	case TapEvent:
		if m.onTap == nil {
			return false
		}
		m.onTap(ev)
		return true
	case MagnifyEvent:
		if m.zoomer == nil {
			return false
		}
		return m.zoomer.Magnify(ev.Amount)
	}
	return false
}

func (m *mapperImpl) Sensitivity() float32 {
	return m.sensitivity
}

func (m *mapperImpl) rotate(dx, dy float32) {
	if m.rotator == nil {
		return
	}
	if m.interrupter != nil {
		m.interrupter.Cancel()
	}
	m.rotator.ApplyDelta(dx, dy)
}
