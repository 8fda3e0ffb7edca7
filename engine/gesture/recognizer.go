package gesture

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/chewxy/math32"
)

const (
	// DefaultTapSlop is the distance in pixels a press may travel and still count as a tap.
	DefaultTapSlop float32 = 4

	// DefaultScrollScale converts one scroll wheel notch into a magnification amount.
	DefaultScrollScale float32 = 0.1
)

type recognizerImpl struct {
	emit        func(Event)
	tapSlop     float32
	scrollScale float32
	gizmo       Rect

	pressed bool
	moved   bool
	downX   float32
	downY   float32
	lastX   float32
	lastY   float32

	// Pending pan translation and twist rotation; both reset to zero after each emission.
	panX, panY float32
	twist      float32
}

// Recognizer converts raw window input into gesture events.
// It is driven from the UI thread and is not safe for concurrent use.
type Recognizer interface {
	// Press starts a pointer gesture at window coordinates (x, y).
	Press(x, y float32)

	// Move reports the pointer position. While pressed and beyond the tap slop it emits
	// a PanEvent with the translation since the previous PanEvent.
	Move(x, y float32)

	// Release ends a pointer gesture. A press that never left the tap slop and started
	// inside the gizmo viewport emits a TapEvent in gizmo-local coordinates.
	Release(x, y float32)

	// Rotate adds a twist of angle radians and emits it as a single TwistEvent.
	Rotate(angle float32)

	// Scroll emits a MagnifyEvent for a vertical scroll offset.
	Scroll(offset float32)

	// SetGizmoRect updates the gizmo viewport rectangle, e.g. after a resize.
	SetGizmoRect(r Rect)

	// GizmoRect returns the gizmo viewport rectangle.
	GizmoRect() Rect

	// Pressed reports whether a pointer gesture is in progress.
	Pressed() bool
}

var _ Recognizer = &recognizerImpl{}

// NewRecognizer creates a recognizer that hands every event to emit.
//
// Parameters:
//   - emit: receives recognized events, typically Mapper.Handle
//   - options: functional options to configure the recognizer
//
// Returns:
//   - Recognizer: the newly created recognizer
func NewRecognizer(emit func(Event), options ...RecognizerBuilderOption) Recognizer {
	r := &recognizerImpl{
		emit:        emit,
		tapSlop:     DefaultTapSlop,
		scrollScale: DefaultScrollScale,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *recognizerImpl) Press(x, y float32) {
	if !common.Finite(x) || !common.Finite(y) {
		return
	}
	r.pressed = true
	r.moved = false
	r.downX, r.downY = x, y
	r.lastX, r.lastY = x, y
	r.panX, r.panY = 0, 0
}

func (r *recognizerImpl) Move(x, y float32) {
	if !common.Finite(x) || !common.Finite(y) {
		return
	}
	if !r.pressed {
		r.lastX, r.lastY = x, y
		return
	}
	r.panX += x - r.lastX
	r.panY += y - r.lastY
	r.lastX, r.lastY = x, y

	if !r.moved && math32.Hypot(x-r.downX, y-r.downY) > r.tapSlop {
		r.moved = true
	}
	if r.moved {
		r.flushPan()
	}
}

func (r *recognizerImpl) Release(x, y float32) {
	if !r.pressed {
		return
	}
	r.Move(x, y)
	r.pressed = false
	if r.moved {
		return
	}
	r.panX, r.panY = 0, 0
	if !r.gizmo.Contains(r.downX, r.downY) {
		return
	}
	lx, ly := r.gizmo.Local(r.downX, r.downY)
	r.send(TapEvent{X: lx, Y: ly, Width: r.gizmo.W, Height: r.gizmo.H})
}

func (r *recognizerImpl) Rotate(angle float32) {
	if !common.Finite(angle) {
		return
	}
	r.twist += angle
	if r.twist == 0 {
		return
	}
	ev := TwistEvent{Angle: r.twist}
	r.twist = 0
	r.send(ev)
}

func (r *recognizerImpl) Scroll(offset float32) {
	if !common.Finite(offset) || offset == 0 {
		return
	}
	r.send(MagnifyEvent{Amount: offset * r.scrollScale})
}

func (r *recognizerImpl) SetGizmoRect(rect Rect) {
	r.gizmo = rect
}

func (r *recognizerImpl) GizmoRect() Rect {
	return r.gizmo
}

func (r *recognizerImpl) Pressed() bool {
	return r.pressed
}

func (r *recognizerImpl) flushPan() {
	if r.panX == 0 && r.panY == 0 {
		return
	}
	ev := PanEvent{DX: r.panX, DY: r.panY}
	r.panX, r.panY = 0, 0
	r.send(ev)
}

func (r *recognizerImpl) send(e Event) {
	if r.emit != nil {
		r.emit(e)
	}
}
