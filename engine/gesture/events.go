// Package gesture turns raw pointer and keyboard input into rotation, zoom and tap events
// and maps those events onto the shared orientation.
package gesture

// Event is a recognized gesture. Pan and twist events carry deltas since the previous
// event of the same kind, never running totals.
type Event interface {
	isEvent()
}

// PanEvent is a drag translation in pixels since the previous pan event.
type PanEvent struct {
	DX, DY float32
}

// TwistEvent is a signed rotation in radians since the previous twist event.
type TwistEvent struct {
	Angle float32
}

// TapEvent is a click that did not move beyond the tap slop, in the local pixel coordinates
// of the gizmo viewport whose size is Width x Height.
type TapEvent struct {
	X, Y          float32
	Width, Height float32
}

// MagnifyEvent is a zoom delta. Positive amounts zoom in.
type MagnifyEvent struct {
	Amount float32
}

func (PanEvent) isEvent()     {}
func (TwistEvent) isEvent()   {}
func (TapEvent) isEvent()     {}
func (MagnifyEvent) isEvent() {}

// Rect is a viewport rectangle in window pixels with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the window point (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return r.W > 0 && r.H > 0 && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Local converts a window point into coordinates relative to r.
func (r Rect) Local(x, y float32) (float32, float32) {
	return x - r.X, y - r.Y
}
