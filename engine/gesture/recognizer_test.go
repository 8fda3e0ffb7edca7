package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct{ events []Event }

func (s *sink) emit(e Event) { s.events = append(s.events, e) }

func TestDragEmitsDeltasNotTotals(t *testing.T) {
	s := &sink{}
	r := NewRecognizer(s.emit, WithTapSlop(2))

	r.Press(100, 100)
	r.Move(101, 100) // inside slop, held back
	r.Move(110, 100)
	r.Move(115, 98)
	r.Release(115, 98)

	require.Len(t, s.events, 2)
	assert.Equal(t, PanEvent{DX: 10, DY: 0}, s.events[0])
	assert.Equal(t, PanEvent{DX: 5, DY: -2}, s.events[1])
	assert.False(t, r.Pressed())
}

func TestMoveWithoutPressDoesNothing(t *testing.T) {
	s := &sink{}
	r := NewRecognizer(s.emit)
	r.Move(10, 10)
	r.Move(50, 50)
	r.Release(50, 50)
	assert.Empty(t, s.events)
}

func TestTapInsideGizmoIsLocal(t *testing.T) {
	s := &sink{}
	r := NewRecognizer(s.emit, WithGizmoRect(Rect{X: 600, Y: 20, W: 150, H: 150}))

	r.Press(675, 95)
	r.Move(676, 96)
	r.Release(676, 96)

	require.Len(t, s.events, 1)
	assert.Equal(t, TapEvent{X: 75, Y: 75, Width: 150, Height: 150}, s.events[0])
}

func TestTapOutsideGizmoIsDropped(t *testing.T) {
	s := &sink{}
	r := NewRecognizer(s.emit, WithGizmoRect(Rect{X: 600, Y: 20, W: 150, H: 150}))
	r.Press(10, 10)
	r.Release(10, 10)
	assert.Empty(t, s.events)
}

func TestDragStartingOnGizmoIsNotATap(t *testing.T) {
	s := &sink{}
	r := NewRecognizer(s.emit, WithGizmoRect(Rect{W: 100, H: 100}))
	r.Press(50, 50)
	r.Release(80, 50)
	require.Len(t, s.events, 1)
	assert.Equal(t, PanEvent{DX: 30}, s.events[0])
}

func TestRotateEmitsOneShotDelta(t *testing.T) {
	s := &sink{}
	r := NewRecognizer(s.emit)
	r.Rotate(0.2)
	r.Rotate(0)
	r.Rotate(-0.1)
	assert.Equal(t, []Event{TwistEvent{Angle: 0.2}, TwistEvent{Angle: -0.1}}, s.events)
}

func TestScrollMagnifies(t *testing.T) {
	s := &sink{}
	r := NewRecognizer(s.emit, WithScrollScale(0.5))
	r.Scroll(1)
	r.Scroll(0)
	r.Scroll(-2)
	assert.Equal(t, []Event{MagnifyEvent{Amount: 0.5}, MagnifyEvent{Amount: -1}}, s.events)
}

func TestRectContains(t *testing.T) {
	rect := Rect{X: 10, Y: 10, W: 5, H: 5}
	assert.True(t, rect.Contains(10, 10))
	assert.False(t, rect.Contains(15, 12))
	assert.False(t, Rect{}.Contains(0, 0))
}
