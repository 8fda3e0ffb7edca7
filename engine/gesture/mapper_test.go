package gesture

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/orientation"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRotator struct {
	calls [][2]float32
}

func (r *recordingRotator) ApplyDelta(dx, dy float32) {
	r.calls = append(r.calls, [2]float32{dx, dy})
}

type countingInterrupter struct{ n int }

func (c *countingInterrupter) Cancel() { c.n++ }

type fakeZoomer struct{ amounts []float32 }

func (f *fakeZoomer) Magnify(m float32) bool {
	f.amounts = append(f.amounts, m)
	return true
}

func TestPanAppliesScaledDeltaOnce(t *testing.T) {
	for _, d := range [][2]float32{{10, 0}, {0, -7}, {3.5, 12}, {-40, -40}} {
		s := orientation.NewState()
		m := NewMapper(s)
		before := s.Get()

		require.True(t, m.Handle(PanEvent{DX: d[0], DY: d[1]}))
		k := m.Sensitivity()
		assert.Equal(t, before.X+(-d[1]*k), s.Get().X)
		assert.Equal(t, before.Y+d[0]*k, s.Get().Y)
		assert.Equal(t, uint64(1), s.Revision())
	}
}

func TestTwistThenZeroLeavesNoResidual(t *testing.T) {
	s := orientation.NewState()
	m := NewMapper(s)

	m.Handle(TwistEvent{Angle: 0.4})
	y := s.Get().Y
	assert.InDelta(t, 0.4, y, 1e-6)

	assert.False(t, m.Handle(TwistEvent{Angle: 0}))
	assert.Equal(t, y, s.Get().Y)
	assert.Equal(t, float32(0), s.Get().X)
}

func TestZeroAndNonFiniteDeltasAreIgnored(t *testing.T) {
	r := &recordingRotator{}
	i := &countingInterrupter{}
	m := NewMapper(r, WithInterrupter(i))

	assert.False(t, m.Handle(PanEvent{}))
	assert.False(t, m.Handle(PanEvent{DX: math32.NaN()}))
	assert.False(t, m.Handle(TwistEvent{Angle: math32.Inf(1)}))
	assert.Empty(t, r.calls)
	assert.Zero(t, i.n)
}

func TestDragInterruptsTransition(t *testing.T) {
	r := &recordingRotator{}
	i := &countingInterrupter{}
	m := NewMapper(r, WithInterrupter(i), WithSensitivity(0.5))

	m.Handle(PanEvent{DX: 2, DY: 4})
	m.Handle(TwistEvent{Angle: -1})
	assert.Equal(t, 2, i.n)
	assert.Equal(t, [][2]float32{{-2, 1}, {0, -1}}, r.calls)
}

func TestTapDoesNotRotate(t *testing.T) {
	r := &recordingRotator{}
	var taps []TapEvent
	m := NewMapper(r, WithTapHandler(func(e TapEvent) { taps = append(taps, e) }))

	assert.True(t, m.Handle(TapEvent{X: 1, Y: 2, Width: 10, Height: 10}))
	assert.Empty(t, r.calls)
	assert.Equal(t, []TapEvent{{X: 1, Y: 2, Width: 10, Height: 10}}, taps)

	assert.False(t, NewMapper(r).Handle(TapEvent{}))
}

func TestMagnifyGoesToZoomer(t *testing.T) {
	z := &fakeZoomer{}
	m := NewMapper(&recordingRotator{}, WithZoomer(z))
	assert.True(t, m.Handle(MagnifyEvent{Amount: 0.25}))
	assert.Equal(t, []float32{0.25}, z.amounts)
	assert.False(t, NewMapper(nil).Handle(MagnifyEvent{Amount: 1}))
}

func TestInvalidSensitivityIgnored(t *testing.T) {
	assert.Equal(t, DefaultSensitivity, NewMapper(nil, WithSensitivity(-1)).Sensitivity())
	assert.Equal(t, DefaultSensitivity, NewMapper(nil, WithSensitivity(math32.NaN())).Sensitivity())
}
