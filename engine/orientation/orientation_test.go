package orientation

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateStartsAtIdentity(t *testing.T) {
	s := NewState()
	assert.Equal(t, Orientation{}, s.Get())
	assert.Less(t, s.Quat().Sub(mgl32.QuatIdent()).Len(), float32(1e-5))
	assert.Zero(t, s.Revision())
}

func TestWithInitialDropsNonFinite(t *testing.T) {
	s := NewState(WithInitial(Orientation{X: 1, Y: math32.NaN(), Z: math32.Inf(1)}))
	assert.Equal(t, Orientation{X: 1}, s.Get())
}

func TestApplyDeltaAccumulatesAndNotifiesOnce(t *testing.T) {
	s := NewState()
	var got []Orientation
	s.Subscribe(func(o Orientation) { got = append(got, o) })

	s.ApplyDelta(0.1, -0.2)
	s.ApplyDelta(0.1, 0)

	require.Len(t, got, 2)
	assert.InDelta(t, 0.2, s.Get().X, 1e-6)
	assert.InDelta(t, -0.2, s.Get().Y, 1e-6)
	assert.Equal(t, s.Get(), got[1])
	assert.Equal(t, uint64(2), s.Revision())
}

func TestApplyDeltaDoesNotWrap(t *testing.T) {
	s := NewState()
	for i := 0; i < 8; i++ {
		s.ApplyDelta(0, math32.Pi/2)
	}
	assert.InDelta(t, 4*math32.Pi, s.Get().Y, 1e-4)
}

func TestZeroAndNonFiniteDeltasAreNoOps(t *testing.T) {
	s := NewState(WithInitial(Orientation{X: 0.5}))
	calls := 0
	s.Subscribe(func(Orientation) { calls++ })

	s.ApplyDelta(0, 0)
	s.ApplyDelta(math32.NaN(), 0)
	s.ApplyDelta(0, math32.Inf(-1))

	assert.Zero(t, calls)
	assert.Equal(t, Orientation{X: 0.5}, s.Get())
}

func TestSetUnchangedDoesNotNotify(t *testing.T) {
	s := NewState()
	calls := 0
	s.Subscribe(func(Orientation) { calls++ })

	s.Set(Orientation{X: 1, Y: 2})
	s.Set(Orientation{X: 1, Y: 2})
	assert.Equal(t, 1, calls)
}

func TestSetKeepsPreviousForNonFiniteComponents(t *testing.T) {
	s := NewState(WithInitial(Orientation{X: 1, Y: 2, Z: 3}))
	s.Set(Orientation{X: math32.NaN(), Y: 5, Z: math32.Inf(1)})
	assert.Equal(t, Orientation{X: 1, Y: 5, Z: 3}, s.Get())
}

func TestSetAxis(t *testing.T) {
	s := NewState(WithInitial(Orientation{X: 1, Y: 2, Z: 3}))
	s.SetAxis(AxisY, -math32.Pi/2)
	s.SetAxis(AxisZ, math32.NaN())
	s.SetAxis(Axis(7), 9)
	assert.Equal(t, Orientation{X: 1, Y: -math32.Pi / 2, Z: 3}, s.Get())
}

func TestSubscribersNotifiedInOrderAndUnsubscribe(t *testing.T) {
	s := NewState()
	var order []string
	unsubA := s.Subscribe(func(Orientation) { order = append(order, "a") })
	s.Subscribe(func(Orientation) { order = append(order, "b") })

	s.ApplyDelta(1, 0)
	unsubA()
	unsubA()
	s.ApplyDelta(1, 0)

	assert.Equal(t, []string{"a", "b", "b"}, order)
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	s := NewState()
	calls := 0
	var unsub func()
	unsub = s.Subscribe(func(Orientation) {
		calls++
		unsub()
	})
	s.ApplyDelta(1, 0)
	s.ApplyDelta(1, 0)
	assert.Equal(t, 1, calls)
}

func TestOrientationQuatMatchesAxis(t *testing.T) {
	o := Orientation{Y: math32.Pi / 2}
	v := o.Quat().Rotate(mgl32.Vec3{0, 0, 1})
	assert.Less(t, v.Sub(mgl32.Vec3{1, 0, 0}).Len(), float32(1e-5), "got %v", v)
	assert.Equal(t, float32(math32.Pi/2), o.Axis(AxisY))
	assert.Equal(t, "y", AxisY.String())
}
