package gesture

import "github.com/Carmen-Shannon/oxy-sandbox/common"

// MapperBuilderOption is a functional option for configuring a Mapper.
type MapperBuilderOption func(*mapperImpl)

// WithSensitivity sets the pan factor in radians per pixel.
//
// Parameters:
//   - k: a positive finite factor
//
// Returns:
//   - MapperBuilderOption: functional option to set the sensitivity
func WithSensitivity(k float32) MapperBuilderOption {
	return func(m *mapperImpl) {
		if common.Finite(k) && k > 0 {
			m.sensitivity = k
		}
	}
}

// WithZoomer routes magnify events to z.
//
// Parameters:
//   - z: the zoom target
//
// Returns:
//   - MapperBuilderOption: functional option to set the zoomer
func WithZoomer(z Zoomer) MapperBuilderOption {
	return func(m *mapperImpl) {
		m.zoomer = z
	}
}

// WithInterrupter cancels i before every pan or twist is applied.
//
// Parameters:
//   - i: the transition to interrupt
//
// Returns:
//   - MapperBuilderOption: functional option to set the interrupter
func WithInterrupter(i Interrupter) MapperBuilderOption {
	return func(m *mapperImpl) {
		m.interrupter = i
	}
}

// WithTapHandler routes tap events to fn.
//
// Parameters:
//   - fn: the tap handler
//
// Returns:
//   - MapperBuilderOption: functional option to set the tap handler
func WithTapHandler(fn TapHandler) MapperBuilderOption {
	return func(m *mapperImpl) {
		m.onTap = fn
	}
}
