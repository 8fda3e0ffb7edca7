package picker

import "github.com/Carmen-Shannon/oxy-sandbox/common"

// PickerBuilderOption is a functional option for configuring a Picker.
type PickerBuilderOption func(*picker)

// WithThreshold sets the confidence threshold. Values outside (0, 1) and non-finite
// values are ignored.
//
// Parameters:
//   - t: the threshold
//
// Returns:
//   - PickerBuilderOption: functional option to set the threshold
func WithThreshold(t float32) PickerBuilderOption {
	return func(p *picker) {
		if common.Finite(t) && t > 0 && t < 1 {
			p.threshold = t
		}
	}
}

// WithFallback sets the face returned when no axis passes the threshold.
//
// Parameters:
//   - f: the fallback face
//
// Returns:
//   - PickerBuilderOption: functional option to set the fallback face
func WithFallback(f Face) PickerBuilderOption {
	return func(p *picker) {
		if f.Valid() {
			p.fallback = f
		}
	}
}
