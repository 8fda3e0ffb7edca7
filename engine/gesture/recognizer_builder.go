package gesture

import "github.com/Carmen-Shannon/oxy-sandbox/common"

// RecognizerBuilderOption is a functional option for configuring a Recognizer.
type RecognizerBuilderOption func(*recognizerImpl)

// WithTapSlop sets how far in pixels a press may travel and still count as a tap.
//
// Parameters:
//   - px: a non-negative distance
//
// Returns:
//   - RecognizerBuilderOption: functional option to set the slop
func WithTapSlop(px float32) RecognizerBuilderOption {
	return func(r *recognizerImpl) {
		if common.Finite(px) && px >= 0 {
			r.tapSlop = px
		}
	}
}

// WithScrollScale sets the magnification produced by one scroll notch.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - RecognizerBuilderOption: functional option to set the scroll scale
func WithScrollScale(s float32) RecognizerBuilderOption {
	return func(r *recognizerImpl) {
		if common.Finite(s) {
			r.scrollScale = s
		}
	}
}

// WithGizmoRect sets the gizmo viewport that receives taps.
//
// Parameters:
//   - rect: the gizmo viewport in window pixels
//
// Returns:
//   - RecognizerBuilderOption: functional option to set the gizmo rectangle
func WithGizmoRect(rect Rect) RecognizerBuilderOption {
	return func(r *recognizerImpl) {
		r.gizmo = rect
	}
}
