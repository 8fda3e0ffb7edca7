package camera

import "github.com/Carmen-Shannon/oxy-sandbox/common"

// PlannerBuilderOption is a functional option for configuring a Planner.
type PlannerBuilderOption func(*plannerImpl)

// WithStrategy selects how face selections are realized.
//
// Parameters:
//   - s: the strategy
//
// Returns:
//   - PlannerBuilderOption: functional option to set the strategy
func WithStrategy(s Strategy) PlannerBuilderOption {
	return func(p *plannerImpl) {
		if s == StrategyRotateScene || s == StrategyMoveCamera {
			p.strategy = s
		}
	}
}

// WithDistance sets the camera distance from the origin.
//
// Parameters:
//   - d: a positive distance
//
// Returns:
//   - PlannerBuilderOption: functional option to set the distance
func WithDistance(d float32) PlannerBuilderOption {
	return func(p *plannerImpl) {
		if common.Finite(d) && d > 0 {
			p.distance = d
		}
	}
}

// WithDuration sets the transition length in seconds. Zero makes selections instant.
//
// Parameters:
//   - seconds: a non-negative duration
//
// Returns:
//   - PlannerBuilderOption: functional option to set the duration
func WithDuration(seconds float32) PlannerBuilderOption {
	return func(p *plannerImpl) {
		if common.Finite(seconds) && seconds >= 0 {
			p.duration = seconds
		}
	}
}

// WithEasing replaces the smooth-step easing curve.
//
// Parameters:
//   - e: the easing curve
//
// Returns:
//   - PlannerBuilderOption: functional option to set the easing
func WithEasing(e Easing) PlannerBuilderOption {
	return func(p *plannerImpl) {
		if e != nil {
			p.easing = e
		}
	}
}
