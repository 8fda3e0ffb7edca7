package orientation

// StateBuilderOption is a functional option for configuring a State.
type StateBuilderOption func(*state)

// WithInitial sets the starting orientation. Non-finite components start at zero.
//
// Parameters:
//   - o: the initial orientation
//
// Returns:
//   - StateBuilderOption: functional option to set the initial value
func WithInitial(o Orientation) StateBuilderOption {
	return func(s *state) {
		s.current = o.finite(Orientation{})
	}
}
