package common

// Coalesce picks the first argument that differs from the zero value of T.
// It is used to fall back from optional settings to defaults, e.g. an empty project name.
//
// Parameters:
//   - candidates: values in order of preference
//
// Returns:
//   - T: the first non-zero candidate, or the zero value when every candidate is zero
func Coalesce[T comparable](candidates ...T) T {
	var zero T
	for _, c := range candidates {
		if c != zero {
			return c
		}
	}
	return zero
}
