package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyQ   = 81  // Q key (ASCII), twist counter-clockwise
	KeyE   = 69  // E key (ASCII), twist clockwise
	KeyR   = 82  // R key (ASCII), reset orientation
	KeyM   = 77  // M key (ASCII), toggle planner strategy
	KeyEsc = 256 // Escape key (GLFW), closes the window

	Key1 = 49 // 1 key (ASCII), front
	Key2 = 50 // 2 key (ASCII), back
	Key3 = 51 // 3 key (ASCII), left
	Key4 = 52 // 4 key (ASCII), right
	Key5 = 53 // 5 key (ASCII), top
	Key6 = 54 // 6 key (ASCII), bottom
)
