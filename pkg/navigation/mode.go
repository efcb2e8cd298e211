package navigation

// Mode selects how navigation commands move the camera
type Mode uint8

const (
	// ModeFly rotates about the camera position; vertical translation is unrestricted
	ModeFly Mode = iota
	// ModeWalk is ModeFly with vertical translation suppressed
	ModeWalk
	// ModeView rotates the camera about the look-at point
	ModeView
)

// String returns the lowercase mode name used in viewpoint listings
func (m Mode) String() string {
	switch m {
	case ModeFly:
		return "fly"
	case ModeWalk:
		return "walk"
	case ModeView:
		return "view"
	default:
		return "unknown"
	}
}
