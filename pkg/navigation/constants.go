package navigation

// Navigation defaults
const (
	// DefaultStep is the translation applied by a move command without a magnitude
	DefaultStep = 0.5
	// DefaultAngle is the rotation in degrees applied by a turn command without a magnitude
	DefaultAngle = 1.0

	// StepFactor is the multiplicative change applied by the increase/decrease commands
	StepFactor = 1.1

	// DefaultScale is the global scale factor applied when the viewpoint is read for rendering
	DefaultScale = 1.0

	// verticalEpsilon bounds cos(latitude) below which a vertical rotation is refused
	verticalEpsilon = 1e-12
)
