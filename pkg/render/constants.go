package render

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Window defaults
const (
	DefaultTitle = "viewsync"

	// waitTimeout bounds how long the loop sleeps in the event queue when
	// nothing needs drawing, in seconds. It caps command latency.
	waitTimeout = 0.005
)

// Scene constants
const (
	// gridHalf is the number of pillars on each side of the centre row
	gridHalf = 10
	// gridSpacing is the distance between neighbouring pillars
	gridSpacing = 4.0
	// groundLevel is the height of the pillar bases
	groundLevel = -2.0
)

var (
	backgroundColor = mgl32.Vec4{0.05, 0.05, 0.1, 1.0}
	lightPos        = mgl32.Vec3{30.0, 60.0, -20.0}
	lightColor      = mgl32.Vec3{1.0, 1.0, 1.0}
)
