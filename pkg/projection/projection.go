// Package projection builds the matrices a display needs to draw the shared
// viewpoint: the perspective projection, the per-host display transform and
// the view matrix.
package projection

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewsync/pkg/navigation"
)

// Projection defaults
const (
	// DefaultFOV is the horizontal field of view in degrees
	DefaultFOV  = 60.0
	DefaultNear = 0.01
	DefaultFar  = 2000.0
)

// Perspective holds the frustum parameters of one display
type Perspective struct {
	FOV       float32
	Near, Far float32

	width, height int
	matrix        mgl32.Mat4
}

// NewPerspective returns the default frustum for a width x height viewport
func NewPerspective(width, height int) *Perspective {
	p := &Perspective{
		FOV:  DefaultFOV,
		Near: DefaultNear,
		Far:  DefaultFar,
	}
	p.Resize(width, height)
	return p
}

// Resize recomputes the matrix for a new viewport. The horizontal field of view
// stays fixed; the vertical one follows the viewport's shape.
func (p *Perspective) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height

	aspect := float32(width) / float32(height)
	fovy := p.FOV / aspect
	p.matrix = mgl32.Perspective(mgl32.DegToRad(fovy), aspect, p.Near, p.Far)
}

// Size returns the viewport dimensions
func (p *Perspective) Size() (int, int) {
	return p.width, p.height
}

// Matrix returns the projection matrix
func (p *Perspective) Matrix() mgl32.Mat4 {
	return p.matrix
}

// View returns the view matrix for vp seen through the display transform host.
// vp is expected to be already scaled for rendering.
func View(vp navigation.Viewpoint, host mgl32.Mat4) mgl32.Mat4 {
	look := mgl32.LookAtV(vec32(vp.Position), vec32(vp.Target), vec32(vp.Up))
	return host.Mul4(look)
}

func vec32(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
