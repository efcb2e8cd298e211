// Package navigation holds the per-process camera state and the operations that
// move it. All math works in unscaled model units; the global scale factor is
// applied only when the viewpoint is read for rendering.
package navigation

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrDegenerateView is returned for a zero-length or non-finite viewpoint
	ErrDegenerateView = errors.New("navigation: view vector is zero or not finite")
	// ErrVerticalView is returned when a vertical rotation starts from an exactly vertical view
	ErrVerticalView = errors.New("navigation: view vector is vertical")
)

// Viewpoint is the camera triple: position, look-at target and up vector
type Viewpoint struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

// DefaultViewpoint starts at the origin looking along +z with +y upwards
func DefaultViewpoint() Viewpoint {
	return Viewpoint{
		Position: mgl64.Vec3{0, 0, 0},
		Target:   mgl64.Vec3{0, 0, 10},
		Up:       mgl64.Vec3{0, 1, 0},
	}
}

// Direction returns the vector from the position to the target
func (v Viewpoint) Direction() mgl64.Vec3 {
	return v.Target.Sub(v.Position)
}

func (v Viewpoint) finite() bool {
	for _, vec := range [...]mgl64.Vec3{v.Position, v.Target, v.Up} {
		for _, f := range vec {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}

// Camera is the navigation state machine for one rendering process.
// It is owned by a single goroutine and is not safe for concurrent use.
type Camera struct {
	view Viewpoint

	// Snapshot taken by the first SetViewpoint, used by ResetViewpoint
	initial  Viewpoint
	captured bool

	mode  Mode
	step  float64
	angle float64
	scale float64

	// headerPrinted is set once PrintViewpoint has written the column header
	headerPrinted bool
}

// NewCamera creates a camera at vp in fly mode with default step sizes.
// vp becomes the initial viewpoint restored by ResetViewpoint.
func NewCamera(vp Viewpoint) (*Camera, error) {
	c := &Camera{
		mode:  ModeFly,
		step:  DefaultStep,
		angle: DefaultAngle,
		scale: DefaultScale,
	}
	if err := c.SetViewpoint(vp); err != nil {
		return nil, err
	}
	return c, nil
}

// SetViewpoint overwrites the whole camera triple. The first successful call
// also captures the initial viewpoint.
func (c *Camera) SetViewpoint(vp Viewpoint) error {
	if !vp.finite() {
		return ErrDegenerateView
	}
	if l := vp.Direction().Len(); l == 0 || math.IsInf(l, 0) {
		return ErrDegenerateView
	}
	c.view = vp
	if !c.captured {
		c.initial = vp
		c.captured = true
	}
	return nil
}

// Viewpoint returns the unscaled camera triple
func (c *Camera) Viewpoint() Viewpoint {
	return c.view
}

// InitialViewpoint returns the snapshot used by ResetViewpoint
func (c *Camera) InitialViewpoint() Viewpoint {
	return c.initial
}

// Scaled returns the viewpoint with the global scale factor applied to the
// position and target. The up vector is never scaled.
func (c *Camera) Scaled() Viewpoint {
	return Viewpoint{
		Position: c.view.Position.Mul(c.scale),
		Target:   c.view.Target.Mul(c.scale),
		Up:       c.view.Up,
	}
}

// Scale returns the global scale factor
func (c *Camera) Scale() float64 {
	return c.scale
}

// SetScale sets the global scale factor
func (c *Camera) SetScale(s float64) {
	c.scale = s
}

// ResetViewpoint restores the initial viewpoint and re-enables fly mode
func (c *Camera) ResetViewpoint() {
	c.view = c.initial
	c.FlyMode()
}

// Mode returns the active motion mode
func (c *Camera) Mode() Mode {
	return c.mode
}

// FlyMode switches to fly navigation
func (c *Camera) FlyMode() {
	c.mode = ModeFly
}

// WalkMode switches to walk navigation
func (c *Camera) WalkMode() {
	c.mode = ModeWalk
}

// ViewMode switches to view navigation
func (c *Camera) ViewMode() {
	c.mode = ModeView
}

// Step returns the default translation step
func (c *Camera) Step() float64 {
	return c.step
}

// SetStep sets the default translation step
func (c *Camera) SetStep(v float64) {
	c.step = v
}

// Angle returns the default rotation step in degrees
func (c *Camera) Angle() float64 {
	return c.angle
}

// SetAngle sets the default rotation step in degrees
func (c *Camera) SetAngle(v float64) {
	c.angle = v
}

// IncreaseStep grows the translation step by StepFactor
func (c *Camera) IncreaseStep() {
	c.step *= StepFactor
}

// DecreaseStep shrinks the translation step by StepFactor
func (c *Camera) DecreaseStep() {
	c.step /= StepFactor
}

// IncreaseAngle grows the rotation step by StepFactor
func (c *Camera) IncreaseAngle() {
	c.angle *= StepFactor
}

// DecreaseAngle shrinks the rotation step by StepFactor
func (c *Camera) DecreaseAngle() {
	c.angle /= StepFactor
}

// MoveForward translates the camera and target by dist along the view direction.
// In walk mode the vertical component is suppressed.
func (c *Camera) MoveForward(dist float64) error {
	dir := c.view.Direction()
	length := dir.Len()
	if length == 0 {
		return ErrDegenerateView
	}

	delta := dir.Mul(dist / length)
	if c.mode == ModeWalk {
		delta[1] = 0
	}

	c.view.Position = c.view.Position.Add(delta)
	c.view.Target = c.view.Target.Add(delta)
	return nil
}

// MoveLeft translates the camera and target sideways, 90 degrees left of the
// current heading. It behaves the same in every mode.
func (c *Camera) MoveLeft(dist float64) error {
	lat, lon, _, err := sphericalOf(c.view.Direction())
	if err != nil {
		return err
	}

	heading := lon - math.Pi/2
	delta := mgl64.Vec3{
		math.Cos(lat) * math.Cos(heading) * dist,
		0,
		math.Cos(lat) * math.Sin(heading) * dist,
	}

	c.view.Position = c.view.Position.Add(delta)
	c.view.Target = c.view.Target.Add(delta)
	return nil
}

// MoveUp translates the camera and target vertically. No-op in walk mode.
func (c *Camera) MoveUp(dist float64) {
	if c.mode == ModeWalk {
		return
	}
	c.view.Position[1] += dist
	c.view.Target[1] += dist
}

// RotateHorizontally turns through angle degrees about the vertical axis.
// In fly and walk mode the target swings about the camera; a positive angle
// turns a view along +z towards +x. In view mode the camera orbits the target.
func (c *Camera) RotateHorizontally(angle float64) error {
	rad := mgl64.DegToRad(angle)
	pivot, arm := c.pivot()
	if c.mode != ModeView {
		rad = -rad
	}

	lat, lon, length, err := sphericalOf(arm)
	if err != nil {
		return err
	}

	swung := mgl64.Vec3{
		length * math.Cos(lat) * math.Cos(lon+rad),
		arm[1],
		length * math.Cos(lat) * math.Sin(lon+rad),
	}
	c.setArm(pivot, swung)
	return nil
}

// RotateVertically tilts through angle degrees. Starting from an exactly
// vertical view the longitude is undefined and ErrVerticalView is returned
// with the state unchanged.
func (c *Camera) RotateVertically(angle float64) error {
	rad := mgl64.DegToRad(angle)
	pivot, arm := c.pivot()

	lat, _, length, err := sphericalOf(arm)
	if err != nil {
		return err
	}
	cosLat := math.Cos(lat)
	if math.Abs(cosLat) < verticalEpsilon {
		return ErrVerticalView
	}

	rCosLon := arm[0] / cosLat
	rSinLon := arm[2] / cosLat
	tilted := mgl64.Vec3{
		rCosLon * math.Cos(lat+rad),
		length * math.Sin(lat+rad),
		rSinLon * math.Cos(lat+rad),
	}
	c.setArm(pivot, tilted)
	return nil
}

// pivot returns the fixed point of a rotation and the vector to the moving point
func (c *Camera) pivot() (mgl64.Vec3, mgl64.Vec3) {
	if c.mode == ModeView {
		return c.view.Target, c.view.Position.Sub(c.view.Target)
	}
	return c.view.Position, c.view.Target.Sub(c.view.Position)
}

// setArm moves the non-pivot end of the view vector to pivot+arm
func (c *Camera) setArm(pivot, arm mgl64.Vec3) {
	if c.mode == ModeView {
		c.view.Position = pivot.Add(arm)
		return
	}
	c.view.Target = pivot.Add(arm)
}

// sphericalOf decomposes v into latitude, longitude (radians) and length
func sphericalOf(v mgl64.Vec3) (lat, lon, length float64, err error) {
	length = v.Len()
	if length == 0 {
		return 0, 0, 0, ErrDegenerateView
	}
	lat = math.Asin(mgl64.Clamp(v[1]/length, -1, 1))
	lon = math.Atan2(v[2], v[0])
	return lat, lon, length, nil
}
