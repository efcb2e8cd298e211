package navigation

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-9

func vecEquals(a, b mgl64.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

func newTestCamera(t *testing.T, vp Viewpoint) *Camera {
	t.Helper()
	c, err := NewCamera(vp)
	if err != nil {
		t.Fatalf("NewCamera() error = %v", err)
	}
	return c
}

// Oblique starting viewpoint so that no component is trivially zero
func obliqueViewpoint() Viewpoint {
	return Viewpoint{
		Position: mgl64.Vec3{1, 2, 3},
		Target:   mgl64.Vec3{4, 3, 9},
		Up:       mgl64.Vec3{0, 1, 0},
	}
}

var allModes = []Mode{ModeFly, ModeWalk, ModeView}

func TestNewCamera_Defaults(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())

	if c.Mode() != ModeFly {
		t.Errorf("Mode: got %v, want fly", c.Mode())
	}
	if c.Step() != DefaultStep {
		t.Errorf("Step: got %v, want %v", c.Step(), DefaultStep)
	}
	if c.Angle() != DefaultAngle {
		t.Errorf("Angle: got %v, want %v", c.Angle(), DefaultAngle)
	}
	if c.InitialViewpoint() != DefaultViewpoint() {
		t.Errorf("InitialViewpoint: got %+v, want default", c.InitialViewpoint())
	}
}

func TestNewCamera_RejectsDegenerate(t *testing.T) {
	vp := Viewpoint{Position: mgl64.Vec3{1, 1, 1}, Target: mgl64.Vec3{1, 1, 1}, Up: mgl64.Vec3{0, 1, 0}}
	if _, err := NewCamera(vp); !errors.Is(err, ErrDegenerateView) {
		t.Errorf("NewCamera() error = %v, want ErrDegenerateView", err)
	}
}

func TestSetViewpoint_RejectsNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name string
		vp   Viewpoint
	}{
		{"nan position", Viewpoint{Position: mgl64.Vec3{nan, 0, 0}, Target: mgl64.Vec3{0, 0, 10}, Up: mgl64.Vec3{0, 1, 0}}},
		{"inf target", Viewpoint{Position: mgl64.Vec3{0, 0, 0}, Target: mgl64.Vec3{0, 0, inf}, Up: mgl64.Vec3{0, 1, 0}}},
		{"nan up", Viewpoint{Position: mgl64.Vec3{0, 0, 0}, Target: mgl64.Vec3{0, 0, 10}, Up: mgl64.Vec3{0, nan, 0}}},
		{"overflowing direction", Viewpoint{Position: mgl64.Vec3{-math.MaxFloat64, 0, 0}, Target: mgl64.Vec3{math.MaxFloat64, 0, 0}, Up: mgl64.Vec3{0, 1, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCamera(t, obliqueViewpoint())
			if err := c.SetViewpoint(tt.vp); !errors.Is(err, ErrDegenerateView) {
				t.Errorf("SetViewpoint() error = %v, want ErrDegenerateView", err)
			}
			if c.Viewpoint() != obliqueViewpoint() {
				t.Errorf("state changed: %+v", c.Viewpoint())
			}
		})
	}
}

func TestRotateHorizontally_Inverse(t *testing.T) {
	for _, mode := range allModes {
		for _, angle := range []float64{1, 15, -40, 90, 170} {
			c := newTestCamera(t, obliqueViewpoint())
			c.mode = mode
			before := c.Viewpoint()

			if err := c.RotateHorizontally(angle); err != nil {
				t.Fatalf("%v: RotateHorizontally(%v) error = %v", mode, angle, err)
			}
			if err := c.RotateHorizontally(-angle); err != nil {
				t.Fatalf("%v: RotateHorizontally(%v) error = %v", mode, -angle, err)
			}

			after := c.Viewpoint()
			if !vecEquals(after.Position, before.Position) || !vecEquals(after.Target, before.Target) {
				t.Errorf("%v angle %v: got %+v, want %+v", mode, angle, after, before)
			}
		}
	}
}

func TestRotateHorizontally_SignConvention(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())

	if err := c.RotateHorizontally(90); err != nil {
		t.Fatalf("RotateHorizontally() error = %v", err)
	}

	want := mgl64.Vec3{10, 0, 0}
	if got := c.Viewpoint().Target; !vecEquals(got, want) {
		t.Errorf("Target: got %v, want %v", got, want)
	}
	if got := c.Viewpoint().Position; got != (mgl64.Vec3{}) {
		t.Errorf("Position moved in fly mode: %v", got)
	}
}

func TestRotateHorizontally_ViewModeOrbitsTarget(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())
	c.ViewMode()

	if err := c.RotateHorizontally(90); err != nil {
		t.Fatalf("RotateHorizontally() error = %v", err)
	}

	vp := c.Viewpoint()
	if vp.Target != (mgl64.Vec3{0, 0, 10}) {
		t.Errorf("Target moved in view mode: %v", vp.Target)
	}
	if dist := vp.Direction().Len(); math.Abs(dist-10) > tolerance {
		t.Errorf("orbit radius: got %v, want 10", dist)
	}
}

func TestRotateVertically_Inverse(t *testing.T) {
	for _, mode := range allModes {
		c := newTestCamera(t, obliqueViewpoint())
		c.mode = mode
		before := c.Viewpoint()

		if err := c.RotateVertically(20); err != nil {
			t.Fatalf("%v: RotateVertically() error = %v", mode, err)
		}
		if err := c.RotateVertically(-20); err != nil {
			t.Fatalf("%v: RotateVertically() error = %v", mode, err)
		}

		after := c.Viewpoint()
		if !vecEquals(after.Position, before.Position) || !vecEquals(after.Target, before.Target) {
			t.Errorf("%v: got %+v, want %+v", mode, after, before)
		}
	}
}

func TestRotateVertically_UpTiltsTargetUp(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())

	if err := c.RotateVertically(30); err != nil {
		t.Fatalf("RotateVertically() error = %v", err)
	}

	want := mgl64.Vec3{0, 10 * math.Sin(math.Pi/6), 10 * math.Cos(math.Pi/6)}
	if got := c.Viewpoint().Target; !vecEquals(got, want) {
		t.Errorf("Target: got %v, want %v", got, want)
	}
}

func TestRotateVertically_VerticalViewIsRefused(t *testing.T) {
	vp := Viewpoint{Position: mgl64.Vec3{0, 0, 0}, Target: mgl64.Vec3{0, 5, 0}, Up: mgl64.Vec3{0, 0, 1}}
	c := newTestCamera(t, vp)

	err := c.RotateVertically(10)
	if !errors.Is(err, ErrVerticalView) {
		t.Fatalf("RotateVertically() error = %v, want ErrVerticalView", err)
	}
	if c.Viewpoint() != vp {
		t.Errorf("state changed on refused rotation: %+v", c.Viewpoint())
	}
}

func TestMoveForward_Inverse(t *testing.T) {
	for _, mode := range allModes {
		c := newTestCamera(t, obliqueViewpoint())
		c.mode = mode
		before := c.Viewpoint()

		if err := c.MoveForward(2.5); err != nil {
			t.Fatalf("MoveForward() error = %v", err)
		}
		if err := c.MoveForward(-2.5); err != nil {
			t.Fatalf("MoveForward() error = %v", err)
		}

		after := c.Viewpoint()
		if !vecEquals(after.Position, before.Position) || !vecEquals(after.Target, before.Target) {
			t.Errorf("%v: got %+v, want %+v", mode, after, before)
		}
	}
}

func TestMoveForward_AlongViewDirection(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())

	if err := c.MoveForward(2); err != nil {
		t.Fatalf("MoveForward() error = %v", err)
	}

	vp := c.Viewpoint()
	if !vecEquals(vp.Position, mgl64.Vec3{0, 0, 2}) {
		t.Errorf("Position: got %v, want (0,0,2)", vp.Position)
	}
	if !vecEquals(vp.Target, mgl64.Vec3{0, 0, 12}) {
		t.Errorf("Target: got %v, want (0,0,12)", vp.Target)
	}
}

func TestWalkMode_KeepsHeight(t *testing.T) {
	for _, d := range []float64{-3, 0.5, 7} {
		c := newTestCamera(t, obliqueViewpoint())
		c.WalkMode()
		before := c.Viewpoint()

		c.MoveUp(d)
		if err := c.MoveForward(d); err != nil {
			t.Fatalf("MoveForward() error = %v", err)
		}

		after := c.Viewpoint()
		if after.Position[1] != before.Position[1] || after.Target[1] != before.Target[1] {
			t.Errorf("d=%v: height changed from %v/%v to %v/%v", d,
				before.Position[1], before.Target[1], after.Position[1], after.Target[1])
		}
	}
}

func TestMoveUp_FlyMode(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())
	c.MoveUp(1.5)

	vp := c.Viewpoint()
	if vp.Position[1] != 1.5 || vp.Target[1] != 1.5 {
		t.Errorf("heights: got %v/%v, want 1.5/1.5", vp.Position[1], vp.Target[1])
	}
}

func TestMoveLeft(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())

	if err := c.MoveLeft(1); err != nil {
		t.Fatalf("MoveLeft() error = %v", err)
	}

	vp := c.Viewpoint()
	if !vecEquals(vp.Position, mgl64.Vec3{1, 0, 0}) {
		t.Errorf("Position: got %v, want (1,0,0)", vp.Position)
	}
	if !vecEquals(vp.Target, mgl64.Vec3{1, 0, 10}) {
		t.Errorf("Target: got %v, want (1,0,10)", vp.Target)
	}
}

func TestResetViewpoint(t *testing.T) {
	initial := obliqueViewpoint()
	c := newTestCamera(t, initial)

	c.ViewMode()
	_ = c.RotateHorizontally(33)
	_ = c.MoveForward(4)
	c.MoveUp(-2)
	_ = c.SetViewpoint(DefaultViewpoint())
	c.WalkMode()

	c.ResetViewpoint()

	if c.Viewpoint() != initial {
		t.Errorf("Viewpoint: got %+v, want %+v", c.Viewpoint(), initial)
	}
	if c.Mode() != ModeFly {
		t.Errorf("Mode: got %v, want fly", c.Mode())
	}
}

func TestUpVectorNeverChanges(t *testing.T) {
	vp := obliqueViewpoint()
	vp.Up = mgl64.Vec3{0.1, 0.9, 0.2}
	c := newTestCamera(t, vp)

	_ = c.RotateHorizontally(12)
	_ = c.RotateVertically(-7)
	_ = c.MoveForward(3)
	_ = c.MoveLeft(-1)
	c.MoveUp(2)

	if c.Viewpoint().Up != vp.Up {
		t.Errorf("Up: got %v, want %v", c.Viewpoint().Up, vp.Up)
	}
}

func TestStepAdjustment(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())

	c.IncreaseStep()
	if math.Abs(c.Step()-DefaultStep*StepFactor) > tolerance {
		t.Errorf("Step after increase: got %v", c.Step())
	}
	c.DecreaseStep()
	if math.Abs(c.Step()-DefaultStep) > tolerance {
		t.Errorf("Step after decrease: got %v", c.Step())
	}

	c.DecreaseAngle()
	if math.Abs(c.Angle()-DefaultAngle/StepFactor) > tolerance {
		t.Errorf("Angle after decrease: got %v", c.Angle())
	}
}

func TestScaled(t *testing.T) {
	c := newTestCamera(t, obliqueViewpoint())
	c.SetScale(2)

	s := c.Scaled()
	if s.Position != (mgl64.Vec3{2, 4, 6}) {
		t.Errorf("scaled Position: got %v", s.Position)
	}
	if s.Target != (mgl64.Vec3{8, 6, 18}) {
		t.Errorf("scaled Target: got %v", s.Target)
	}
	if s.Up != c.Viewpoint().Up {
		t.Errorf("Up was scaled: %v", s.Up)
	}
	if c.Viewpoint() != obliqueViewpoint() {
		t.Error("Scaled() mutated navigation state")
	}
}

func TestPrintViewpoint(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())
	c.WalkMode()

	var buf bytes.Buffer
	c.PrintViewpoint(&buf, "start")

	out := buf.String()
	for _, want := range []string{"CX", "UZ", "10.00", "walk", "start"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintViewpoint_HeaderOnce(t *testing.T) {
	c := newTestCamera(t, DefaultViewpoint())

	var buf bytes.Buffer
	c.PrintViewpoint(&buf, "")
	if err := c.MoveForward(1); err != nil {
		t.Fatal(err)
	}
	c.PrintViewpoint(&buf, "")

	out := buf.String()
	if n := strings.Count(out, "CX"); n != 1 {
		t.Errorf("header printed %d times:\n%s", n, out)
	}
	if n := strings.Count(out, "fly"); n != 2 {
		t.Errorf("expected two rows, got %d:\n%s", n, out)
	}
}
