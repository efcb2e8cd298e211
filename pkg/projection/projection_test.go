package projection

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/go-viewsync/pkg/navigation"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestHostTransform(t *testing.T) {
	tests := []struct {
		host  string
		known bool
		in    mgl32.Vec4
		want  mgl32.Vec4
	}{
		{"right-server", true, mgl32.Vec4{1, 2, 3, 1}, mgl32.Vec4{1, 2, 3, 1}},
		{"left-server", true, mgl32.Vec4{1, 2, 3, 1}, mgl32.Vec4{1.08, 2, 3, 1}},
		{"cseenil1", true, mgl32.Vec4{0, 0, -1, 1}, mgl32.Vec4{-1, 0, 0, 1}},
		{"cseenil3", true, mgl32.Vec4{0, 0, -1, 1}, mgl32.Vec4{1, 0, 0, 1}},
		{"laptop", false, mgl32.Vec4{1, 2, 3, 1}, mgl32.Vec4{1, 2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			m, ok := HostTransform(tt.host)
			if ok != tt.known {
				t.Errorf("known: got %v, want %v", ok, tt.known)
			}
			got := m.Mul4x1(tt.in)
			for i := range got {
				if !near(got[i], tt.want[i]) {
					t.Fatalf("transform %v: got %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestView_LooksAlongTarget(t *testing.T) {
	vp := navigation.Viewpoint{
		Position: mgl64.Vec3{0, 0, 0},
		Target:   mgl64.Vec3{0, 0, 10},
		Up:       mgl64.Vec3{0, 1, 0},
	}
	view := View(vp, mgl32.Ident4())

	// The target lies straight ahead, on the negative z axis of eye space
	eye := view.Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	if !near(eye[0], 0) || !near(eye[1], 0) || !near(eye[2], -10) {
		t.Errorf("target in eye space: got %v", eye)
	}
}

func TestView_AppliesHostAfterLookAt(t *testing.T) {
	vp := navigation.DefaultViewpoint()
	host, _ := HostTransform("left-server")

	plain := View(vp, mgl32.Ident4()).Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	shifted := View(vp, host).Mul4x1(mgl32.Vec4{0, 0, 10, 1})

	if !near(shifted[0]-plain[0], 0.08) {
		t.Errorf("eye-space shift: got %v", shifted[0]-plain[0])
	}
}

func TestPerspective(t *testing.T) {
	p := NewPerspective(640, 480)

	if w, h := p.Size(); w != 640 || h != 480 {
		t.Errorf("Size: got %dx%d", w, h)
	}

	aspect := float32(640) / 480
	want := mgl32.Perspective(mgl32.DegToRad(DefaultFOV/aspect), aspect, DefaultNear, DefaultFar)
	if !p.Matrix().ApproxEqual(want) {
		t.Errorf("Matrix: got %v, want %v", p.Matrix(), want)
	}

	before := p.Matrix()
	p.Resize(0, 480)
	if p.Matrix() != before {
		t.Error("zero-width resize changed the matrix")
	}

	p.Resize(1280, 480)
	if p.Matrix() == before {
		t.Error("resize did not change the matrix")
	}
}
