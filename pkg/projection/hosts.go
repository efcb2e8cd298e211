package projection

import "github.com/go-gl/mathgl/mgl32"

// DefaultHost is the display whose transform is the identity. Every other
// display is placed relative to it.
const DefaultHost = "right-server"

// hostTransforms are column-major, as OpenGL expects them
var hostTransforms = map[string]mgl32.Mat4{
	// left eye, offset by the interocular distance
	"left-server": {
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0.08, 0, 0, 1,
	},
	DefaultHost: mgl32.Ident4(),
	// side walls, turned a quarter each way
	"cseenil1": {
		0, 0, -1, 0,
		0, 1, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 1,
	},
	"cseenil3": {
		0, 0, 1, 0,
		0, 1, 0, 0,
		-1, 0, 0, 0,
		0, 0, 0, 1,
	},
}

// HostTransform returns the display transform for host and whether host is a
// known display. Unknown hosts get the identity.
func HostTransform(host string) (mgl32.Mat4, bool) {
	m, ok := hostTransforms[host]
	if !ok {
		return mgl32.Ident4(), false
	}
	return m, true
}
