package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// floatsPerVertex is the interleaved layout: position (3) + normal (3)
const floatsPerVertex = 6

// Mesh is an indexed triangle mesh with interleaved positions and normals
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewMesh uploads vertices and indices. Attribute 0 is the position and
// attribute 1 the normal.
func NewMesh(vertices []float32, indices []uint32) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices, StaticDraw)
	ebo := NewEBO(indices, StaticDraw)

	stride := int32(floatsPerVertex * 4)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, stride, 0)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, stride, 3*4)

	vao.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(indices)),
	}
}

// Draw renders the mesh with whatever program is in use
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// NewCube creates a unit cube centred on the origin
func NewCube() *Mesh {
	vertices, indices := CubeGeometry()
	return NewMesh(vertices, indices)
}

// CubeGeometry returns the unit cube as 24 vertices (four per face, so that
// each face has its own normal) and 36 counter-clockwise indices.
func CubeGeometry() ([]float32, []uint32) {
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	}

	vertices := make([]float32, 0, len(faces)*4*floatsPerVertex)
	indices := make([]uint32, 0, len(faces)*6)
	for i, f := range faces {
		for _, c := range f.corners {
			vertices = append(vertices, c[0], c[1], c[2], f.normal[0], f.normal[1], f.normal[2])
		}
		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return vertices, indices
}
