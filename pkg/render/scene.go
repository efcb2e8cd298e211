package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/go-viewsync/internal/openglhelper"
)

const vertexShader = `
#version 460 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 FragPos;
out vec3 Normal;

void main() {
    FragPos = vec3(model * vec4(aPos, 1.0));
    Normal = mat3(transpose(inverse(model))) * aNormal;
    gl_Position = projection * view * vec4(FragPos, 1.0);
}
`

const fragmentShader = `
#version 460 core
in vec3 FragPos;
in vec3 Normal;

uniform vec4 color;
uniform vec3 lightPos;
uniform vec3 lightColor;

out vec4 FragColor;

void main() {
    vec3 ambient = 0.25 * lightColor;
    vec3 norm = normalize(Normal);
    vec3 lightDir = normalize(lightPos - FragPos);
    vec3 diffuse = max(dot(norm, lightDir), 0.0) * lightColor;
    FragColor = vec4((ambient + diffuse) * color.rgb, color.a);
}
`

// pillar is one box of the demo scene
type pillar struct {
	model mgl32.Mat4
	color mgl32.Vec4
}

// Scene is a field of lit pillars laid out on a grid. The layout depends only
// on constants so every display draws the same world.
type Scene struct {
	shader  *openglhelper.Shader
	cube    *openglhelper.Mesh
	pillars []pillar
}

// NewScene compiles the shaders and uploads the geometry. It needs a current
// OpenGL context.
func NewScene() (*Scene, error) {
	shader, err := openglhelper.NewShader(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene shader: %w", err)
	}

	return &Scene{
		shader:  shader,
		cube:    openglhelper.NewCube(),
		pillars: layoutPillars(),
	}, nil
}

// layoutPillars places a (2n+1)x(2n+1) grid in the xz-plane. Heights and
// colours vary with the grid cell so the viewer can tell where it is.
func layoutPillars() []pillar {
	side := 2*gridHalf + 1
	out := make([]pillar, 0, side*side)
	for i := -gridHalf; i <= gridHalf; i++ {
		for k := -gridHalf; k <= gridHalf; k++ {
			height := float32(1 + (i*i+k*k)%5)
			x := float32(i) * gridSpacing
			z := float32(k) * gridSpacing

			model := mgl32.Translate3D(x, groundLevel+height/2, z).Mul4(mgl32.Scale3D(1, height, 1))

			u := float32(i+gridHalf) / float32(side-1)
			v := float32(k+gridHalf) / float32(side-1)
			out = append(out, pillar{
				model: model,
				color: mgl32.Vec4{0.3 + 0.7*u, 0.4, 0.3 + 0.7*v, 1},
			})
		}
	}
	return out
}

// Draw renders the scene with the given camera matrices
func (s *Scene) Draw(view, projection mgl32.Mat4) {
	s.shader.Use()
	s.shader.SetMat4("view", view)
	s.shader.SetMat4("projection", projection)
	s.shader.SetVec3("lightPos", lightPos)
	s.shader.SetVec3("lightColor", lightColor)

	for _, p := range s.pillars {
		s.shader.SetMat4("model", p.model)
		s.shader.SetVec4("color", p.color)
		s.cube.Draw()
	}
}

// Delete releases the GPU resources
func (s *Scene) Delete() {
	s.cube.Delete()
	s.shader.Delete()
}
