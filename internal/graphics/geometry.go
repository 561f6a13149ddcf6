package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrGeometry = errors.New("invalid geometry")

// Geometry is an ordered list of vertex positions with optional per-vertex normals.
type Geometry struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
}

// VertexCount returns the number of vertices drawn per copy.
func (g Geometry) VertexCount() int {
	return len(g.Vertices)
}

// Validate checks that normals, when present, pair up with vertices.
func (g Geometry) Validate() error {
	if len(g.Normals) > 0 && len(g.Normals) != len(g.Vertices) {
		return fmt.Errorf("%w: %d normals for %d vertices", ErrGeometry, len(g.Normals), len(g.Vertices))
	}
	return nil
}

// Quad returns a unit quad in the XY plane as two triangles facing +Z.
func Quad() Geometry {
	v := []mgl32.Vec3{
		{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0},
		{0.5, 0.5, 0}, {-0.5, 0.5, 0}, {-0.5, -0.5, 0},
	}
	n := make([]mgl32.Vec3, len(v))
	for i := range n {
		n[i] = mgl32.Vec3{0, 0, 1}
	}
	return Geometry{Vertices: v, Normals: n}
}

// Cube returns a unit cube centered on the origin, 36 vertices with flat
// per-face normals, counter-clockwise winding.
func Cube() Geometry {
	g := Geometry{
		Vertices: make([]mgl32.Vec3, 0, 36),
		Normals:  make([]mgl32.Vec3, 0, 36),
	}
	for i := 0; i < len(cubeData); i += 6 {
		g.Vertices = append(g.Vertices, mgl32.Vec3{cubeData[i], cubeData[i+1], cubeData[i+2]})
		g.Normals = append(g.Normals, mgl32.Vec3{cubeData[i+3], cubeData[i+4], cubeData[i+5]})
	}
	return g
}

// position xyz, normal xyz
var cubeData = []float32{
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	0.5, 0.5, -0.5, 0, 0, -1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, -0.5, -1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
}
