package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-gl/internal/graphics"
)

// Shared uniform names written by Resize and broadcast to every instance.
const (
	UniformProjection = "uProjectionMatrix"
	UniformView       = "uViewMatrix"
	UniformModel      = "uModelMatrix"
)

// Transforms holds the shared camera matrices.
type Transforms struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4
}

// computeTransforms builds the camera matrices for a viewport of the given
// aspect ratio. The model matrix pushes geometry back by the camera depth,
// scaled by the ratio on landscape viewports, so objects keep their apparent
// size as the viewport widens.
func computeTransforms(s Settings, ratio float32) Transforms {
	depth := s.Camera.Z
	if ratio >= 1 {
		depth *= ratio
	}
	return Transforms{
		Projection: mgl32.Perspective(mgl32.DegToRad(s.FieldOfView), ratio, s.ClipNear, s.ClipFar),
		View:       mgl32.Translate3D(-s.Camera.X, -s.Camera.Y, 0),
		Model:      mgl32.Translate3D(0, 0, -depth),
	}
}

// uniformSet returns the transforms as Mat4 uniforms. Values are fresh slices.
func (t Transforms) uniformSet() graphics.UniformSet {
	mat := func(m mgl32.Mat4) graphics.UniformSpec {
		v := make([]float32, 16)
		copy(v, m[:])
		return graphics.UniformSpec{Type: graphics.Mat4, Value: v}
	}
	return graphics.UniformSet{
		UniformProjection: mat(t.Projection),
		UniformView:       mat(t.View),
		UniformModel:      mat(t.Model),
	}
}
