package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-gl/internal/gpu"
	"mini-gl/internal/gpu/gputest"
	"mini-gl/internal/graphics"
)

type size struct{ w, h int }

func (s *size) Size() (int, int) { return s.w, s.h }

func newTestRenderer(t *testing.T, w, h int) (*Renderer, *gputest.Context, *size) {
	t.Helper()
	ctx := gputest.New()
	target := &size{w, h}
	r, err := New(Config{
		Context:  ctx,
		Target:   target,
		Settings: Settings{Camera: Position{X: 0, Y: 0, Z: 3}},
	})
	require.NoError(t, err)
	return r, ctx, target
}

func triangle() graphics.InstanceConfig {
	return graphics.InstanceConfig{
		Geometry: graphics.Geometry{
			Vertices: []mgl32.Vec3{{0, 1, 0}, {-1, -1, 0}, {1, -1, 0}},
		},
		Mode: gpu.Triangles,
	}
}

func TestNewRequiresContext(t *testing.T) {
	_, err := New(Config{Target: &size{1, 1}})
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestNewSetsUp(t *testing.T) {
	ctx := gputest.New()
	setup := 0
	r, err := New(Config{
		Context: ctx,
		Target:  &size{200, 100},
		Settings: Settings{
			DevicePixelRatio: 2,
		},
		OnSetup: func(c gpu.Context) { setup++ },
	})
	require.NoError(t, err)

	assert.Equal(t, 1, setup)
	assert.True(t, r.Running())
	assert.Equal(t, int32(400), ctx.ViewportW)
	assert.Equal(t, int32(200), ctx.ViewportH)
	assert.Equal(t, float32(0.1), r.Settings().ClipNear)
	assert.Equal(t, float32(100), r.Settings().ClipFar)
	assert.Equal(t, float32(60), r.Settings().FieldOfView)
}

func TestClipFarFallback(t *testing.T) {
	tests := []struct {
		name      string
		near, far float32
		want      float32
	}{
		{"unset", 0, 0, 100},
		{"far kept", 1, 50, 50},
		{"far below near", 10, 5, 100},
		{"near past default far", 200, 150, 200000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settings{ClipNear: tt.near, ClipFar: tt.far}.withDefaults()
			assert.Equal(t, tt.want, got.ClipFar)
			assert.Greater(t, got.ClipFar, got.ClipNear)
		})
	}
}

func TestResizeModelDepth(t *testing.T) {
	r, _, target := newTestRenderer(t, 100, 100)
	assert.Equal(t, float32(-3), r.Transforms().Model[14], "ratio 1")

	target.w = 200
	r.Resize()
	assert.Equal(t, float32(-6), r.Transforms().Model[14], "ratio 2")

	target.w, target.h = 100, 200
	r.Resize()
	assert.Equal(t, float32(-3), r.Transforms().Model[14], "portrait is unscaled")

	want := mgl32.Perspective(mgl32.DegToRad(60), 0.5, 0.1, 100)
	assert.Equal(t, want, r.Transforms().Projection)
}

func TestResizeIdempotent(t *testing.T) {
	r, _, _ := newTestRenderer(t, 640, 480)
	first := r.Uniforms()
	r.Resize()
	assert.Equal(t, first, r.Uniforms())
}

func TestResizeZeroHeight(t *testing.T) {
	r, _, _ := newTestRenderer(t, 640, 0)
	assert.Equal(t, float32(-3), r.Transforms().Model[14])
}

func TestRemoveAbsentKey(t *testing.T) {
	r, _, _ := newTestRenderer(t, 100, 100)
	_, err := r.Add("a", triangle())
	require.NoError(t, err)

	r.Remove("missing")
	assert.Equal(t, 1, r.Len())
}

func TestAddDuplicateKey(t *testing.T) {
	r, _, _ := newTestRenderer(t, 100, 100)
	_, err := r.Add("a", triangle())
	require.NoError(t, err)

	_, err = r.Add("a", triangle())
	assert.ErrorIs(t, err, ErrDuplicateKey)

	r.Remove("a")
	_, err = r.Add("a", triangle())
	assert.NoError(t, err)
}

func TestAddFillsUniforms(t *testing.T) {
	r, _, _ := newTestRenderer(t, 100, 100)
	cfg := triangle()
	cfg.Uniforms = graphics.UniformSet{"uColor": {Type: graphics.Vec3, Value: []float32{1, 0, 0}}}

	inst, err := r.Add("a", cfg)
	require.NoError(t, err)
	// registered in name order
	assert.Equal(t, []string{"uColor", UniformModel, UniformProjection, UniformView}, inst.Uniforms().Names())

	bare, err := r.Add("b", triangle())
	require.NoError(t, err)
	assert.Equal(t, 3, bare.Uniforms().Len())
}

func TestAddShaderDiagnostic(t *testing.T) {
	r, ctx, _ := newTestRenderer(t, 100, 100)
	ctx.CompileFailures[gpu.FragmentShader] = "bad"

	inst, err := r.Add("quiet", triangle())
	require.NoError(t, err)
	assert.ErrorIs(t, inst.Diagnostic(), graphics.ErrCompile)

	r.debug = true
	inst, err = r.Add("loud", triangle())
	assert.ErrorIs(t, err, graphics.ErrCompile)
	require.NotNil(t, inst)
	assert.Equal(t, 2, r.Len())
}

func TestAddBuildFailure(t *testing.T) {
	r, _, _ := newTestRenderer(t, 100, 100)
	cfg := triangle()
	cfg.Attributes = []graphics.AttributeSpec{{Name: "color", Size: 3}}

	_, err := r.Add("a", cfg)
	assert.ErrorIs(t, err, graphics.ErrAttributeSource)
	assert.Zero(t, r.Len())
}

func TestRenderFrameOrder(t *testing.T) {
	r, ctx, _ := newTestRenderer(t, 100, 100)
	keys := []string{"c", "a", "b"}
	for _, k := range keys {
		_, err := r.Add(k, triangle())
		require.NoError(t, err)
	}
	hooked := 0
	r.onRender = func(*Renderer) { hooked++ }

	ctx.Reset()
	require.NoError(t, r.RenderFrame())

	assert.Equal(t, 1, ctx.Clears)
	require.Len(t, ctx.Draws, 3)
	for i, k := range keys {
		inst, _ := r.Get(k)
		assert.Equal(t, inst.Program(), ctx.Draws[i].Program, "draw %d is %q", i, k)
		assert.Equal(t, int32(3), ctx.Draws[i].Count)
	}
	assert.Equal(t, keys, r.Keys())
	assert.Equal(t, 1, hooked)
}

func TestRenderFrameContinuesPastFailure(t *testing.T) {
	r, ctx, _ := newTestRenderer(t, 100, 100)
	a, err := r.Add("a", triangle())
	require.NoError(t, err)
	_, err = r.Add("b", triangle())
	require.NoError(t, err)

	// destroyed behind the renderer's back
	a.Destroy()
	ctx.Reset()
	err = r.RenderFrame()
	assert.ErrorIs(t, err, graphics.ErrReleased)
	assert.Len(t, ctx.Draws, 1)
}

func TestSetRunning(t *testing.T) {
	r, _, _ := newTestRenderer(t, 100, 100)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.RenderFrame())
	}

	require.NoError(t, r.SetRunning(false))
	require.NoError(t, r.SetRunning(false))
	assert.False(t, r.Running())
	assert.Equal(t, 3, r.Frames())

	require.NoError(t, r.SetRunning(true))
	assert.True(t, r.Running())
	assert.Equal(t, 4, r.Frames(), "starting draws exactly one frame")

	require.NoError(t, r.SetRunning(true))
	assert.Equal(t, 4, r.Frames())
}

func TestToggle(t *testing.T) {
	r, _, _ := newTestRenderer(t, 100, 100)
	require.NoError(t, r.Toggle())
	assert.False(t, r.Running())
	require.NoError(t, r.Toggle())
	assert.True(t, r.Running())
	assert.Equal(t, 1, r.Frames())
}

func TestDestroy(t *testing.T) {
	r, ctx, _ := newTestRenderer(t, 100, 100)
	for _, k := range []string{"a", "b"} {
		_, err := r.Add(k, triangle())
		require.NoError(t, err)
	}
	r.Destroy()

	assert.Zero(t, r.Len())
	assert.False(t, r.Running())
	assert.Empty(t, ctx.Buffers)
	assert.Empty(t, ctx.Programs)
}

func TestSnapshotPropagatesOnlyOnRender(t *testing.T) {
	r, ctx, _ := newTestRenderer(t, 100, 100)
	cfg := triangle()
	cfg.Multiplier = 2
	cfg.Geometry.Normals = []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}

	inst, err := r.Add("a", cfg)
	require.NoError(t, err)

	for _, a := range inst.Attributes() {
		assert.Len(t, a.Data, 2*3*3, a.Name)
	}
	assert.Equal(t, 6, inst.DrawCount())

	model := func() []float32 {
		u, ok := inst.Uniforms().Get(UniformModel)
		require.True(t, ok)
		return u.Value
	}
	assert.Equal(t, r.Uniforms()[UniformModel].Value, model())
	assert.Equal(t, float32(-3), model()[14])

	r.SetCamera(Position{Z: 5})
	assert.Equal(t, float32(-5), r.Transforms().Model[14])
	assert.Equal(t, float32(-3), model()[14], "no aliasing before the next frame")

	require.NoError(t, r.RenderFrame())
	assert.Equal(t, float32(-5), model()[14])

	uploaded, ok := ctx.UniformByName(UniformModel)
	require.True(t, ok)
	assert.Equal(t, float32(-5), uploaded[14])
}
