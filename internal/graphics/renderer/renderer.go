package renderer

import (
	"errors"
	"fmt"

	"cogentcore.org/core/base/ordmap"

	"mini-gl/internal/gpu"
	"mini-gl/internal/graphics"
	"mini-gl/internal/profiling"
)

var (
	ErrDuplicateKey = errors.New("instance key already registered")
	ErrNoContext    = errors.New("renderer needs a graphics context and a target")
)

// Target reports the logical size of the surface being drawn to.
type Target interface {
	Size() (width, height int)
}

// Config configures a Renderer.
type Config struct {
	Context  gpu.Context
	Target   Target
	Settings Settings
	// Debug returns shader diagnostics from Add instead of only logging them.
	Debug bool
	// OnSetup runs once after the default GL state is set.
	OnSetup func(gpu.Context)
	// OnRender runs after every instance has drawn, each frame.
	OnRender func(*Renderer)
}

// Renderer owns the shared camera uniforms and draws its instances each
// frame in the order they were added. It is not safe for concurrent use;
// all calls belong on the thread that owns the graphics context.
type Renderer struct {
	ctx      gpu.Context
	target   Target
	settings Settings
	debug    bool
	onRender func(*Renderer)

	transforms Transforms
	uniforms   graphics.UniformSet
	instances  *ordmap.Map[string, *graphics.Instance]

	running bool
	frames  int
}

// New configures the context, computes the shared transforms and returns a
// renderer in the running state.
func New(cfg Config) (*Renderer, error) {
	if cfg.Context == nil || cfg.Target == nil {
		return nil, ErrNoContext
	}

	// Configure OpenGL
	cfg.Context.Enable(gpu.DepthTest)
	if cfg.OnSetup != nil {
		cfg.OnSetup(cfg.Context)
	}

	r := &Renderer{
		ctx:       cfg.Context,
		target:    cfg.Target,
		settings:  cfg.Settings.withDefaults(),
		debug:     cfg.Debug,
		onRender:  cfg.OnRender,
		instances: ordmap.New[string, *graphics.Instance](),
		running:   true,
	}
	r.Resize()
	return r, nil
}

// Resize recomputes the viewport and the shared projection, view and model
// matrices from the target size and the settings.
func (r *Renderer) Resize() {
	w, h := r.target.Size()
	dpr := r.settings.DevicePixelRatio
	bw, bh := int32(float32(w)*dpr), int32(float32(h)*dpr)
	r.ctx.Viewport(0, 0, bw, bh)

	ratio := float32(1)
	if bh > 0 {
		ratio = float32(bw) / float32(bh)
	}
	r.transforms = computeTransforms(r.settings, ratio)
	r.uniforms = r.transforms.uniformSet()
}

// Settings returns the effective settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// SetSettings replaces the settings and recomputes the transforms.
func (r *Renderer) SetSettings(s Settings) {
	r.settings = s.withDefaults()
	r.Resize()
}

// SetCamera moves the camera. Instances see the change on the next frame.
func (r *Renderer) SetCamera(p Position) {
	r.settings.Camera = p
	r.Resize()
}

// Transforms returns the current shared matrices.
func (r *Renderer) Transforms() Transforms {
	return r.transforms
}

// Uniforms returns a copy of the shared uniform set.
func (r *Renderer) Uniforms() graphics.UniformSet {
	return r.uniforms.Clone()
}

// Add builds an instance and registers it under key. The instance starts
// with a copy of the current shared uniforms, overlaid by cfg.Uniforms;
// later changes reach it only through the per-frame broadcast.
//
// A shader diagnostic does not prevent registration. In debug mode it is
// returned together with the registered instance.
func (r *Renderer) Add(key string, cfg graphics.InstanceConfig) (*graphics.Instance, error) {
	if _, ok := r.instances.ValueByKeyTry(key); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	uniforms := r.uniforms.Clone()
	for name, spec := range cfg.Uniforms {
		uniforms[name] = spec
	}
	cfg.Uniforms = uniforms

	inst, err := graphics.NewInstance(r.ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("add %q: %w", key, err)
	}
	r.instances.Add(key, inst)
	graphics.Logger().Info("instance added", "key", key, "vertices", inst.DrawCount(), "attributes", len(inst.Attributes()))

	if diag := inst.Diagnostic(); diag != nil {
		if r.debug {
			graphics.Logger().Error("shader diagnostic", "key", key, "err", diag)
			return inst, fmt.Errorf("add %q: %w", key, diag)
		}
		graphics.Logger().Debug("shader diagnostic ignored", "key", key, "err", diag)
	}
	return inst, nil
}

// Get returns the instance registered under key.
func (r *Renderer) Get(key string) (*graphics.Instance, bool) {
	return r.instances.ValueByKeyTry(key)
}

// Remove destroys and unregisters the instance under key. Unknown keys are ignored.
func (r *Renderer) Remove(key string) {
	inst, ok := r.instances.ValueByKeyTry(key)
	if !ok {
		return
	}
	inst.Destroy()
	r.instances.DeleteKey(key)
	graphics.Logger().Info("instance removed", "key", key)
}

// Len returns the number of registered instances.
func (r *Renderer) Len() int {
	return r.instances.Len()
}

// Keys returns the instance keys in render order.
func (r *Renderer) Keys() []string {
	return r.instances.Keys()
}

// Frames returns how many frames have been rendered.
func (r *Renderer) Frames() int {
	return r.frames
}

// RenderFrame clears the target, draws every instance in insertion order
// with the shared uniforms and runs OnRender. An instance that fails does not
// stop the others; the failures are joined.
func (r *Renderer) RenderFrame() error {
	defer profiling.Track("renderer.RenderFrame")()

	c := r.settings.ClearColor
	r.ctx.ClearColor(c[0], c[1], c[2], c[3])
	r.ctx.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)

	var errs []error
	for _, kv := range r.instances.Order {
		if err := r.renderInstance(kv.Key, kv.Value); err != nil {
			errs = append(errs, err)
		}
	}
	if r.onRender != nil {
		r.onRender(r)
	}
	r.frames++
	return errors.Join(errs...)
}

func (r *Renderer) renderInstance(key string, inst *graphics.Instance) error {
	defer profiling.Track("instance." + key)()
	if err := inst.Render(r.uniforms); err != nil {
		return fmt.Errorf("render %q: %w", key, err)
	}
	return nil
}

// Running reports whether the frame loop should keep drawing.
func (r *Renderer) Running() bool {
	return r.running
}

// SetRunning starts or stops the frame loop. Starting a stopped renderer
// draws one frame immediately; setting the current state does nothing.
func (r *Renderer) SetRunning(running bool) error {
	if running == r.running {
		return nil
	}
	r.running = running
	graphics.Logger().Info("renderer state changed", "running", running)
	if running {
		return r.RenderFrame()
	}
	return nil
}

// Toggle flips the running state.
func (r *Renderer) Toggle() error {
	return r.SetRunning(!r.running)
}

// Destroy destroys every instance, then stops the loop.
func (r *Renderer) Destroy() {
	for _, key := range r.instances.Keys() {
		r.Remove(key)
	}
	r.running = false
}
