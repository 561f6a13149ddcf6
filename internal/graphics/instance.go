package graphics

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"mini-gl/internal/gpu"
)

var ErrReleased = errors.New("instance already destroyed")

// InstanceConfig describes one drawable.
//
// Zero values: Multiplier 0 draws a single copy, Mode 0 is gpu.Points, nil
// maps are empty. "position" and "normal" attributes of size 3 are added ahead
// of Attributes when Geometry has the data and Attributes does not name them.
type InstanceConfig struct {
	VertexSource   string
	FragmentSource string
	Geometry       Geometry
	Attributes     []AttributeSpec
	Mode           gpu.DrawMode
	Modifiers      map[string]Modifier
	Multiplier     int
	Uniforms       UniformSet
	// OnRender runs after the draw call, every frame.
	OnRender func(*Instance)
}

// Instance owns a program, its attribute buffers and its uniforms.
type Instance struct {
	ctx        gpu.Context
	program    uint32
	geometry   Geometry
	attributes []*Attribute
	modifiers  map[string]Modifier
	multiplier int
	mode       gpu.DrawMode
	uniforms   *UniformRegistry
	onRender   func(*Instance)
	diagnostic error
	released   bool
}

// NewInstance compiles the program, registers uniforms and builds and
// uploads every attribute buffer. A shader failure does not stop
// construction; it is kept in Diagnostic. Any other failure releases what
// was created and returns an error.
func NewInstance(ctx gpu.Context, cfg InstanceConfig) (*Instance, error) {
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = 1
	}
	if cfg.Multiplier < 0 {
		return nil, fmt.Errorf("%w: %d", ErrMultiplier, cfg.Multiplier)
	}
	if cfg.Modifiers == nil {
		cfg.Modifiers = map[string]Modifier{}
	}

	inst := &Instance{
		ctx:        ctx,
		geometry:   cfg.Geometry,
		modifiers:  cfg.Modifiers,
		multiplier: cfg.Multiplier,
		mode:       cfg.Mode,
		onRender:   cfg.OnRender,
	}

	inst.program, inst.diagnostic = CompileProgram(ctx, cfg.VertexSource, cfg.FragmentSource)
	inst.uniforms = NewUniformRegistry(ctx, inst.program)

	// sorted for a stable location assignment
	for _, name := range slices.Sorted(maps.Keys(cfg.Uniforms)) {
		if _, err := inst.uniforms.Register(name, cfg.Uniforms[name]); err != nil {
			inst.Destroy()
			return nil, err
		}
	}

	for _, spec := range attributeSpecs(cfg.Geometry, cfg.Attributes) {
		data, err := BuildAttribute(cfg.Geometry, spec, inst.multiplier, inst.modifiers[spec.Name], inst)
		if err != nil {
			inst.Destroy()
			return nil, err
		}
		a := &Attribute{Name: spec.Name, Size: spec.Size, Data: data}
		a.upload(ctx, inst.program)
		inst.attributes = append(inst.attributes, a)
	}
	return inst, nil
}

func attributeSpecs(g Geometry, specs []AttributeSpec) []AttributeSpec {
	named := make(map[string]bool, len(specs))
	for _, s := range specs {
		named[s.Name] = true
	}
	var out []AttributeSpec
	if len(g.Vertices) > 0 && !named[AttribPosition] {
		out = append(out, AttributeSpec{Name: AttribPosition, Size: 3})
	}
	if len(g.Normals) > 0 && !named[AttribNormal] {
		out = append(out, AttributeSpec{Name: AttribNormal, Size: 3})
	}
	return append(out, specs...)
}

// Render draws the instance: bind the program and attributes, take the
// shared values, upload all uniforms, draw Multiplier*VertexCount vertices,
// then run OnRender.
func (i *Instance) Render(shared UniformSet) error {
	if i.released {
		return ErrReleased
	}
	i.ctx.UseProgram(i.program)
	for _, a := range i.attributes {
		a.bind(i.ctx)
	}
	if err := i.uniforms.Broadcast(shared); err != nil {
		return err
	}
	if err := i.uniforms.UploadAll(); err != nil {
		return err
	}
	i.ctx.DrawArrays(i.mode, 0, int32(i.DrawCount()))
	if i.onRender != nil {
		i.onRender(i)
	}
	return nil
}

// Destroy deletes the attribute buffers and then the program. Calls after
// the first do nothing.
func (i *Instance) Destroy() {
	if i.released {
		return
	}
	i.released = true
	for _, a := range i.attributes {
		i.ctx.DeleteBuffer(a.Buffer)
	}
	i.ctx.DeleteProgram(i.program)
}

// Released reports whether Destroy has run.
func (i *Instance) Released() bool { return i.released }

// Diagnostic returns the shader compile or link error, if any.
func (i *Instance) Diagnostic() error { return i.diagnostic }

func (i *Instance) Program() uint32            { return i.program }
func (i *Instance) Mode() gpu.DrawMode         { return i.mode }
func (i *Instance) Multiplier() int            { return i.multiplier }
func (i *Instance) Geometry() Geometry         { return i.geometry }
func (i *Instance) VertexCount() int           { return i.geometry.VertexCount() }
func (i *Instance) Uniforms() *UniformRegistry { return i.uniforms }

// DrawCount is the number of vertices requested per draw.
func (i *Instance) DrawCount() int {
	return i.multiplier * i.geometry.VertexCount()
}

// Attributes returns the attributes in upload order.
func (i *Instance) Attributes() []*Attribute {
	return i.attributes
}

// Attribute returns the named attribute.
func (i *Instance) Attribute(name string) (*Attribute, bool) {
	for _, a := range i.attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
