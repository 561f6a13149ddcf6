package graphics

import (
	"errors"
	"fmt"

	"mini-gl/internal/gpu"
)

// Built-in attribute names resolved from Geometry.
const (
	AttribPosition = "position"
	AttribNormal   = "normal"
)

var (
	ErrAttributeSource = errors.New("attribute has no value source")
	ErrSourceLength    = errors.New("attribute source returned too few components")
	ErrAttributeSize   = errors.New("attribute size must be 1..4")
	ErrMultiplier      = errors.New("multiplier must be at least 1")
)

// SourceFunc yields the per-copy component values of an attribute. It is
// called once per copy and its result is broadcast to every vertex of that copy.
type SourceFunc func(copyIndex, multiplier int) []float32

// Modifier overrides value resolution for one attribute. data is the
// per-copy SourceFunc result, or nil when the attribute has no source.
type Modifier func(data []float32, vertex, component int, inst *Instance) float32

// AttributeSpec describes an attribute to synthesize.
type AttributeSpec struct {
	Name   string
	Size   int
	Source SourceFunc
}

// Attribute is a synthesized attribute and the GPU buffer holding it.
type Attribute struct {
	Name     string
	Size     int
	Data     []float32
	Buffer   uint32
	Location int32
}

// BuildAttribute synthesizes the flat buffer for spec, replicated multiplier
// times. Layout is copy-major, then vertex, then component, so copy c starts
// at c*VertexCount()*Size. Per value, the first match wins: mod, the geometry
// position or normal for the built-in names, the per-copy source data.
func BuildAttribute(g Geometry, spec AttributeSpec, multiplier int, mod Modifier, owner *Instance) ([]float32, error) {
	if multiplier < 1 {
		return nil, fmt.Errorf("%w: %d", ErrMultiplier, multiplier)
	}
	if spec.Size < 1 || spec.Size > 4 {
		return nil, fmt.Errorf("%w: %q has size %d", ErrAttributeSize, spec.Name, spec.Size)
	}
	if mod == nil {
		if err := checkSource(g, spec); err != nil {
			return nil, err
		}
	}

	vertexCount := g.VertexCount()
	out := make([]float32, 0, multiplier*vertexCount*spec.Size)

	for copyIndex := 0; copyIndex < multiplier; copyIndex++ {
		var data []float32
		if spec.Source != nil {
			data = spec.Source(copyIndex, multiplier)
		}
		if mod == nil && !isBuiltin(spec.Name) && len(data) < spec.Size {
			return nil, fmt.Errorf("%w: %q copy %d gave %d of %d", ErrSourceLength, spec.Name, copyIndex, len(data), spec.Size)
		}
		for vertex := 0; vertex < vertexCount; vertex++ {
			for component := 0; component < spec.Size; component++ {
				out = append(out, resolve(g, spec.Name, data, vertex, component, mod, owner))
			}
		}
	}
	return out, nil
}

func resolve(g Geometry, name string, data []float32, vertex, component int, mod Modifier, owner *Instance) float32 {
	switch {
	case mod != nil:
		return mod(data, vertex, component, owner)
	case name == AttribPosition:
		return coord(g.Vertices[vertex][:], component)
	case name == AttribNormal:
		return coord(g.Normals[vertex][:], component)
	default:
		return data[component]
	}
}

// coord reads past the third component as zero.
func coord(v []float32, component int) float32 {
	if component < len(v) {
		return v[component]
	}
	return 0
}

func isBuiltin(name string) bool {
	return name == AttribPosition || name == AttribNormal
}

func checkSource(g Geometry, spec AttributeSpec) error {
	switch spec.Name {
	case AttribPosition:
		// vertex count is defined by the positions
	case AttribNormal:
		if len(g.Normals) != g.VertexCount() {
			return fmt.Errorf("%w: %q needs geometry normals", ErrAttributeSource, spec.Name)
		}
	default:
		if spec.Source == nil {
			return fmt.Errorf("%w: %q needs a source or modifier", ErrAttributeSource, spec.Name)
		}
	}
	return nil
}

// upload creates the buffer, fills it and binds it at the location the
// program assigns to the attribute name.
func (a *Attribute) upload(ctx gpu.Context, program uint32) {
	a.Buffer = ctx.CreateBuffer()
	ctx.BufferData(a.Buffer, a.Data)
	a.Location = ctx.AttribLocation(program, a.Name)
	if a.Location < 0 {
		Logger().Warn("attribute not active in program", "attribute", a.Name, "program", program)
		return
	}
	Logger().Debug("attribute uploaded", "attribute", a.Name, "floats", len(a.Data), "location", a.Location)
	a.bind(ctx)
}

func (a *Attribute) bind(ctx gpu.Context) {
	if a.Location < 0 {
		return
	}
	ctx.VertexAttrib(a.Buffer, a.Location, int32(a.Size))
}
