package graphics

import (
	"errors"
	"fmt"
	"slices"

	"cogentcore.org/core/base/ordmap"

	"mini-gl/internal/gpu"
)

var (
	ErrMissingUniform   = errors.New("uniform not registered")
	ErrDuplicateUniform = errors.New("uniform already registered")
	ErrUniformSize      = errors.New("uniform value does not match its type")
)

// UniformType is the closed set of uniform shapes the registry can upload.
type UniformType int

const (
	Scalar UniformType = iota
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

// Components returns how many floats a value of type t holds.
func (t UniformType) Components() int {
	switch t {
	case Scalar:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4, Mat2:
		return 4
	case Mat3:
		return 9
	case Mat4:
		return 16
	default:
		return 0
	}
}

func (t UniformType) String() string {
	switch t {
	case Scalar:
		return "scalar"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat2:
		return "mat2"
	case Mat3:
		return "mat3"
	case Mat4:
		return "mat4"
	default:
		return fmt.Sprintf("UniformType(%d)", int(t))
	}
}

// UniformSpec is a typed uniform value without GPU state.
type UniformSpec struct {
	Type  UniformType
	Value []float32
}

// UniformSet maps uniform names to values. It is how instances are seeded
// and how shared values are handed to them each frame.
type UniformSet map[string]UniformSpec

// Clone returns a deep copy; values do not alias the receiver's.
func (s UniformSet) Clone() UniformSet {
	out := make(UniformSet, len(s))
	for name, spec := range s {
		out[name] = UniformSpec{Type: spec.Type, Value: slices.Clone(spec.Value)}
	}
	return out
}

// Uniform is a registered uniform bound to a program location.
type Uniform struct {
	Name     string
	Type     UniformType
	Value    []float32
	Location int32
}

// UniformRegistry holds the uniforms of one program in registration order.
type UniformRegistry struct {
	ctx      gpu.Context
	program  uint32
	uniforms *ordmap.Map[string, *Uniform]
}

// NewUniformRegistry returns an empty registry for program.
func NewUniformRegistry(ctx gpu.Context, program uint32) *UniformRegistry {
	return &UniformRegistry{
		ctx:      ctx,
		program:  program,
		uniforms: ordmap.New[string, *Uniform](),
	}
}

// Register resolves the location of name and stores a copy of spec's value.
func (r *UniformRegistry) Register(name string, spec UniformSpec) (*Uniform, error) {
	if _, ok := r.uniforms.ValueByKeyTry(name); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateUniform, name)
	}
	if err := checkSize(name, spec.Type, spec.Value); err != nil {
		return nil, err
	}
	u := &Uniform{
		Name:     name,
		Type:     spec.Type,
		Value:    slices.Clone(spec.Value),
		Location: r.ctx.UniformLocation(r.program, name),
	}
	r.uniforms.Add(name, u)
	return u, nil
}

// Get returns the named uniform.
func (r *UniformRegistry) Get(name string) (*Uniform, bool) {
	return r.uniforms.ValueByKeyTry(name)
}

// Set replaces the value of a registered uniform. The new value is uploaded
// on the next render.
func (r *UniformRegistry) Set(name string, value []float32) error {
	u, ok := r.uniforms.ValueByKeyTry(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingUniform, name)
	}
	if err := checkSize(name, u.Type, value); err != nil {
		return err
	}
	copy(u.Value, value)
	return nil
}

func (r *UniformRegistry) Len() int {
	return r.uniforms.Len()
}

// Names returns the registered names in registration order.
func (r *UniformRegistry) Names() []string {
	return r.uniforms.Keys()
}

// Upload sends the named uniform's value to the GPU.
func (r *UniformRegistry) Upload(name string) error {
	u, ok := r.uniforms.ValueByKeyTry(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingUniform, name)
	}
	return upload(r.ctx, u)
}

// UploadAll uploads every uniform in registration order.
func (r *UniformRegistry) UploadAll() error {
	for _, kv := range r.uniforms.Order {
		if err := upload(r.ctx, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// Broadcast copies the value of every shared uniform that is also registered
// here. Type and location are left alone, as are names only one side has.
func (r *UniformRegistry) Broadcast(shared UniformSet) error {
	for name, spec := range shared {
		u, ok := r.uniforms.ValueByKeyTry(name)
		if !ok {
			continue
		}
		if err := checkSize(name, u.Type, spec.Value); err != nil {
			return err
		}
		copy(u.Value, spec.Value)
	}
	return nil
}

// Matrices go up untransposed; mgl32 is already column-major.
func upload(ctx gpu.Context, u *Uniform) error {
	if err := checkSize(u.Name, u.Type, u.Value); err != nil {
		return err
	}
	switch u.Type {
	case Scalar:
		ctx.Uniform1fv(u.Location, u.Value)
	case Vec2:
		ctx.Uniform2fv(u.Location, u.Value)
	case Vec3:
		ctx.Uniform3fv(u.Location, u.Value)
	case Vec4:
		ctx.Uniform4fv(u.Location, u.Value)
	case Mat2:
		ctx.UniformMatrix2fv(u.Location, false, u.Value)
	case Mat3:
		ctx.UniformMatrix3fv(u.Location, false, u.Value)
	case Mat4:
		ctx.UniformMatrix4fv(u.Location, false, u.Value)
	}
	return nil
}

func checkSize(name string, t UniformType, value []float32) error {
	n := t.Components()
	if n == 0 || len(value) != n {
		return fmt.Errorf("%w: %q is %s, got %d values", ErrUniformSize, name, t, len(value))
	}
	return nil
}
