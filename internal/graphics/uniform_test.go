package graphics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-gl/internal/gpu/gputest"
)

func TestUniformTypeComponents(t *testing.T) {
	want := map[UniformType]int{
		Scalar: 1, Vec2: 2, Vec3: 3, Vec4: 4, Mat2: 4, Mat3: 9, Mat4: 16,
	}
	for typ, n := range want {
		assert.Equal(t, n, typ.Components(), typ.String())
	}
	assert.Zero(t, UniformType(99).Components())
}

func TestRegisterValidates(t *testing.T) {
	r := NewUniformRegistry(gputest.New(), 1)

	_, err := r.Register("uTime", UniformSpec{Type: Scalar, Value: []float32{0}})
	require.NoError(t, err)

	_, err = r.Register("uTime", UniformSpec{Type: Scalar, Value: []float32{1}})
	assert.ErrorIs(t, err, ErrDuplicateUniform)

	_, err = r.Register("uModel", UniformSpec{Type: Mat4, Value: make([]float32, 9)})
	assert.ErrorIs(t, err, ErrUniformSize)

	assert.Equal(t, 1, r.Len())
}

func TestRegisterCopiesValue(t *testing.T) {
	r := NewUniformRegistry(gputest.New(), 1)
	v := []float32{1, 2, 3}
	u, err := r.Register("uColor", UniformSpec{Type: Vec3, Value: v})
	require.NoError(t, err)

	v[0] = 9
	assert.Equal(t, []float32{1, 2, 3}, u.Value)
}

func TestUploadDispatch(t *testing.T) {
	ctx := gputest.New()
	r := NewUniformRegistry(ctx, 1)
	specs := []struct {
		name string
		spec UniformSpec
		call string
	}{
		{"a", UniformSpec{Scalar, make([]float32, 1)}, "Uniform1fv"},
		{"b", UniformSpec{Vec2, make([]float32, 2)}, "Uniform2fv"},
		{"c", UniformSpec{Vec3, make([]float32, 3)}, "Uniform3fv"},
		{"d", UniformSpec{Vec4, make([]float32, 4)}, "Uniform4fv"},
		{"e", UniformSpec{Mat2, make([]float32, 4)}, "UniformMatrix2fv"},
		{"f", UniformSpec{Mat3, make([]float32, 9)}, "UniformMatrix3fv"},
		{"g", UniformSpec{Mat4, make([]float32, 16)}, "UniformMatrix4fv"},
	}
	for _, s := range specs {
		_, err := r.Register(s.name, s.spec)
		require.NoError(t, err)
	}

	ctx.Reset()
	require.NoError(t, r.UploadAll())

	var got []string
	for _, c := range ctx.Calls {
		got = append(got, c.Name)
		if strings.HasPrefix(c.Name, "UniformMatrix") {
			assert.Equal(t, false, c.Args[1], "%s transposed", c.Name)
		}
	}
	want := make([]string, len(specs))
	for i, s := range specs {
		want[i] = s.call
	}
	assert.Equal(t, want, got)
}

func TestUploadMissingUniform(t *testing.T) {
	r := NewUniformRegistry(gputest.New(), 1)
	err := r.Upload("uNope")
	assert.ErrorIs(t, err, ErrMissingUniform)
	assert.ErrorIs(t, r.Set("uNope", []float32{1}), ErrMissingUniform)
}

func TestBroadcast(t *testing.T) {
	ctx := gputest.New()
	r := NewUniformRegistry(ctx, 1)
	proj, err := r.Register("uProjectionMatrix", UniformSpec{Type: Mat4, Value: make([]float32, 16)})
	require.NoError(t, err)
	own, err := r.Register("uColor", UniformSpec{Type: Vec3, Value: []float32{1, 0, 0}})
	require.NoError(t, err)
	loc := proj.Location

	next := make([]float32, 16)
	next[0], next[15] = 2, 1
	shared := UniformSet{
		"uProjectionMatrix": {Type: Mat4, Value: next},
		"uNotHere":          {Type: Scalar, Value: []float32{5}},
	}
	require.NoError(t, r.Broadcast(shared))

	assert.Equal(t, next, proj.Value)
	assert.Equal(t, Mat4, proj.Type)
	assert.Equal(t, loc, proj.Location)
	assert.Equal(t, []float32{1, 0, 0}, own.Value)
	_, ok := r.Get("uNotHere")
	assert.False(t, ok)

	// values are copied, not aliased
	next[0] = 7
	assert.Equal(t, float32(2), proj.Value[0])
}

func TestBroadcastSizeMismatch(t *testing.T) {
	r := NewUniformRegistry(gputest.New(), 1)
	_, err := r.Register("uTime", UniformSpec{Type: Scalar, Value: []float32{0}})
	require.NoError(t, err)

	err = r.Broadcast(UniformSet{"uTime": {Type: Vec2, Value: []float32{1, 2}}})
	assert.ErrorIs(t, err, ErrUniformSize)
}

func TestUniformSetClone(t *testing.T) {
	s := UniformSet{"uTime": {Type: Scalar, Value: []float32{1}}}
	c := s.Clone()
	c["uTime"].Value[0] = 2
	assert.Equal(t, float32(1), s["uTime"].Value[0])
}
