package graphics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-gl/internal/gpu"
	"mini-gl/internal/gpu/gputest"
)

func TestCompileProgram(t *testing.T) {
	ctx := gputest.New()
	program, err := CompileProgram(ctx, "void main(){}", "void main(){}")
	require.NoError(t, err)

	assert.NotZero(t, program)
	assert.Equal(t, program, ctx.Current, "program is made current")
	assert.Equal(t, 2, ctx.Count("CompileShader"))
	assert.Equal(t, 2, ctx.Count("AttachShader"))
	assert.Equal(t, 1, ctx.Count("LinkProgram"))
	assert.Empty(t, ctx.Shaders, "stage objects are deleted after linking")
}

func TestCompileProgramStageFailure(t *testing.T) {
	ctx := gputest.New()
	ctx.CompileFailures[gpu.FragmentShader] = "0:3: 'colour' : undeclared identifier"

	program, err := CompileProgram(ctx, "void main(){}", "broken")
	require.Error(t, err)
	assert.NotZero(t, program, "a handle is returned even on failure")
	assert.ErrorIs(t, err, ErrCompile)

	var se *ShaderError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageFragment, se.Stage)
	assert.Contains(t, se.Log, "undeclared identifier")
	assert.Equal(t, program, ctx.Current)
}

func TestCompileProgramLinkFailure(t *testing.T) {
	ctx := gputest.New()
	ctx.LinkFailure = "varying vNormal not written"

	_, err := CompileProgram(ctx, "a", "b")
	assert.ErrorIs(t, err, ErrLink)
	assert.NotErrorIs(t, err, ErrCompile)
	assert.Contains(t, err.Error(), "failed to link program")
}

func TestCompileProgramBothStagesFail(t *testing.T) {
	ctx := gputest.New()
	ctx.CompileFailures[gpu.VertexShader] = "v"
	ctx.CompileFailures[gpu.FragmentShader] = "f"
	ctx.LinkFailure = "l"

	_, err := CompileProgram(ctx, "a", "b")
	assert.ErrorIs(t, err, ErrCompile)
	assert.ErrorIs(t, err, ErrLink)
	assert.Contains(t, err.Error(), "vertex")
	assert.Contains(t, err.Error(), "fragment")
}
