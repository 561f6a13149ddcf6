package graphics

import (
	"errors"
	"fmt"

	"mini-gl/internal/gpu"
)

var (
	ErrCompile = errors.New("shader compile failed")
	ErrLink    = errors.New("program link failed")
)

// Stage names the step of program construction that produced a diagnostic.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// ShaderError carries the compiler or linker log for one failed stage.
type ShaderError struct {
	Stage Stage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == StageLink {
		return fmt.Sprintf("failed to link program: %v", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader: %v", e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error {
	if e.Stage == StageLink {
		return ErrLink
	}
	return ErrCompile
}

// CompileProgram compiles both stages, links them into a new program and
// makes it current. The program handle is returned even when a stage fails,
// so a broken shader leaves a constructed but non-functional program rather
// than aborting; the error then holds one *ShaderError per failed stage.
func CompileProgram(ctx gpu.Context, vertexSrc, fragmentSrc string) (uint32, error) {
	var errs []error

	vertexShader, err := compileShader(ctx, vertexSrc, gpu.VertexShader)
	if err != nil {
		errs = append(errs, err)
	}
	fragmentShader, err := compileShader(ctx, fragmentSrc, gpu.FragmentShader)
	if err != nil {
		errs = append(errs, err)
	}

	program := ctx.CreateProgram()
	ctx.AttachShader(program, vertexShader)
	ctx.AttachShader(program, fragmentShader)
	ctx.LinkProgram(program)

	if ok, log := ctx.ProgramStatus(program); !ok {
		errs = append(errs, &ShaderError{Stage: StageLink, Log: log})
	}
	ctx.DeleteShader(vertexShader)
	ctx.DeleteShader(fragmentShader)
	ctx.UseProgram(program)

	return program, errors.Join(errs...)
}

func compileShader(ctx gpu.Context, source string, kind gpu.ShaderKind) (uint32, error) {
	shader := ctx.CreateShader(kind)
	ctx.ShaderSource(shader, source)
	ctx.CompileShader(shader)

	if ok, log := ctx.ShaderStatus(shader); !ok {
		stage := StageVertex
		if kind == gpu.FragmentShader {
			stage = StageFragment
		}
		return shader, &ShaderError{Stage: stage, Log: log}
	}
	return shader, nil
}
