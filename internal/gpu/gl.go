package gpu

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GL implements Context on top of an OpenGL 4.1 core context.
// The context must be current on the calling thread.
type GL struct {
	vao uint32
}

// NewGL loads the GL entry points and binds the single vertex array object
// core profile requires for attribute state.
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	g := &GL{}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	return g, nil
}

// Release deletes the vertex array object.
func (g *GL) Release() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}

func (g *GL) CreateShader(kind ShaderKind) uint32 {
	return gl.CreateShader(uint32(kind))
}

func (g *GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (g *GL) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (g *GL) ShaderStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (g *GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (g *GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (g *GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (g *GL) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (g *GL) ProgramStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (g *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (g *GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (g *GL) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (g *GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (g *GL) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (g *GL) BufferData(buffer uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (g *GL) VertexAttrib(buffer uint32, location int32, size int32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointer(uint32(location), size, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (g *GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (g *GL) Uniform1fv(location int32, v []float32) { gl.Uniform1fv(location, 1, &v[0]) }
func (g *GL) Uniform2fv(location int32, v []float32) { gl.Uniform2fv(location, 1, &v[0]) }
func (g *GL) Uniform3fv(location int32, v []float32) { gl.Uniform3fv(location, 1, &v[0]) }
func (g *GL) Uniform4fv(location int32, v []float32) { gl.Uniform4fv(location, 1, &v[0]) }

func (g *GL) UniformMatrix2fv(location int32, transpose bool, v []float32) {
	gl.UniformMatrix2fv(location, 1, transpose, &v[0])
}

func (g *GL) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	gl.UniformMatrix3fv(location, 1, transpose, &v[0])
}

func (g *GL) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &v[0])
}

func (g *GL) DrawArrays(mode DrawMode, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
}

func (g *GL) Clear(mask uint32) {
	gl.Clear(mask)
}

func (g *GL) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (g *GL) Enable(capability uint32) {
	gl.Enable(capability)
}

var _ Context = (*GL)(nil)
