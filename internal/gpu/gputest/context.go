// Package gputest provides an in-memory gpu.Context that records every call,
// so code driving the graphics API can be tested without a GL context.
package gputest

import (
	"fmt"
	"slices"

	"mini-gl/internal/gpu"
)

// Call is one recorded Context invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Draw is one recorded DrawArrays invocation.
type Draw struct {
	Program uint32
	Mode    gpu.DrawMode
	First   int32
	Count   int32
}

// Context is a recording fake. Handles are allocated from a single counter
// starting at 1, so zero never names a live object.
type Context struct {
	// CompileFailures maps a shader stage to the info log it should fail with.
	CompileFailures map[gpu.ShaderKind]string
	// LinkFailure, when non-empty, makes every link fail with this log.
	LinkFailure string
	// AttribLocations fixes locations by name; unknown names get the next free
	// location unless listed in MissingAttribs.
	AttribLocations map[string]int32
	MissingAttribs  map[string]bool

	Calls []Call

	Buffers   map[uint32][]float32
	Programs  map[uint32]bool
	Shaders   map[uint32]gpu.ShaderKind
	Bound     map[int32]uint32
	Uniforms  map[int32][]float32
	Draws     []Draw
	Clears    int
	Current   uint32
	ViewportW int32
	ViewportH int32

	nextHandle   uint32
	nextAttrib   int32
	nextUniform  int32
	uniformNames map[string]int32
}

// New returns an empty recording context.
func New() *Context {
	return &Context{
		CompileFailures: make(map[gpu.ShaderKind]string),
		AttribLocations: make(map[string]int32),
		MissingAttribs:  make(map[string]bool),
		Buffers:         make(map[uint32][]float32),
		Programs:        make(map[uint32]bool),
		Shaders:         make(map[uint32]gpu.ShaderKind),
		Bound:           make(map[int32]uint32),
		Uniforms:        make(map[int32][]float32),
		uniformNames:    make(map[string]int32),
	}
}

func (c *Context) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

func (c *Context) handle() uint32 {
	c.nextHandle++
	return c.nextHandle
}

// Count returns how many times the named call was recorded.
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (c *Context) Names() []string {
	names := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		names[i] = call.Name
	}
	return names
}

// Reset forgets recorded calls and draws but keeps live objects.
func (c *Context) Reset() {
	c.Calls = nil
	c.Draws = nil
	c.Clears = 0
}

// UniformByName returns the last value uploaded to the named uniform.
func (c *Context) UniformByName(name string) ([]float32, bool) {
	loc, ok := c.uniformNames[name]
	if !ok {
		return nil, false
	}
	v, ok := c.Uniforms[loc]
	return v, ok
}

func (c *Context) CreateShader(kind gpu.ShaderKind) uint32 {
	h := c.handle()
	c.Shaders[h] = kind
	c.record("CreateShader", kind)
	return h
}

func (c *Context) ShaderSource(shader uint32, source string) {
	c.record("ShaderSource", shader, len(source))
}

func (c *Context) CompileShader(shader uint32) {
	c.record("CompileShader", shader)
}

func (c *Context) ShaderStatus(shader uint32) (bool, string) {
	c.record("ShaderStatus", shader)
	if log, ok := c.CompileFailures[c.Shaders[shader]]; ok {
		return false, log
	}
	return true, ""
}

func (c *Context) DeleteShader(shader uint32) {
	delete(c.Shaders, shader)
	c.record("DeleteShader", shader)
}

func (c *Context) CreateProgram() uint32 {
	h := c.handle()
	c.Programs[h] = true
	c.record("CreateProgram")
	return h
}

func (c *Context) AttachShader(program, shader uint32) {
	c.record("AttachShader", program, shader)
}

func (c *Context) LinkProgram(program uint32) {
	c.record("LinkProgram", program)
}

func (c *Context) ProgramStatus(program uint32) (bool, string) {
	c.record("ProgramStatus", program)
	if c.LinkFailure != "" {
		return false, c.LinkFailure
	}
	return true, ""
}

func (c *Context) UseProgram(program uint32) {
	c.Current = program
	c.record("UseProgram", program)
}

func (c *Context) DeleteProgram(program uint32) {
	delete(c.Programs, program)
	c.record("DeleteProgram", program)
}

func (c *Context) AttribLocation(program uint32, name string) int32 {
	c.record("AttribLocation", program, name)
	if c.MissingAttribs[name] {
		return -1
	}
	if loc, ok := c.AttribLocations[name]; ok {
		return loc
	}
	loc := c.nextAttrib
	c.nextAttrib++
	c.AttribLocations[name] = loc
	return loc
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	c.record("UniformLocation", program, name)
	if loc, ok := c.uniformNames[name]; ok {
		return loc
	}
	loc := c.nextUniform
	c.nextUniform++
	c.uniformNames[name] = loc
	return loc
}

func (c *Context) CreateBuffer() uint32 {
	h := c.handle()
	c.Buffers[h] = nil
	c.record("CreateBuffer")
	return h
}

func (c *Context) BufferData(buffer uint32, data []float32) {
	c.Buffers[buffer] = slices.Clone(data)
	c.record("BufferData", buffer, len(data))
}

func (c *Context) VertexAttrib(buffer uint32, location int32, size int32) {
	c.Bound[location] = buffer
	c.record("VertexAttrib", buffer, location, size)
}

func (c *Context) DeleteBuffer(buffer uint32) {
	delete(c.Buffers, buffer)
	c.record("DeleteBuffer", buffer)
}

func (c *Context) uniform(name string, location int32, v []float32) {
	c.Uniforms[location] = slices.Clone(v)
	c.record(name, location, len(v))
}

func (c *Context) Uniform1fv(location int32, v []float32) { c.uniform("Uniform1fv", location, v) }
func (c *Context) Uniform2fv(location int32, v []float32) { c.uniform("Uniform2fv", location, v) }
func (c *Context) Uniform3fv(location int32, v []float32) { c.uniform("Uniform3fv", location, v) }
func (c *Context) Uniform4fv(location int32, v []float32) { c.uniform("Uniform4fv", location, v) }

func (c *Context) UniformMatrix2fv(location int32, transpose bool, v []float32) {
	c.uniformMatrix("UniformMatrix2fv", location, transpose, v)
}

func (c *Context) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	c.uniformMatrix("UniformMatrix3fv", location, transpose, v)
}

func (c *Context) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	c.uniformMatrix("UniformMatrix4fv", location, transpose, v)
}

func (c *Context) uniformMatrix(name string, location int32, transpose bool, v []float32) {
	c.Uniforms[location] = slices.Clone(v)
	c.record(name, location, transpose, len(v))
}

func (c *Context) DrawArrays(mode gpu.DrawMode, first, count int32) {
	c.Draws = append(c.Draws, Draw{Program: c.Current, Mode: mode, First: first, Count: count})
	c.record("DrawArrays", mode, first, count)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("ClearColor", r, g, b, a)
}

func (c *Context) Clear(mask uint32) {
	c.Clears++
	c.record("Clear", mask)
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.ViewportW, c.ViewportH = width, height
	c.record("Viewport", x, y, width, height)
}

func (c *Context) Enable(capability uint32) {
	c.record("Enable", capability)
}

var _ gpu.Context = (*Context)(nil)
