package gpu

// ShaderKind selects a shader stage. Values match the GL enums.
type ShaderKind uint32

const (
	FragmentShader ShaderKind = 0x8B30
	VertexShader   ShaderKind = 0x8B31
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// DrawMode is the primitive topology passed to DrawArrays unmodified.
type DrawMode uint32

const (
	Points DrawMode = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

// Clear mask bits and capabilities
const (
	DepthBufferBit uint32 = 0x00000100
	ColorBufferBit uint32 = 0x00004000

	DepthTest uint32 = 0x0B71
)

// Context is the subset of the graphics API the runtime drives.
// Implementations are not safe for concurrent use; every call must happen
// on the thread that owns the underlying context.
type Context interface {
	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	// ShaderStatus reports the compile status and the info log.
	ShaderStatus(shader uint32) (bool, string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	// ProgramStatus reports the link status and the info log.
	ProgramStatus(program uint32) (bool, string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	CreateBuffer() uint32
	BufferData(buffer uint32, data []float32)
	// VertexAttrib binds buffer as a tightly packed, non-normalized float
	// attribute of size components at location.
	VertexAttrib(buffer uint32, location int32, size int32)
	DeleteBuffer(buffer uint32)

	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	UniformMatrix2fv(location int32, transpose bool, v []float32)
	UniformMatrix3fv(location int32, transpose bool, v []float32)
	UniformMatrix4fv(location int32, transpose bool, v []float32)

	DrawArrays(mode DrawMode, first, count int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)
	Enable(capability uint32)
}
