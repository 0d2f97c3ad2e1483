package pulse

import (
	"fmt"

	"github.com/oliverbestmann/polyspin/glm"
)

// Stage identifies one phase of the shader pipeline.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

type BufferTarget uint8

const (
	// ArrayBuffer holds per vertex attribute data.
	ArrayBuffer BufferTarget = iota

	// ElementArrayBuffer holds the indices used for indexed drawing. Its binding
	// is recorded in the currently bound vertex array.
	ElementArrayBuffer
)

type BufferUsage uint8

const (
	// UsageStaticDraw hints that the data is uploaded once and drawn many times.
	UsageStaticDraw BufferUsage = iota
)

// Device is the subset of the OpenGL API used to build and draw
// the polygon. Object names are plain uint32 values as in OpenGL,
// zero is never a valid object.
//
// All methods must be called from the thread owning the GL context.
type Device interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompileStatus(shader uint32) bool
	// ShaderInfoLog returns at most maxLength bytes of the info log.
	ShaderInfoLog(shader uint32, maxLength int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) bool
	// ProgramInfoLog returns at most maxLength bytes of the info log.
	ProgramInfoLog(program uint32, maxLength int) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// GetUniformLocation returns -1 if the program has no active
	// uniform with the given name.
	GetUniformLocation(program uint32, name string) int32
	// UniformMatrix4 uploads a column-major matrix to the current program.
	// Location -1 is silently ignored.
	UniformMatrix4(location int32, value glm.Mat4f)

	GenVertexArray() uint32
	BindVertexArray(vertexArray uint32)
	DeleteVertexArray(vertexArray uint32)

	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, data []byte, usage BufferUsage)
	DeleteBuffer(buffer uint32)

	// VertexAttribPointer declares a float attribute reading from the
	// currently bound ArrayBuffer.
	VertexAttribPointer(index uint32, size, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	ClearColor(color Color)
	Clear()
	Viewport(width, height int)

	// DrawElements draws count indices as triangles from the element
	// buffer of the bound vertex array.
	DrawElements(count int32)
}
