package pulse

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/oliverbestmann/polyspin/glm"
)

var debugGL = os.Getenv("POLYSPIN_GL_DEBUG") == "1"

func init() {
	// the gl context is bound to the thread that created it
	runtime.LockOSThread()
}

type glDevice struct{}

// NewGLDevice loads the OpenGL function pointers for the context that is
// current on the calling thread. The window must have been created before.
func NewGLDevice() (Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("load gl functions: %w", err)
	}

	slog.Info("OpenGL initialized",
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	return glDevice{}, nil
}

func (glDevice) CreateShader(stage Stage) uint32 {
	return gl.CreateShader(shaderTypeOf(stage))
}

func (glDevice) ShaderSource(shader uint32, source string) {
	sources, free := gl.Strs(source + "\x00")
	defer free()

	gl.ShaderSource(shader, 1, sources, nil)
}

func (glDevice) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (glDevice) ShaderCompileStatus(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (glDevice) ShaderInfoLog(shader uint32, maxLength int) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 || maxLength <= 0 {
		return ""
	}

	buf := make([]byte, min(int(length), maxLength))

	var written int32
	gl.GetShaderInfoLog(shader, int32(len(buf)), &written, &buf[0])
	return string(buf[:written])
}

func (glDevice) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (glDevice) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (glDevice) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (glDevice) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (glDevice) ProgramLinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (glDevice) ProgramInfoLog(program uint32, maxLength int) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 || maxLength <= 0 {
		return ""
	}

	buf := make([]byte, min(int(length), maxLength))

	var written int32
	gl.GetProgramInfoLog(program, int32(len(buf)), &written, &buf[0])
	return string(buf[:written])
}

func (glDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (glDevice) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (glDevice) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (glDevice) UniformMatrix4(location int32, value glm.Mat4f) {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}

func (glDevice) GenVertexArray() uint32 {
	var vertexArray uint32
	gl.GenVertexArrays(1, &vertexArray)
	return vertexArray
}

func (glDevice) BindVertexArray(vertexArray uint32) {
	gl.BindVertexArray(vertexArray)
}

func (glDevice) DeleteVertexArray(vertexArray uint32) {
	gl.DeleteVertexArrays(1, &vertexArray)
}

func (glDevice) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (glDevice) BindBuffer(target BufferTarget, buffer uint32) {
	gl.BindBuffer(bufferTargetOf(target), buffer)
}

func (d glDevice) BufferData(target BufferTarget, data []byte, usage BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(bufferTargetOf(target), 0, nil, bufferUsageOf(usage))
		return
	}

	gl.BufferData(bufferTargetOf(target), len(data), gl.Ptr(data), bufferUsageOf(usage))
	d.checkError("BufferData")
}

func (glDevice) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d glDevice) VertexAttribPointer(index uint32, size, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
	d.checkError("VertexAttribPointer")
}

func (glDevice) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (glDevice) ClearColor(color Color) {
	r, g, b, a := color.Components()
	gl.ClearColor(r, g, b, a)
}

func (glDevice) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (glDevice) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d glDevice) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	d.checkError("DrawElements")
}

// checkError logs pending gl errors. It is only active if
// POLYSPIN_GL_DEBUG=1 is set, as glGetError forces a pipeline sync.
func (glDevice) checkError(op string) {
	if !debugGL {
		return
	}

	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		slog.Warn("OpenGL error",
			slog.String("op", op),
			slog.String("code", fmt.Sprintf("0x%04x", code)),
		)
	}
}

func shaderTypeOf(stage Stage) uint32 {
	switch stage {
	case StageVertex:
		return gl.VERTEX_SHADER
	case StageFragment:
		return gl.FRAGMENT_SHADER
	default:
		panic(fmt.Sprintf("unknown shader stage %s", stage))
	}
}

func bufferTargetOf(target BufferTarget) uint32 {
	switch target {
	case ArrayBuffer:
		return gl.ARRAY_BUFFER
	case ElementArrayBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	default:
		panic(fmt.Sprintf("unknown buffer target %d", target))
	}
}

func bufferUsageOf(usage BufferUsage) uint32 {
	switch usage {
	case UsageStaticDraw:
		return gl.STATIC_DRAW
	default:
		panic(fmt.Sprintf("unknown buffer usage %d", usage))
	}
}
