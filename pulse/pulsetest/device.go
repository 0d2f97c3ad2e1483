// Package pulsetest provides an in-memory pulse.Device for tests. It emulates
// the parts of the OpenGL object model used by pulse: shader and program
// lifecycles, the vertex array binding state and uniform uploads. Every
// call that real OpenGL would reject or treat as undefined is recorded
// as a violation instead of being executed.
package pulsetest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oliverbestmann/polyspin/glm"
	"github.com/oliverbestmann/polyspin/pulse"
)

var uniformPattern = regexp.MustCompile(`uniform\s+mat4\s+(\w+)\s*;`)

type shader struct {
	stage    pulse.Stage
	source   string
	compiled bool
	log      string
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	uniforms map[string]int32
}

// Attrib is the layout of one vertex attribute as recorded in a vertex array.
type Attrib struct {
	Buffer  uint32
	Size    int32
	Stride  int32
	Offset  int
	Enabled bool
}

type vertexArray struct {
	elementBuffer uint32
	attribs       map[uint32]*Attrib
}

type buffer struct {
	data []byte
}

// Draw describes one DrawElements call together with the state it used.
type Draw struct {
	Program     uint32
	VertexArray uint32
	Count       int32
	Model       glm.Mat4f
}

type Device struct {
	// Calls holds the names of all calls in order.
	Calls []string

	// Violations lists misuse of the api, for example drawing without a
	// linked program or using a deleted object.
	Violations []string

	Draws        []Draw
	ClearCount   int
	ClearedWith  pulse.Color
	ViewportSize [2]int

	nextID uint32

	shaders      map[uint32]*shader
	programs     map[uint32]*program
	vertexArrays map[uint32]*vertexArray
	buffers      map[uint32]*buffer

	currentProgram     uint32
	currentVertexArray uint32
	currentArrayBuffer uint32

	// last matrix uploaded per program and location
	matrices map[uint32]map[int32]glm.Mat4f
}

var _ pulse.Device = (*Device)(nil)

func NewDevice() *Device {
	return &Device{
		shaders:      map[uint32]*shader{},
		programs:     map[uint32]*program{},
		vertexArrays: map[uint32]*vertexArray{},
		buffers:      map[uint32]*buffer{},
		matrices:     map[uint32]map[int32]glm.Mat4f{},
	}
}

// Live returns the number of objects that were created and not yet deleted.
func (d *Device) Live() int {
	return len(d.shaders) + len(d.programs) + len(d.vertexArrays) + len(d.buffers)
}

// LiveShaders returns the number of shader objects that were not deleted.
func (d *Device) LiveShaders() int {
	return len(d.shaders)
}

// IsProgram reports whether the program exists and was not deleted.
func (d *Device) IsProgram(id uint32) bool {
	_, ok := d.programs[id]
	return ok
}

// BufferContent returns the content of a buffer.
func (d *Device) BufferContent(id uint32) []byte {
	buf, ok := d.buffers[id]
	if !ok {
		return nil
	}

	return buf.data
}

// ElementBufferOf returns the element buffer recorded in the vertex array.
func (d *Device) ElementBufferOf(vertexArray uint32) uint32 {
	vao, ok := d.vertexArrays[vertexArray]
	if !ok {
		return 0
	}

	return vao.elementBuffer
}

// AttribOf returns the layout of an attribute recorded in the vertex array.
func (d *Device) AttribOf(vertexArray uint32, index uint32) (Attrib, bool) {
	vao, ok := d.vertexArrays[vertexArray]
	if !ok {
		return Attrib{}, false
	}

	attr, ok := vao.attribs[index]
	if !ok {
		return Attrib{}, false
	}

	return *attr, true
}

// Matrix returns the last matrix uploaded to the named uniform of the program.
func (d *Device) Matrix(programID uint32, name string) (glm.Mat4f, bool) {
	prog, ok := d.programs[programID]
	if !ok {
		return glm.Mat4f{}, false
	}

	location, ok := prog.uniforms[name]
	if !ok {
		return glm.Mat4f{}, false
	}

	m, ok := d.matrices[programID][location]
	return m, ok
}

func (d *Device) record(name string) {
	d.Calls = append(d.Calls, name)
}

func (d *Device) violation(format string, args ...any) {
	d.Violations = append(d.Violations, fmt.Sprintf(format, args...))
}

func (d *Device) newID() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) CreateShader(stage pulse.Stage) uint32 {
	d.record("CreateShader")

	id := d.newID()
	d.shaders[id] = &shader{stage: stage}
	return id
}

func (d *Device) ShaderSource(id uint32, source string) {
	d.record("ShaderSource")

	sh, ok := d.shaders[id]
	if !ok {
		d.violation("ShaderSource: unknown shader %d", id)
		return
	}

	sh.source = source
}

func (d *Device) CompileShader(id uint32) {
	d.record("CompileShader")

	sh, ok := d.shaders[id]
	if !ok {
		d.violation("CompileShader: unknown shader %d", id)
		return
	}

	sh.compiled, sh.log = compile(sh.source)
}

// compile accepts anything that looks like a glsl translation unit: a
// version directive, a main function and balanced braces.
func compile(source string) (bool, string) {
	switch {
	case strings.TrimSpace(source) == "":
		return false, "0:1(1): error: syntax error, unexpected end of file"

	case !strings.HasPrefix(strings.TrimSpace(source), "#version"):
		return false, fmt.Sprintf("0:1(1): error: missing #version directive in %q", source)

	case !strings.Contains(source, "void main"):
		return false, fmt.Sprintf("0:1(1): error: no definition of main in %q", source)

	case strings.Count(source, "{") != strings.Count(source, "}"):
		return false, fmt.Sprintf("0:1(1): error: syntax error, unbalanced braces in %q", source)
	}

	return true, ""
}

func (d *Device) ShaderCompileStatus(id uint32) bool {
	d.record("ShaderCompileStatus")

	sh, ok := d.shaders[id]
	if !ok {
		d.violation("ShaderCompileStatus: unknown shader %d", id)
		return false
	}

	return sh.compiled
}

func (d *Device) ShaderInfoLog(id uint32, maxLength int) string {
	d.record("ShaderInfoLog")

	sh, ok := d.shaders[id]
	if !ok {
		d.violation("ShaderInfoLog: unknown shader %d", id)
		return ""
	}

	return truncate(sh.log, maxLength)
}

func (d *Device) DeleteShader(id uint32) {
	d.record("DeleteShader")

	if _, ok := d.shaders[id]; !ok {
		d.violation("DeleteShader: unknown shader %d", id)
		return
	}

	delete(d.shaders, id)
}

func (d *Device) CreateProgram() uint32 {
	d.record("CreateProgram")

	id := d.newID()
	d.programs[id] = &program{}
	return id
}

func (d *Device) AttachShader(programID, shaderID uint32) {
	d.record("AttachShader")

	prog, ok := d.programs[programID]
	if !ok {
		d.violation("AttachShader: unknown program %d", programID)
		return
	}

	if _, ok := d.shaders[shaderID]; !ok {
		d.violation("AttachShader: unknown shader %d", shaderID)
		return
	}

	prog.attached = append(prog.attached, shaderID)
}

func (d *Device) LinkProgram(programID uint32) {
	d.record("LinkProgram")

	prog, ok := d.programs[programID]
	if !ok {
		d.violation("LinkProgram: unknown program %d", programID)
		return
	}

	prog.linked = false
	prog.uniforms = map[string]int32{}

	stages := map[pulse.Stage]*shader{}
	for _, id := range prog.attached {
		sh, ok := d.shaders[id]
		if !ok {
			prog.log = fmt.Sprintf("error: attached shader %d does not exist", id)
			return
		}

		if !sh.compiled {
			prog.log = fmt.Sprintf("error: linking with uncompiled %s shader", sh.stage)
			return
		}

		stages[sh.stage] = sh
	}

	if stages[pulse.StageVertex] == nil || stages[pulse.StageFragment] == nil {
		prog.log = "error: program needs a vertex and a fragment shader"
		return
	}

	for _, sh := range stages {
		for _, match := range uniformPattern.FindAllStringSubmatch(sh.source, -1) {
			if _, ok := prog.uniforms[match[1]]; !ok {
				prog.uniforms[match[1]] = int32(len(prog.uniforms))
			}
		}
	}

	prog.linked = true
	prog.log = ""
}

func (d *Device) ProgramLinkStatus(programID uint32) bool {
	d.record("ProgramLinkStatus")

	prog, ok := d.programs[programID]
	if !ok {
		d.violation("ProgramLinkStatus: unknown program %d", programID)
		return false
	}

	return prog.linked
}

func (d *Device) ProgramInfoLog(programID uint32, maxLength int) string {
	d.record("ProgramInfoLog")

	prog, ok := d.programs[programID]
	if !ok {
		d.violation("ProgramInfoLog: unknown program %d", programID)
		return ""
	}

	return truncate(prog.log, maxLength)
}

func (d *Device) UseProgram(programID uint32) {
	d.record("UseProgram")

	if programID != 0 {
		prog, ok := d.programs[programID]
		if !ok {
			d.violation("UseProgram: unknown program %d", programID)
			return
		}

		if !prog.linked {
			d.violation("UseProgram: program %d is not linked", programID)
			return
		}
	}

	d.currentProgram = programID
}

func (d *Device) DeleteProgram(programID uint32) {
	d.record("DeleteProgram")

	if _, ok := d.programs[programID]; !ok {
		d.violation("DeleteProgram: unknown program %d", programID)
		return
	}

	delete(d.programs, programID)
	delete(d.matrices, programID)

	if d.currentProgram == programID {
		d.currentProgram = 0
	}
}

func (d *Device) GetUniformLocation(programID uint32, name string) int32 {
	d.record("GetUniformLocation")

	prog, ok := d.programs[programID]
	if !ok || !prog.linked {
		d.violation("GetUniformLocation: program %d is not linked", programID)
		return -1
	}

	location, ok := prog.uniforms[name]
	if !ok {
		return -1
	}

	return location
}

func (d *Device) UniformMatrix4(location int32, value glm.Mat4f) {
	d.record("UniformMatrix4")

	if location == -1 {
		return
	}

	if d.currentProgram == 0 {
		d.violation("UniformMatrix4: no current program")
		return
	}

	if d.matrices[d.currentProgram] == nil {
		d.matrices[d.currentProgram] = map[int32]glm.Mat4f{}
	}

	d.matrices[d.currentProgram][location] = value
}

func (d *Device) GenVertexArray() uint32 {
	d.record("GenVertexArray")

	id := d.newID()
	d.vertexArrays[id] = &vertexArray{attribs: map[uint32]*Attrib{}}
	return id
}

func (d *Device) BindVertexArray(id uint32) {
	d.record("BindVertexArray")

	if id != 0 {
		if _, ok := d.vertexArrays[id]; !ok {
			d.violation("BindVertexArray: unknown vertex array %d", id)
			return
		}
	}

	d.currentVertexArray = id
}

func (d *Device) DeleteVertexArray(id uint32) {
	d.record("DeleteVertexArray")

	if _, ok := d.vertexArrays[id]; !ok {
		d.violation("DeleteVertexArray: unknown vertex array %d", id)
		return
	}

	delete(d.vertexArrays, id)

	if d.currentVertexArray == id {
		d.currentVertexArray = 0
	}
}

func (d *Device) GenBuffer() uint32 {
	d.record("GenBuffer")

	id := d.newID()
	d.buffers[id] = &buffer{}
	return id
}

func (d *Device) BindBuffer(target pulse.BufferTarget, id uint32) {
	d.record("BindBuffer")

	if id != 0 {
		if _, ok := d.buffers[id]; !ok {
			d.violation("BindBuffer: unknown buffer %d", id)
			return
		}
	}

	switch target {
	case pulse.ArrayBuffer:
		d.currentArrayBuffer = id

	case pulse.ElementArrayBuffer:
		// core profile: the element buffer binding lives in the vertex array
		vao, ok := d.vertexArrays[d.currentVertexArray]
		if !ok {
			d.violation("BindBuffer: element buffer %d bound without vertex array", id)
			return
		}

		vao.elementBuffer = id
	}
}

func (d *Device) BufferData(target pulse.BufferTarget, data []byte, usage pulse.BufferUsage) {
	d.record("BufferData")

	var id uint32
	switch target {
	case pulse.ArrayBuffer:
		id = d.currentArrayBuffer

	case pulse.ElementArrayBuffer:
		if vao, ok := d.vertexArrays[d.currentVertexArray]; ok {
			id = vao.elementBuffer
		}
	}

	buf, ok := d.buffers[id]
	if !ok {
		d.violation("BufferData: no buffer bound to target %d", target)
		return
	}

	buf.data = append([]byte(nil), data...)
}

func (d *Device) DeleteBuffer(id uint32) {
	d.record("DeleteBuffer")

	if _, ok := d.buffers[id]; !ok {
		d.violation("DeleteBuffer: unknown buffer %d", id)
		return
	}

	delete(d.buffers, id)

	if d.currentArrayBuffer == id {
		d.currentArrayBuffer = 0
	}
}

func (d *Device) VertexAttribPointer(index uint32, size, stride int32, offset int) {
	d.record("VertexAttribPointer")

	vao, ok := d.vertexArrays[d.currentVertexArray]
	if !ok {
		d.violation("VertexAttribPointer: no vertex array bound")
		return
	}

	if d.currentArrayBuffer == 0 {
		d.violation("VertexAttribPointer: no array buffer bound")
		return
	}

	attr := vao.attribs[index]
	if attr == nil {
		attr = &Attrib{}
		vao.attribs[index] = attr
	}

	attr.Buffer = d.currentArrayBuffer
	attr.Size = size
	attr.Stride = stride
	attr.Offset = offset
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray")

	vao, ok := d.vertexArrays[d.currentVertexArray]
	if !ok {
		d.violation("EnableVertexAttribArray: no vertex array bound")
		return
	}

	attr := vao.attribs[index]
	if attr == nil {
		attr = &Attrib{}
		vao.attribs[index] = attr
	}

	attr.Enabled = true
}

func (d *Device) ClearColor(color pulse.Color) {
	d.record("ClearColor")
	d.ClearedWith = color
}

func (d *Device) Clear() {
	d.record("Clear")
	d.ClearCount++
}

func (d *Device) Viewport(width, height int) {
	d.record("Viewport")
	d.ViewportSize = [2]int{width, height}
}

func (d *Device) DrawElements(count int32) {
	d.record("DrawElements")

	prog, ok := d.programs[d.currentProgram]
	if !ok || !prog.linked {
		d.violation("DrawElements: no linked program in use")
		return
	}

	vao, ok := d.vertexArrays[d.currentVertexArray]
	if !ok {
		d.violation("DrawElements: no vertex array bound")
		return
	}

	elements, ok := d.buffers[vao.elementBuffer]
	if !ok {
		d.violation("DrawElements: vertex array %d has no element buffer", d.currentVertexArray)
		return
	}

	if int(count)*4 > len(elements.data) {
		d.violation("DrawElements: %d indices exceed element buffer of %d bytes", count, len(elements.data))
		return
	}

	var model glm.Mat4f
	if location, ok := prog.uniforms["model"]; ok {
		model = d.matrices[d.currentProgram][location]
	}

	d.Draws = append(d.Draws, Draw{
		Program:     d.currentProgram,
		VertexArray: d.currentVertexArray,
		Count:       count,
		Model:       model,
	})
}

func truncate(log string, maxLength int) string {
	if len(log) > maxLength {
		return log[:max(0, maxLength)]
	}

	return log
}
