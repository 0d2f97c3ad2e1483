package pulse

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/mobile/exp/f32"
)

// PositionAttribute is the shader input location of the vertex position.
const PositionAttribute = 0

const componentsPerVertex = 2
const bytesPerFloat = 4

var ErrEmptyGeometry = errors.New("geometry needs at least one vertex and one index")

// IndexOutOfRangeError is returned if an index references a vertex that does not exist.
type IndexOutOfRangeError struct {
	Position    int
	Index       uint32
	VertexCount int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d at position %d out of range, have %d vertices", e.Index, e.Position, e.VertexCount)
}

// Geometry owns the static vertex and index buffers of a polygon together with
// the vertex array that binds them to PositionAttribute.
type Geometry struct {
	dev Device

	VertexArray   uint32
	VertexBuffer  uint32
	ElementBuffer uint32

	VertexCount int
	IndexCount  int
}

// NewGeometry uploads the 2d vertex positions (x, y pairs) and triangle indices.
// The input is validated before any gpu resource is allocated.
func NewGeometry(dev Device, vertices []float32, indices []uint32) (*Geometry, error) {
	if len(vertices)%componentsPerVertex != 0 {
		return nil, fmt.Errorf("vertex data has %d floats, expected (x, y) pairs", len(vertices))
	}

	vertexCount := len(vertices) / componentsPerVertex
	if vertexCount == 0 || len(indices) == 0 {
		return nil, ErrEmptyGeometry
	}

	for pos, idx := range indices {
		if uint64(idx) >= uint64(vertexCount) {
			return nil, &IndexOutOfRangeError{Position: pos, Index: idx, VertexCount: vertexCount}
		}
	}

	g := &Geometry{
		dev:         dev,
		VertexCount: vertexCount,
		IndexCount:  len(indices),
	}

	// the vertex array must be bound first, it records the
	// element buffer binding and the attribute layout below
	g.VertexArray = dev.GenVertexArray()
	dev.BindVertexArray(g.VertexArray)

	g.VertexBuffer = dev.GenBuffer()
	dev.BindBuffer(ArrayBuffer, g.VertexBuffer)
	// gl reads the vertex data in host order, all supported targets are little endian
	dev.BufferData(ArrayBuffer, f32.Bytes(binary.LittleEndian, vertices...), UsageStaticDraw)

	g.ElementBuffer = dev.GenBuffer()
	dev.BindBuffer(ElementArrayBuffer, g.ElementBuffer)
	dev.BufferData(ElementArrayBuffer, SliceBytes(indices), UsageStaticDraw)

	// layout refers to the currently bound ArrayBuffer
	dev.VertexAttribPointer(PositionAttribute, componentsPerVertex, componentsPerVertex*bytesPerFloat, 0)
	dev.EnableVertexAttribArray(PositionAttribute)

	dev.BindVertexArray(0)

	slog.Debug("Geometry uploaded",
		slog.Int("vertices", g.VertexCount),
		slog.Int("indices", g.IndexCount),
	)

	return g, nil
}

// Bind makes the vertex array of this geometry current.
func (g *Geometry) Bind() {
	g.dev.BindVertexArray(g.VertexArray)
}

// Draw issues an indexed draw call over all indices. The geometry must be bound.
func (g *Geometry) Draw() {
	g.dev.DrawElements(int32(g.IndexCount))
}

// Release deletes the gpu resources. It is safe to call Release multiple times.
func (g *Geometry) Release() {
	if g.VertexBuffer != 0 {
		g.dev.DeleteBuffer(g.VertexBuffer)
		g.VertexBuffer = 0
	}

	if g.ElementBuffer != 0 {
		g.dev.DeleteBuffer(g.ElementBuffer)
		g.ElementBuffer = 0
	}

	if g.VertexArray != 0 {
		g.dev.DeleteVertexArray(g.VertexArray)
		g.VertexArray = 0
	}
}
