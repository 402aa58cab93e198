package painter

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/painter/internal/gpu"
)

// VertexAttr is one float vertex attribute.
type VertexAttr uint8

// Vertex attribute kinds.
const (
	AttrFloat1 VertexAttr = iota + 1
	AttrFloat2
	AttrFloat3
	AttrFloat4
)

// Components returns the number of floats in the attribute.
func (a VertexAttr) Components() int { return int(a) }

func (a VertexAttr) format() gputypes.VertexFormat {
	switch a {
	case AttrFloat1:
		return gputypes.VertexFormatFloat32
	case AttrFloat2:
		return gputypes.VertexFormatFloat32x2
	case AttrFloat3:
		return gputypes.VertexFormatFloat32x3
	default:
		return gputypes.VertexFormatFloat32x4
	}
}

// VertexLayout lists attributes in shader location order.
type VertexLayout []VertexAttr

// quadLayout is position, uv, opacity.
var quadLayout = VertexLayout{AttrFloat2, AttrFloat2, AttrFloat1}

// Floats returns the number of floats per vertex.
func (l VertexLayout) Floats() int {
	n := 0
	for _, a := range l {
		n += a.Components()
	}
	return n
}

// Stride returns the vertex size in bytes.
func (l VertexLayout) Stride() int { return l.Floats() * 4 }

func (l VertexLayout) bufferLayout() []gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l))
	var offset uint64
	for i, a := range l {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.format(),
			Offset:         offset,
			ShaderLocation: uint32(i), //nolint:gosec // layouts are a handful of attributes
		}
		offset += uint64(a.Components()) * 4
	}
	return []gputypes.VertexBufferLayout{{
		ArrayStride: uint64(l.Stride()),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}}
}

// Bindings is a fixed-capacity vertex and index buffer pair. Contents are
// overwritten by every upload; the buffers are never resized.
type Bindings struct {
	vertex hal.Buffer
	index  hal.Buffer

	layout         VertexLayout
	vertexCapacity int
	indexCapacity  int

	vbytes []byte
	ibytes []byte
}

// Layout returns the vertex layout.
func (b *Bindings) Layout() VertexLayout { return b.layout }

// VertexCapacity returns the maximum number of vertices per upload.
func (b *Bindings) VertexCapacity() int { return b.vertexCapacity }

// IndexCapacity returns the maximum number of indices per upload.
func (b *Bindings) IndexCapacity() int { return b.indexCapacity }

// NewBindings creates a vertex buffer for vertexCapacity vertices of layout
// and an index buffer for indexCapacity uint16 indices.
func (p *Painter) NewBindings(vertexCapacity, indexCapacity int, layout VertexLayout) (*Bindings, error) {
	if vertexCapacity <= 0 || indexCapacity <= 0 || len(layout) == 0 {
		return nil, fmt.Errorf("painter: invalid bindings %d vertices, %d indices, %d attributes",
			vertexCapacity, indexCapacity, len(layout))
	}
	b := &Bindings{
		layout:         layout,
		vertexCapacity: vertexCapacity,
		indexCapacity:  indexCapacity,
	}

	var err error
	b.vertex, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("painter_vertices_%d", len(p.bindings)),
		Size:  uint64(vertexCapacity * layout.Stride()), //nolint:gosec // positive
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	b.index, err = p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("painter_indices_%d", len(p.bindings)),
		Size:  uint64(gpu.Align4(indexCapacity * 2)), //nolint:gosec // positive
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.device.DestroyBuffer(b.vertex)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	p.bindings = append(p.bindings, b)
	Logger().Debug("painter: bindings created",
		"vertices", vertexCapacity, "indices", indexCapacity, "stride", layout.Stride())
	return b, nil
}

// upload overwrites the start of both buffers. Exceeding the capacity is
// a caller bug and panics.
func (b *Bindings) upload(queue hal.Queue, vertices []float32, indices []uint16) error {
	floats := b.layout.Floats()
	if len(vertices)%floats != 0 || len(vertices)/floats > b.vertexCapacity || len(indices) > b.indexCapacity {
		panic(fmt.Sprintf("painter: upload of %d floats / %d indices exceeds bindings capacity %d / %d",
			len(vertices), len(indices), b.vertexCapacity, b.indexCapacity))
	}
	b.vbytes = gpu.Float32Bytes(b.vbytes, vertices)
	b.ibytes = gpu.Uint16Bytes(b.ibytes, indices)
	if err := queue.WriteBuffer(b.vertex, 0, b.vbytes); err != nil {
		return fmt.Errorf("write vertices: %w", err)
	}
	if err := queue.WriteBuffer(b.index, 0, b.ibytes); err != nil {
		return fmt.Errorf("write indices: %w", err)
	}
	return nil
}

func (b *Bindings) destroy(device hal.Device) {
	if b.index != nil {
		device.DestroyBuffer(b.index)
		b.index = nil
	}
	if b.vertex != nil {
		device.DestroyBuffer(b.vertex)
		b.vertex = nil
	}
}
