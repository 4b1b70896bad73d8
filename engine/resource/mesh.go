package resource

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Mesh is immutable geometry resident on the GPU.
// Meshes are shared by pointer between the ResourceManager and every RenderObject that draws them.
type Mesh struct {
	label        string
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	vertexCount  uint32
	indexCount   uint32
}

// NewMesh wraps already-uploaded buffers.
//
// Parameters:
//   - label: debug name
//   - vertexBuffer: buffer holding vertexCount vertices
//   - vertexCount: number of vertices
//   - indexBuffer: buffer of uint16 indices, or nil for non-indexed drawing
//   - indexCount: number of indices (ignored when indexBuffer is nil)
//
// Returns:
//   - *Mesh: the mesh
func NewMesh(label string, vertexBuffer *wgpu.Buffer, vertexCount uint32, indexBuffer *wgpu.Buffer, indexCount uint32) *Mesh {
	if indexBuffer == nil {
		indexCount = 0
	}
	return &Mesh{
		label:        label,
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		vertexCount:  vertexCount,
		indexCount:   indexCount,
	}
}

func (m *Mesh) Label() string {
	return m.label
}

func (m *Mesh) VertexBuffer() *wgpu.Buffer {
	return m.vertexBuffer
}

func (m *Mesh) IndexBuffer() *wgpu.Buffer {
	return m.indexBuffer
}

func (m *Mesh) VertexCount() uint32 {
	return m.vertexCount
}

func (m *Mesh) IndexCount() uint32 {
	return m.indexCount
}

// Indexed reports whether the mesh should be drawn with DrawIndexed.
func (m *Mesh) Indexed() bool {
	return m.indexBuffer != nil && m.indexCount > 0
}
