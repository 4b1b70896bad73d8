package resource

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ColorVertex is a position plus a per-vertex RGB color.
// The layout must match the vertex inputs of the shader: location 0 = position, location 1 = color.
type ColorVertex struct {
	Position [3]float32 // offset  0
	Color    [3]float32 // offset 12
}

// ColorVertexStride is the size of one ColorVertex in bytes (24).
const ColorVertexStride = uint64(unsafe.Sizeof(ColorVertex{}))

// ColorVertexLayout describes ColorVertex to the pipeline.
//
// Returns:
//   - wgpu.VertexBufferLayout: stride 24, Float32x3 at location 0 (offset 0) and location 1 (offset 12)
func ColorVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: ColorVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         uint64(unsafe.Offsetof(ColorVertex{}.Color)),
				ShaderLocation: 1,
			},
		},
	}
}

// VertexBytes returns the raw bytes of vertices for upload.
func VertexBytes(vertices []ColorVertex) []byte {
	return common.SliceToBytes(vertices)
}

// IndexBytes returns the raw bytes of 16-bit indices for upload.
func IndexBytes(indices []uint16) []byte {
	return common.SliceToBytes(indices)
}
