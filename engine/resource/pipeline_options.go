package resource

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// pipelineSettings holds the render-state knobs applied when CreatePipeline builds a descriptor.
type pipelineSettings struct {
	vertexEntryPoint   string
	fragmentEntryPoint string
	blendEnabled       bool
	blendState         *wgpu.BlendState
	cullMode           wgpu.CullMode
	frontFace          wgpu.FrontFace
	topology           wgpu.PrimitiveTopology
	writeMask          wgpu.ColorWriteMask
	sampleCount        uint32
}

// PipelineOption is a functional option used to vary a render pipeline away from the defaults.
type PipelineOption func(*pipelineSettings)

// AlphaBlending returns the standard non-premultiplied alpha blend state.
func AlphaBlending() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

func defaultPipelineSettings() pipelineSettings {
	return pipelineSettings{
		vertexEntryPoint:   "vs_main",
		fragmentEntryPoint: "fs_main",
		blendEnabled:       true,
		blendState:         AlphaBlending(),
		cullMode:           wgpu.CullModeBack,
		frontFace:          wgpu.FrontFaceCCW,
		topology:           wgpu.PrimitiveTopologyTriangleList,
		writeMask:          wgpu.ColorWriteMaskAll,
		sampleCount:        1,
	}
}

// WithEntryPoints overrides the vertex and fragment entry point names.
//
// Parameters:
//   - vertex: the vertex stage entry point
//   - fragment: the fragment stage entry point
//
// Returns:
//   - PipelineOption: a function that sets both entry points
func WithEntryPoints(vertex, fragment string) PipelineOption {
	return func(s *pipelineSettings) {
		s.vertexEntryPoint = vertex
		s.fragmentEntryPoint = fragment
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode to use (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
//
// Returns:
//   - PipelineOption: a function that sets the cull mode
func WithCullMode(mode wgpu.CullMode) PipelineOption {
	return func(s *pipelineSettings) {
		s.cullMode = mode
	}
}

// WithFrontFace sets the front face winding order for this pipeline.
//
// Parameters:
//   - frontFace: the winding to treat as front facing (e.g., wgpu.FrontFaceCCW, wgpu.FrontFaceCW)
//
// Returns:
//   - PipelineOption: a function that sets the front face
func WithFrontFace(frontFace wgpu.FrontFace) PipelineOption {
	return func(s *pipelineSettings) {
		s.frontFace = frontFace
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology (e.g., wgpu.PrimitiveTopologyLineList, wgpu.PrimitiveTopologyTriangleList)
//
// Returns:
//   - PipelineOption: a function that sets the topology
func WithTopology(topology wgpu.PrimitiveTopology) PipelineOption {
	return func(s *pipelineSettings) {
		s.topology = topology
	}
}

// WithBlendState sets the blend state for the color target. A nil state disables blending.
//
// Parameters:
//   - blendState: the blend state, or nil for opaque output
//
// Returns:
//   - PipelineOption: a function that sets the blend state
func WithBlendState(blendState *wgpu.BlendState) PipelineOption {
	return func(s *pipelineSettings) {
		s.blendState = blendState
		s.blendEnabled = blendState != nil
	}
}

// WithWriteMask sets the color write mask for this pipeline.
//
// Parameters:
//   - writeMask: the channels to write (e.g., wgpu.ColorWriteMaskAll)
//
// Returns:
//   - PipelineOption: a function that sets the write mask
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineOption {
	return func(s *pipelineSettings) {
		s.writeMask = writeMask
	}
}

// WithSampleCount sets the multisample count. Values below 1 are treated as 1.
//
// Parameters:
//   - count: the number of samples per pixel
//
// Returns:
//   - PipelineOption: a function that sets the sample count
func WithSampleCount(count uint32) PipelineOption {
	return func(s *pipelineSettings) {
		if count < 1 {
			count = 1
		}
		s.sampleCount = count
	}
}
