package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is the subset of a WebGPU device used by the engine.
// Handles are the concrete wgpu types so they can be passed straight into descriptors.
type Device interface {
	// CreateShaderModule compiles a shader module from the descriptor.
	//
	// Parameters:
	//   - desc: the shader module descriptor (WGSL source and label)
	//
	// Returns:
	//   - *wgpu.ShaderModule: the created module
	//   - error: an error if the driver rejected the module
	CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)

	// CreateBindGroupLayout creates a bind group layout.
	//
	// Parameters:
	//   - desc: the layout descriptor
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the created layout
	//   - error: an error if creation failed
	CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)

	// CreatePipelineLayout creates a pipeline layout from bind group layouts.
	//
	// Parameters:
	//   - desc: the pipeline layout descriptor
	//
	// Returns:
	//   - *wgpu.PipelineLayout: the created layout
	//   - error: an error if creation failed
	CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)

	// CreateRenderPipeline creates a render pipeline.
	//
	// Parameters:
	//   - desc: the render pipeline descriptor
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created pipeline
	//   - error: an error if creation failed
	CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)

	// CreateBuffer allocates a GPU buffer.
	//
	// Parameters:
	//   - desc: the buffer descriptor (size, usage, label)
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if allocation failed
	CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error)

	// CreateBindGroup binds resources to a layout.
	//
	// Parameters:
	//   - desc: the bind group descriptor
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if creation failed
	CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)

	// CreateCommandEncoder starts recording a command buffer.
	//
	// Parameters:
	//   - label: debug label for the encoder
	//
	// Returns:
	//   - CommandEncoder: the encoder
	//   - error: an error if creation failed
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Release frees a handle previously created by this device.
	// Unknown or nil handles are ignored.
	//
	// Parameters:
	//   - handle: any wgpu handle created by this device
	Release(handle any)
}

// Queue submits work and uploads data to the GPU.
type Queue interface {
	// WriteBuffer schedules a write of data into buffer at offset.
	//
	// Parameters:
	//   - buffer: destination buffer (must have CopyDst usage)
	//   - offset: byte offset into the buffer
	//   - data: bytes to write
	//
	// Returns:
	//   - error: an error if the write was rejected
	WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error

	// Submit executes a finished command buffer and takes ownership of it.
	//
	// Parameters:
	//   - commands: the command buffer to submit
	Submit(commands *wgpu.CommandBuffer)
}

// CommandEncoder records GPU commands into a command buffer.
type CommandEncoder interface {
	// BeginRenderPass opens a render pass.
	//
	// Parameters:
	//   - desc: attachments and load/store operations
	//
	// Returns:
	//   - RenderPass: the pass encoder
	BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass

	// Finish closes the encoder and produces the command buffer.
	//
	// Returns:
	//   - *wgpu.CommandBuffer: the recorded commands
	//   - error: an error if recording was invalid
	Finish() (*wgpu.CommandBuffer, error)

	// Release frees the encoder.
	Release()
}

// RenderPass records draw commands for one render pass.
type RenderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64)
	SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset, size uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
	End() error
	Release()
}

// SurfaceConfig is the negotiated presentation configuration.
type SurfaceConfig struct {
	Format      wgpu.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode wgpu.PresentMode
}

// SurfaceTexture is one acquired swapchain image.
type SurfaceTexture interface {
	// View returns the render target view of the texture.
	View() *wgpu.TextureView

	// Release frees the view and the texture.
	Release()
}

// Surface is the presentable target bound to a window.
type Surface interface {
	// Formats returns the texture formats the surface supports, in preference order.
	//
	// Returns:
	//   - []wgpu.TextureFormat: supported formats
	Formats() []wgpu.TextureFormat

	// Configure (re)configures the swapchain.
	//
	// Parameters:
	//   - config: the format, size and present mode to use
	Configure(config SurfaceConfig)

	// AcquireTexture returns the next swapchain texture.
	//
	// Returns:
	//   - SurfaceTexture: the acquired texture
	//   - error: an error if the surface is lost, outdated or timed out
	AcquireTexture() (SurfaceTexture, error)

	// Present displays the most recently acquired texture.
	Present()

	// Release frees the surface.
	Release()
}

// Context is an acquired device, queue and surface triple.
type Context struct {
	Device  Device
	Queue   Queue
	Surface Surface

	release func()
}

// NewContext builds a Context from already-created parts.
//
// Parameters:
//   - device: the device
//   - queue: the device's queue
//   - surface: the presentation surface
//   - release: called by Release to free the parts (may be nil)
//
// Returns:
//   - *Context: the context
func NewContext(device Device, queue Queue, surface Surface, release func()) *Context {
	return &Context{Device: device, Queue: queue, Surface: surface, release: release}
}

// Release frees the device, queue, surface and instance. Safe to call more than once.
func (c *Context) Release() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
}

// IsSRGB reports whether a texture format stores sRGB-encoded color.
//
// Parameters:
//   - format: the texture format to check
//
// Returns:
//   - bool: true for the *UnormSrgb formats
func IsSRGB(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}
