package gpu

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ContextOptions configures adapter and device negotiation.
type ContextOptions struct {
	ForceFallbackAdapter bool
	PowerPreference      wgpu.PowerPreference
	DeviceLabel          string
}

// DefaultContextOptions requests a high-performance hardware adapter.
//
// Returns:
//   - ContextOptions: the default options
func DefaultContextOptions() ContextOptions {
	return ContextOptions{
		ForceFallbackAdapter: false,
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
		DeviceLabel:          "Main Device",
	}
}

// RequestContext creates the instance and surface, then negotiates an adapter and device.
// This is the only blocking handshake with the driver. Must be called from the thread that owns the window.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window
//   - opts: adapter and device options
//
// Returns:
//   - *Context: the acquired context
//   - error: a SurfaceCreation, AdapterRequest or DeviceRequest error
func RequestContext(surfaceDescriptor *wgpu.SurfaceDescriptor, opts ContextOptions) (*Context, error) {
	runtime.LockOSThread()

	if surfaceDescriptor == nil {
		return nil, common.NewError(common.ErrSurfaceCreation, "window has no surface descriptor")
	}

	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(surfaceDescriptor)
	if surface == nil {
		instance.Release()
		return nil, common.NewError(common.ErrSurfaceCreation, "instance returned no surface")
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		CompatibleSurface:    surface,
		PowerPreference:      opts.PowerPreference,
	})
	if err != nil {
		surface.Release()
		instance.Release()
		return nil, common.WrapError(common.ErrAdapterRequest, err, "no compatible adapter")
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: common.Coalesce(opts.DeviceLabel, "Main Device"),
	})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, common.WrapError(common.ErrDeviceRequest, err, "adapter refused device")
	}
	queue := device.GetQueue()

	wd := &wgpuDevice{device: device}
	wq := &wgpuQueue{queue: queue}
	ws := &wgpuSurface{surface: surface, adapter: adapter, device: device}

	return NewContext(wd, wq, ws, func() {
		queue.Release()
		device.Release()
		adapter.Release()
		surface.Release()
		instance.Release()
	}), nil
}

type wgpuDevice struct {
	device *wgpu.Device
}

var _ Device = &wgpuDevice{}

func (d *wgpuDevice) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	return d.device.CreateShaderModule(desc)
}

func (d *wgpuDevice) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return d.device.CreateBindGroupLayout(desc)
}

func (d *wgpuDevice) CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	return d.device.CreatePipelineLayout(desc)
}

func (d *wgpuDevice) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	return d.device.CreateRenderPipeline(desc)
}

func (d *wgpuDevice) CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	return d.device.CreateBuffer(desc)
}

func (d *wgpuDevice) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	return d.device.CreateBindGroup(desc)
}

func (d *wgpuDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	encoder, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &wgpuCommandEncoder{encoder: encoder}, nil
}

func (d *wgpuDevice) Release(handle any) {
	switch h := handle.(type) {
	case *wgpu.ShaderModule:
		if h != nil {
			h.Release()
		}
	case *wgpu.BindGroupLayout:
		if h != nil {
			h.Release()
		}
	case *wgpu.PipelineLayout:
		if h != nil {
			h.Release()
		}
	case *wgpu.RenderPipeline:
		if h != nil {
			h.Release()
		}
	case *wgpu.Buffer:
		if h != nil {
			h.Release()
		}
	case *wgpu.BindGroup:
		if h != nil {
			h.Release()
		}
	}
}

type wgpuQueue struct {
	queue *wgpu.Queue
}

var _ Queue = &wgpuQueue{}

func (q *wgpuQueue) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	return q.queue.WriteBuffer(buffer, offset, data)
}

func (q *wgpuQueue) Submit(commands *wgpu.CommandBuffer) {
	q.queue.Submit(commands)
	commands.Release()
}

type wgpuCommandEncoder struct {
	encoder *wgpu.CommandEncoder
}

var _ CommandEncoder = &wgpuCommandEncoder{}

func (e *wgpuCommandEncoder) BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass {
	return &wgpuRenderPass{pass: e.encoder.BeginRenderPass(desc)}
}

func (e *wgpuCommandEncoder) Finish() (*wgpu.CommandBuffer, error) {
	return e.encoder.Finish(nil)
}

func (e *wgpuCommandEncoder) Release() {
	e.encoder.Release()
}

type wgpuRenderPass struct {
	pass *wgpu.RenderPassEncoder
}

var _ RenderPass = &wgpuRenderPass{}

func (p *wgpuRenderPass) SetPipeline(pipeline *wgpu.RenderPipeline) {
	p.pass.SetPipeline(pipeline)
}

func (p *wgpuRenderPass) SetBindGroup(index uint32, group *wgpu.BindGroup, dynamicOffsets []uint32) {
	p.pass.SetBindGroup(index, group, dynamicOffsets)
}

func (p *wgpuRenderPass) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64) {
	p.pass.SetVertexBuffer(slot, buffer, offset, size)
}

func (p *wgpuRenderPass) SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset, size uint64) {
	p.pass.SetIndexBuffer(buffer, format, offset, size)
}

func (p *wgpuRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *wgpuRenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (p *wgpuRenderPass) End() error {
	return p.pass.End()
}

func (p *wgpuRenderPass) Release() {
	p.pass.Release()
}

type wgpuSurface struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
}

var _ Surface = &wgpuSurface{}

func (s *wgpuSurface) Formats() []wgpu.TextureFormat {
	return s.surface.GetCapabilities(s.adapter).Formats
}

func (s *wgpuSurface) Configure(config SurfaceConfig) {
	capabilities := s.surface.GetCapabilities(s.adapter)
	s.surface.Configure(s.adapter, s.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      config.Format,
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: config.PresentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (s *wgpuSurface) AcquireTexture() (SurfaceTexture, error) {
	texture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("failed to create surface texture view: %w", err)
	}
	return &wgpuSurfaceTexture{texture: texture, view: view}, nil
}

func (s *wgpuSurface) Present() {
	s.surface.Present()
}

func (s *wgpuSurface) Release() {
	s.surface.Release()
}

type wgpuSurfaceTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (t *wgpuSurfaceTexture) View() *wgpu.TextureView {
	return t.view
}

func (t *wgpuSurfaceTexture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
