// Package gputest provides recording fakes of the engine/gpu interfaces so the
// resource, scene, surface and renderer packages can be exercised without a GPU.
package gputest

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-demo/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrInjected is a generic failure used by tests that inject errors.
var ErrInjected = errors.New("injected failure")

// Device records every creation call and hands out distinct placeholder handles.
// Set one of the Fail* fields to make the matching call return that error.
type Device struct {
	ShaderModules    []*wgpu.ShaderModuleDescriptor
	BindGroupLayouts []*wgpu.BindGroupLayoutDescriptor
	PipelineLayouts  []*wgpu.PipelineLayoutDescriptor
	RenderPipelines  []*wgpu.RenderPipelineDescriptor
	Buffers          []*wgpu.BufferDescriptor
	BindGroups       []*wgpu.BindGroupDescriptor
	Encoders         []*CommandEncoder
	Released         []any

	FailShader   error
	FailPipeline error
	FailBuffer   error
	FailEncoder  error
}

var _ gpu.Device = &Device{}

// NewDevice returns an empty recording device.
func NewDevice() *Device {
	return &Device{}
}

func (d *Device) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	if d.FailShader != nil {
		return nil, d.FailShader
	}
	d.ShaderModules = append(d.ShaderModules, desc)
	return new(wgpu.ShaderModule), nil
}

func (d *Device) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	d.BindGroupLayouts = append(d.BindGroupLayouts, desc)
	return new(wgpu.BindGroupLayout), nil
}

func (d *Device) CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	d.PipelineLayouts = append(d.PipelineLayouts, desc)
	return new(wgpu.PipelineLayout), nil
}

func (d *Device) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	if d.FailPipeline != nil {
		return nil, d.FailPipeline
	}
	d.RenderPipelines = append(d.RenderPipelines, desc)
	return new(wgpu.RenderPipeline), nil
}

func (d *Device) CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	if d.FailBuffer != nil {
		return nil, d.FailBuffer
	}
	d.Buffers = append(d.Buffers, desc)
	return new(wgpu.Buffer), nil
}

func (d *Device) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	d.BindGroups = append(d.BindGroups, desc)
	return new(wgpu.BindGroup), nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	if d.FailEncoder != nil {
		return nil, d.FailEncoder
	}
	e := &CommandEncoder{Label: label}
	d.Encoders = append(d.Encoders, e)
	return e, nil
}

func (d *Device) Release(handle any) {
	d.Released = append(d.Released, handle)
}

// LastEncoder returns the most recently created encoder, or nil.
func (d *Device) LastEncoder() *CommandEncoder {
	if len(d.Encoders) == 0 {
		return nil
	}
	return d.Encoders[len(d.Encoders)-1]
}

// Write is one recorded Queue.WriteBuffer call.
type Write struct {
	Buffer *wgpu.Buffer
	Offset uint64
	Data   []byte
}

// Queue records buffer writes and submissions.
type Queue struct {
	Writes    []Write
	Submitted []*wgpu.CommandBuffer

	FailWrite error

	// FailWriteAt makes the n-th WriteBuffer call (1-based) fail with ErrInjected. 0 disables it.
	FailWriteAt int
	writeCalls  int
}

var _ gpu.Queue = &Queue{}

// NewQueue returns an empty recording queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	q.writeCalls++
	if q.FailWrite != nil {
		return q.FailWrite
	}
	if q.FailWriteAt > 0 && q.writeCalls == q.FailWriteAt {
		return ErrInjected
	}
	q.Writes = append(q.Writes, Write{Buffer: buffer, Offset: offset, Data: append([]byte(nil), data...)})
	return nil
}

func (q *Queue) Submit(commands *wgpu.CommandBuffer) {
	q.Submitted = append(q.Submitted, commands)
}

// WritesTo returns the recorded writes targeting buffer, in order.
func (q *Queue) WritesTo(buffer *wgpu.Buffer) []Write {
	var out []Write
	for _, w := range q.Writes {
		if w.Buffer == buffer {
			out = append(out, w)
		}
	}
	return out
}

// CommandEncoder records the passes begun on it.
type CommandEncoder struct {
	Label    string
	Passes   []*RenderPass
	Finished bool
	Released bool

	FailFinish error
}

var _ gpu.CommandEncoder = &CommandEncoder{}

func (e *CommandEncoder) BeginRenderPass(desc *wgpu.RenderPassDescriptor) gpu.RenderPass {
	p := &RenderPass{Descriptor: desc}
	e.Passes = append(e.Passes, p)
	return p
}

func (e *CommandEncoder) Finish() (*wgpu.CommandBuffer, error) {
	if e.FailFinish != nil {
		return nil, e.FailFinish
	}
	e.Finished = true
	return new(wgpu.CommandBuffer), nil
}

func (e *CommandEncoder) Release() {
	e.Released = true
}

// Command is one recorded render pass call.
type Command struct {
	Op        string
	Pipeline  *wgpu.RenderPipeline
	Index     uint32
	BindGroup *wgpu.BindGroup
	Buffer    *wgpu.Buffer
	Format    wgpu.IndexFormat
	Count     uint32
}

// RenderPass records its calls as Commands.
type RenderPass struct {
	Descriptor *wgpu.RenderPassDescriptor
	Commands   []Command
	Ended      bool
}

var _ gpu.RenderPass = &RenderPass{}

func (p *RenderPass) SetPipeline(pipeline *wgpu.RenderPipeline) {
	p.Commands = append(p.Commands, Command{Op: "SetPipeline", Pipeline: pipeline})
}

func (p *RenderPass) SetBindGroup(index uint32, group *wgpu.BindGroup, _ []uint32) {
	p.Commands = append(p.Commands, Command{Op: "SetBindGroup", Index: index, BindGroup: group})
}

func (p *RenderPass) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, _, _ uint64) {
	p.Commands = append(p.Commands, Command{Op: "SetVertexBuffer", Index: slot, Buffer: buffer})
}

func (p *RenderPass) SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, _, _ uint64) {
	p.Commands = append(p.Commands, Command{Op: "SetIndexBuffer", Buffer: buffer, Format: format})
}

func (p *RenderPass) Draw(vertexCount, _, _, _ uint32) {
	p.Commands = append(p.Commands, Command{Op: "Draw", Count: vertexCount})
}

func (p *RenderPass) DrawIndexed(indexCount, _, _ uint32, _ int32, _ uint32) {
	p.Commands = append(p.Commands, Command{Op: "DrawIndexed", Count: indexCount})
}

func (p *RenderPass) End() error {
	p.Ended = true
	return nil
}

func (p *RenderPass) Release() {}

// Ops returns the recorded operation names in order.
func (p *RenderPass) Ops() []string {
	ops := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		ops[i] = c.Op
	}
	return ops
}

// SurfaceTexture is a placeholder swapchain image.
type SurfaceTexture struct {
	view     *wgpu.TextureView
	Released bool
}

func (t *SurfaceTexture) View() *wgpu.TextureView {
	return t.view
}

func (t *SurfaceTexture) Release() {
	t.Released = true
}

// Surface records configurations and presents.
type Surface struct {
	SupportedFormats []wgpu.TextureFormat
	Configs          []gpu.SurfaceConfig
	Acquired         []*SurfaceTexture
	Presents         int
	Released         bool

	// FailAcquire makes AcquireTexture fail while it is non-nil.
	FailAcquire error
}

var _ gpu.Surface = &Surface{}

// NewSurface returns a surface that supports the given formats.
func NewSurface(formats ...wgpu.TextureFormat) *Surface {
	return &Surface{SupportedFormats: formats}
}

func (s *Surface) Formats() []wgpu.TextureFormat {
	return s.SupportedFormats
}

func (s *Surface) Configure(config gpu.SurfaceConfig) {
	s.Configs = append(s.Configs, config)
}

func (s *Surface) AcquireTexture() (gpu.SurfaceTexture, error) {
	if s.FailAcquire != nil {
		return nil, s.FailAcquire
	}
	t := &SurfaceTexture{view: new(wgpu.TextureView)}
	s.Acquired = append(s.Acquired, t)
	return t, nil
}

func (s *Surface) Present() {
	s.Presents++
}

func (s *Surface) Release() {
	s.Released = true
}

// LastConfig returns the most recent configuration, or the zero value.
func (s *Surface) LastConfig() gpu.SurfaceConfig {
	if len(s.Configs) == 0 {
		return gpu.SurfaceConfig{}
	}
	return s.Configs[len(s.Configs)-1]
}

// NewContext bundles a fake device, queue and surface into a gpu.Context.
// Releasing the context releases the fake surface.
func NewContext(formats ...wgpu.TextureFormat) (*gpu.Context, *Device, *Queue, *Surface) {
	d, q, s := NewDevice(), NewQueue(), NewSurface(formats...)
	return gpu.NewContext(d, q, s, s.Release), d, q, s
}
