// Package renderer records the draw commands for a scene into a single render pass.
package renderer

import (
	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu"
	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
	"github.com/Carmen-Shannon/oxy-demo/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	cameraBindGroupSlot = 0
	modelBindGroupSlot  = 1
)

// DrawStats counts what happened to the scene's objects during one RenderScene call.
type DrawStats struct {
	Drawn          int
	SkippedHidden  int
	SkippedMissing int
}

// Total returns the number of objects the scene offered.
func (s DrawStats) Total() int {
	return s.Drawn + s.SkippedHidden + s.SkippedMissing
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	device     gpu.Device
	clearColor wgpu.Color
}

// Renderer turns a scene into a recorded command buffer. It never submits or presents.
type Renderer interface {
	// RenderScene records one render pass that clears view and draws every visible object of s.
	// Objects whose pipeline or mesh is not registered in rm are skipped.
	//
	// Parameters:
	//   - view: the color target, usually the current swapchain texture view
	//   - s: the scene to draw
	//   - rm: the resource manager holding the scene's pipelines and meshes
	//
	// Returns:
	//   - *wgpu.CommandBuffer: the finished commands, ready for Queue.Submit
	//   - DrawStats: drawn and skipped object counts
	//   - error: a RenderError if encoding failed
	RenderScene(view *wgpu.TextureView, s scene.Scene, rm resource.ResourceManager) (*wgpu.CommandBuffer, DrawStats, error)

	// ClearColor returns the color the pass clears to.
	ClearColor() wgpu.Color

	// SetClearColor changes the clear color for subsequent frames.
	//
	// Parameters:
	//   - color: the new clear color
	SetClearColor(color wgpu.Color)
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer that records with device.
//
// Parameters:
//   - device: the device used to create command encoders
//   - options: functional options, e.g. WithClearColor
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(device gpu.Device, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		device:     device,
		clearColor: DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) ClearColor() wgpu.Color {
	return r.clearColor
}

func (r *renderer) SetClearColor(color wgpu.Color) {
	r.clearColor = color
}

func (r *renderer) RenderScene(view *wgpu.TextureView, s scene.Scene, rm resource.ResourceManager) (*wgpu.CommandBuffer, DrawStats, error) {
	var stats DrawStats

	encoder, err := r.device.CreateCommandEncoder("Render Encoder")
	if err != nil {
		return nil, stats, common.WrapError(common.ErrRender, err, "failed to create command encoder")
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	})

	if group, ok := s.CameraBindGroup(); ok {
		pass.SetBindGroup(cameraBindGroupSlot, group, nil)
	}

	for _, obj := range s.RenderObjects() {
		if !obj.Visible {
			stats.SkippedHidden++
			continue
		}
		pipeline, ok := rm.GetPipeline(obj.PipelineId)
		if !ok {
			stats.SkippedMissing++
			continue
		}
		mesh, ok := rm.GetMesh(obj.MeshId)
		if !ok {
			stats.SkippedMissing++
			continue
		}
		drawObject(pass, pipeline, mesh, obj)
		stats.Drawn++
	}

	endErr := pass.End()
	pass.Release()
	if endErr != nil {
		return nil, stats, common.WrapError(common.ErrRender, endErr, "failed to end render pass")
	}

	commands, err := encoder.Finish()
	if err != nil {
		return nil, stats, common.WrapError(common.ErrRender, err, "failed to finish command encoder")
	}
	return commands, stats, nil
}

// drawObject records the bind/draw sequence for one object.
func drawObject(pass gpu.RenderPass, pipeline *wgpu.RenderPipeline, mesh *resource.Mesh, obj *scene.RenderObject) {
	pass.SetPipeline(pipeline)
	if obj.ModelBindGroup != nil {
		pass.SetBindGroup(modelBindGroupSlot, obj.ModelBindGroup, nil)
	}
	pass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	if mesh.Indexed() {
		pass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.IndexCount(), 1, 0, 0, 0)
		return
	}
	pass.Draw(mesh.VertexCount(), 1, 0, 0)
}
