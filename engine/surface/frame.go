package surface

import (
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is one acquired swapchain texture. It must be either presented or discarded.
type Frame struct {
	surface gpu.Surface
	texture gpu.SurfaceTexture
	done    bool
}

// View returns the render target view, or nil once the frame is finished.
func (f *Frame) View() *wgpu.TextureView {
	if f.done {
		return nil
	}
	return f.texture.View()
}

// Present shows the frame and releases its texture. Later calls do nothing.
func (f *Frame) Present() {
	if f.done {
		return
	}
	f.done = true
	f.surface.Present()
	f.texture.Release()
}

// Discard releases the texture without presenting, e.g. after a failed render. Later calls do nothing.
func (f *Frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.texture.Release()
}
