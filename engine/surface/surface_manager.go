// Package surface negotiates and owns the swapchain configuration of the window surface.
package surface

import (
	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu"
	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

type surfaceManager struct {
	surface gpu.Surface
	config  gpu.SurfaceConfig
}

// SurfaceManager keeps the surface configured for the current window size and present mode.
type SurfaceManager interface {
	// Resize reconfigures the surface for a new size. Either dimension being 0 (minimized) is a no-op.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height uint32)

	// SetVsync switches between FIFO (vsync) and immediate presentation and reconfigures.
	//
	// Parameters:
	//   - vsync: true for FIFO
	SetVsync(vsync bool)

	// AcquireFrame returns the next swapchain texture wrapped in a Frame.
	//
	// Returns:
	//   - *Frame: the frame to render into and present
	//   - error: a RenderError if the texture could not be acquired
	AcquireFrame() (*Frame, error)

	// Format returns the negotiated texture format.
	Format() wgpu.TextureFormat

	// Width returns the configured width in pixels.
	Width() uint32

	// Height returns the configured height in pixels.
	Height() uint32

	// PresentMode returns the configured present mode.
	PresentMode() wgpu.PresentMode

	// Config returns the full current configuration.
	Config() gpu.SurfaceConfig
}

var _ SurfaceManager = &surfaceManager{}

// NewSurfaceManager negotiates a format and configures surface immediately.
// The first sRGB format the surface supports is preferred, otherwise its first format is used.
//
// Parameters:
//   - surface: the window surface
//   - width, height: the initial size in pixels
//   - vsync: true for FIFO presentation, false for immediate
//
// Returns:
//   - SurfaceManager: the configured manager
func NewSurfaceManager(surface gpu.Surface, width, height uint32, vsync bool) SurfaceManager {
	sm := &surfaceManager{
		surface: surface,
		config: gpu.SurfaceConfig{
			Format:      chooseFormat(surface.Formats()),
			Width:       width,
			Height:      height,
			PresentMode: presentMode(vsync),
		},
	}
	logger.Info("surface format %v, present mode %v, %dx%d", sm.config.Format, sm.config.PresentMode, width, height)
	sm.configure()
	return sm
}

func chooseFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if gpu.IsSRGB(f) {
			return f
		}
	}
	if len(formats) > 0 {
		return formats[0]
	}
	return wgpu.TextureFormatBGRA8UnormSrgb
}

func presentMode(vsync bool) wgpu.PresentMode {
	if vsync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}

func (sm *surfaceManager) configure() {
	if sm.config.Width == 0 || sm.config.Height == 0 {
		return
	}
	sm.surface.Configure(sm.config)
}

func (sm *surfaceManager) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	sm.config.Width = width
	sm.config.Height = height
	sm.configure()
}

func (sm *surfaceManager) SetVsync(vsync bool) {
	mode := presentMode(vsync)
	if mode == sm.config.PresentMode {
		return
	}
	sm.config.PresentMode = mode
	sm.configure()
}

func (sm *surfaceManager) AcquireFrame() (*Frame, error) {
	texture, err := sm.surface.AcquireTexture()
	if err != nil {
		return nil, common.WrapError(common.ErrRender, err, "Failed to acquire next surface texture")
	}
	return &Frame{surface: sm.surface, texture: texture}, nil
}

func (sm *surfaceManager) Format() wgpu.TextureFormat {
	return sm.config.Format
}

func (sm *surfaceManager) Width() uint32 {
	return sm.config.Width
}

func (sm *surfaceManager) Height() uint32 {
	return sm.config.Height
}

func (sm *surfaceManager) PresentMode() wgpu.PresentMode {
	return sm.config.PresentMode
}

func (sm *surfaceManager) Config() gpu.SurfaceConfig {
	return sm.config
}
