package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultClearColor is the dark red background used when no clear color is configured.
var DefaultClearColor = wgpu.Color{R: 0.5, G: 0.2, B: 0.2, A: 1.0}

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the color the render pass clears to.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// ClearColorFromRGBA converts a config style [r, g, b, a] array into a wgpu.Color.
//
// Parameters:
//   - rgba: the color components in [0, 1]
//
// Returns:
//   - wgpu.Color: the converted color
func ClearColorFromRGBA(rgba [4]float64) wgpu.Color {
	return wgpu.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
}
