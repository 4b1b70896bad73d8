package engine

import (
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu"
	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
)

// GraphicsEngineBuilderOption is a functional option for configuring a GraphicsEngine.
// Use the With* functions to create options that are applied directly to the engine instance.
type GraphicsEngineBuilderOption func(*graphicsEngine)

// WithProfiling enables or disables the periodic memory and FPS log line.
// Frame time metrics and performance warnings are always collected.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - GraphicsEngineBuilderOption: option function to apply
func WithProfiling(enabled bool) GraphicsEngineBuilderOption {
	return func(e *graphicsEngine) {
		e.profilingEnabled = enabled
	}
}

// WithContextOptions overrides adapter and device negotiation. Ignored by NewGraphicsEngineWithContext.
//
// Parameters:
//   - opts: the adapter and device options
//
// Returns:
//   - GraphicsEngineBuilderOption: option function to apply
func WithContextOptions(opts gpu.ContextOptions) GraphicsEngineBuilderOption {
	return func(e *graphicsEngine) {
		e.contextOptions = opts
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - GraphicsEngineBuilderOption: option function to apply
func WithForceSoftwareRenderer(force bool) GraphicsEngineBuilderOption {
	return func(e *graphicsEngine) {
		e.contextOptions.ForceFallbackAdapter = force
	}
}

// WithResourceOptions passes options through to the engine's ResourceManager.
//
// Parameters:
//   - opts: resource manager options, e.g. resource.WithShaderValidation(false)
//
// Returns:
//   - GraphicsEngineBuilderOption: option function to apply
func WithResourceOptions(opts ...resource.ResourceManagerBuilderOption) GraphicsEngineBuilderOption {
	return func(e *graphicsEngine) {
		e.resourceOptions = append(e.resourceOptions, opts...)
	}
}
