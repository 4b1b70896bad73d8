// Package engine ties the GPU context, surface, resources, renderer and scenes into a per-frame Render call.
package engine

import (
	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/config"
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/Carmen-Shannon/oxy-demo/engine/profiler"
	"github.com/Carmen-Shannon/oxy-demo/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
	"github.com/Carmen-Shannon/oxy-demo/engine/scene"
	"github.com/Carmen-Shannon/oxy-demo/engine/surface"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// Target is the window a GraphicsEngine presents to.
type Target interface {
	// SurfaceDescriptor returns the platform surface descriptor, or nil if the window is gone.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// graphicsEngine implements the GraphicsEngine interface.
// Everything runs on the caller's thread; Render must not be called concurrently.
type graphicsEngine struct {
	session uuid.UUID
	log     *log.Logger

	ctx       *gpu.Context
	surface   surface.SurfaceManager
	resources resource.ResourceManager
	renderer  renderer.Renderer
	scenes    scene.SceneManager

	profiler         *profiler.Profiler
	profilingEnabled bool

	contextOptions  gpu.ContextOptions
	resourceOptions []resource.ResourceManagerBuilderOption

	released bool
}

// GraphicsEngine owns the GPU context and draws the current scene once per Render call.
type GraphicsEngine interface {
	// Render runs one frame: scene update, camera uniform upload, object uniform sync,
	// frame acquisition, render pass recording, submit, present, then metrics.
	// Failures are RenderErrors; the frame is dropped and the caller may keep going.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - state: the current input state
	//
	// Returns:
	//   - error: a RenderError if any step failed
	Render(dt float32, state *input.State) error

	// Resize reconfigures the surface. A zero dimension (minimized window) is ignored.
	// The current scene's camera aspect follows the new size.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height uint32)

	// ApplyConfig hot-reloads the clear color and vsync settings.
	//
	// Parameters:
	//   - cfg: the new rendering configuration
	//
	// Returns:
	//   - error: a Config error if cfg is invalid, in which case nothing changes
	ApplyConfig(cfg config.RenderingConfig) error

	// AddScene prepares s for this engine's surface and registers it under s.Name().
	// The current scene does not change.
	//
	// Parameters:
	//   - s: the scene to add
	//
	// Returns:
	//   - uuid.UUID: the scene's handle
	//   - error: the scene's initialization error
	AddScene(s scene.Scene) (uuid.UUID, error)

	// SetScene makes the registered scene called name current.
	//
	// Parameters:
	//   - name: the scene name
	//
	// Returns:
	//   - error: a SceneNotFound error if no such scene is registered
	SetScene(name string) error

	// Scene returns the current scene.
	Scene() scene.Scene

	// Scenes returns the scene manager holding every registered scene.
	Scenes() scene.SceneManager

	// Metrics returns the frame time profiler.
	Metrics() *profiler.Profiler

	// ResourceManager returns the GPU resource cache.
	ResourceManager() resource.ResourceManager

	// Surface returns the surface manager.
	Surface() surface.SurfaceManager

	// Renderer returns the scene renderer.
	Renderer() renderer.Renderer

	// Session returns the id attached to this engine's log lines.
	Session() uuid.UUID

	// Release frees every GPU resource and the device. Safe to call more than once.
	Release()
}

var _ GraphicsEngine = &graphicsEngine{}

// NewGraphicsEngine acquires a GPU context for target and builds an engine around it.
// This blocks on adapter and device negotiation.
//
// Parameters:
//   - target: the window to present to
//   - s: the initial scene
//   - cfg: the rendering configuration
//   - options: functional options for engine configuration
//
// Returns:
//   - GraphicsEngine: the engine, with s initialized and current
//   - error: a SurfaceCreation, AdapterRequest, DeviceRequest or scene initialization error
func NewGraphicsEngine(target Target, s scene.Scene, cfg config.RenderingConfig, options ...GraphicsEngineBuilderOption) (GraphicsEngine, error) {
	e := newGraphicsEngine(options...)
	ctx, err := gpu.RequestContext(target.SurfaceDescriptor(), e.contextOptions)
	if err != nil {
		e.log.Error("failed to acquire gpu context", "err", err)
		return nil, err
	}
	if err := e.init(ctx, uint32(target.Width()), uint32(target.Height()), s, cfg); err != nil {
		e.Release()
		return nil, err
	}
	return e, nil
}

// NewGraphicsEngineWithContext builds an engine around an already-acquired context.
// The engine takes ownership of ctx and releases it in Release.
//
// Parameters:
//   - ctx: the device, queue and surface to use
//   - width, height: the initial surface size in pixels
//   - s: the initial scene
//   - cfg: the rendering configuration
//   - options: functional options for engine configuration
//
// Returns:
//   - GraphicsEngine: the engine, with s initialized and current
//   - error: the scene initialization error
func NewGraphicsEngineWithContext(ctx *gpu.Context, width, height uint32, s scene.Scene, cfg config.RenderingConfig, options ...GraphicsEngineBuilderOption) (GraphicsEngine, error) {
	e := newGraphicsEngine(options...)
	if err := e.init(ctx, width, height, s, cfg); err != nil {
		e.Release()
		return nil, err
	}
	return e, nil
}

func newGraphicsEngine(options ...GraphicsEngineBuilderOption) *graphicsEngine {
	session := uuid.New()
	e := &graphicsEngine{
		session:        session,
		log:            logger.With("session", session.String()),
		scenes:         scene.NewSceneManager(),
		profiler:       profiler.NewProfiler(),
		contextOptions: gpu.DefaultContextOptions(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *graphicsEngine) init(ctx *gpu.Context, width, height uint32, s scene.Scene, cfg config.RenderingConfig) error {
	e.ctx = ctx
	e.surface = surface.NewSurfaceManager(ctx.Surface, width, height, cfg.Vsync)
	e.resources = resource.NewResourceManager(ctx.Device, ctx.Queue, e.resourceOptions...)
	e.renderer = renderer.NewRenderer(ctx.Device, renderer.WithClearColor(renderer.ClearColorFromRGBA(cfg.ClearColor)))

	if cfg.MsaaSamples > 1 {
		e.log.Warn("msaa is not supported, rendering single-sample", "requested", cfg.MsaaSamples)
	}

	if _, err := e.AddScene(s); err != nil {
		return err
	}
	if err := e.SetScene(s.Name()); err != nil {
		return err
	}
	e.log.Info("engine ready", "format", e.surface.Format(), "width", width, "height", height, "scene", s.Name())
	return nil
}

func (e *graphicsEngine) AddScene(s scene.Scene) (uuid.UUID, error) {
	s.SetSurfaceFormat(e.surface.Format())
	if err := s.Initialize(e.resources); err != nil {
		e.log.Error("scene initialization failed", "scene", s.Name(), "err", err)
		return uuid.Nil, err
	}
	return e.scenes.RegisterScene(s.Name(), s), nil
}

func (e *graphicsEngine) SetScene(name string) error {
	if err := e.scenes.SetCurrentScene(name); err != nil {
		return err
	}
	s, _ := e.scenes.CurrentScene()
	s.Resize(e.surface.Width(), e.surface.Height())
	e.log.Debug("current scene changed", "scene", name)
	return nil
}

func (e *graphicsEngine) Render(dt float32, state *input.State) error {
	s, ok := e.scenes.CurrentScene()
	if !ok {
		return common.NewError(common.ErrRender, "no current scene")
	}

	s.Update(dt, state)
	if err := s.UpdateCameraUniform(e.resources); err != nil {
		return common.WrapError(common.ErrRender, err, "camera uniform update failed")
	}
	if err := s.SyncObjectUniforms(e.resources); err != nil {
		return common.WrapError(common.ErrRender, err, "object uniform sync failed")
	}

	frame, err := e.surface.AcquireFrame()
	if err != nil {
		return err
	}
	commands, stats, err := e.renderer.RenderScene(frame.View(), s, e.resources)
	if err != nil {
		frame.Discard()
		return err
	}
	e.ctx.Queue.Submit(commands)
	frame.Present()

	e.profiler.RecordFrame(dt)
	e.profiler.SetRenderObjectsCount(stats.Drawn)
	e.profiler.CheckPerformance()
	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

func (e *graphicsEngine) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	e.surface.Resize(width, height)
	if s, ok := e.scenes.CurrentScene(); ok {
		s.Resize(width, height)
	}
}

func (e *graphicsEngine) ApplyConfig(cfg config.RenderingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.renderer.SetClearColor(renderer.ClearColorFromRGBA(cfg.ClearColor))
	e.surface.SetVsync(cfg.Vsync)
	e.log.Info("rendering config applied", "clear_color", cfg.ClearColor, "vsync", cfg.Vsync)
	return nil
}

func (e *graphicsEngine) Scene() scene.Scene {
	s, _ := e.scenes.CurrentScene()
	return s
}

func (e *graphicsEngine) Scenes() scene.SceneManager {
	return e.scenes
}

func (e *graphicsEngine) Metrics() *profiler.Profiler {
	return e.profiler
}

func (e *graphicsEngine) ResourceManager() resource.ResourceManager {
	return e.resources
}

func (e *graphicsEngine) Surface() surface.SurfaceManager {
	return e.surface
}

func (e *graphicsEngine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *graphicsEngine) Session() uuid.UUID {
	return e.session
}

func (e *graphicsEngine) Release() {
	if e.released {
		return
	}
	e.released = true
	if e.resources != nil {
		e.resources.Release()
	}
	if e.ctx != nil {
		e.ctx.Release()
	}
	e.log.Info("engine released", "frames", e.profiler.TotalFrames())
}
