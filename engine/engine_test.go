package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/camera"
	"github.com/Carmen-Shannon/oxy-demo/engine/config"
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
	"github.com/Carmen-Shannon/oxy-demo/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demo/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

type engineFixture struct {
	engine  GraphicsEngine
	device  *gputest.Device
	queue   *gputest.Queue
	surface *gputest.Surface
}

func newEngine(t *testing.T, opts ...GraphicsEngineBuilderOption) engineFixture {
	t.Helper()
	ctx, device, queue, surf := gputest.NewContext(wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb)
	e, err := NewGraphicsEngineWithContext(ctx, 800, 600, scene.NewDemoScene(800.0/600.0), config.Default().Rendering, opts...)
	if err != nil {
		t.Fatalf("NewGraphicsEngineWithContext() error: %v", err)
	}
	t.Cleanup(e.Release)
	return engineFixture{engine: e, device: device, queue: queue, surface: surf}
}

func TestGraphicsEngine_Construction(t *testing.T) {
	f := newEngine(t)

	if got := f.engine.Surface().Format(); got != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Errorf("surface format = %v, want BGRA8UnormSrgb", got)
	}
	if got := f.surface.LastConfig().PresentMode; got != wgpu.PresentModeFifo {
		t.Errorf("present mode = %v, want Fifo with default vsync", got)
	}
	s := f.engine.Scene()
	if s == nil || !s.Initialized() {
		t.Fatal("initial scene is not current and initialized")
	}
	if got := f.device.RenderPipelines[0].Fragment.Targets[0].Format; got != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Errorf("pipeline target format = %v, want the negotiated surface format", got)
	}
	if f.engine.Renderer().ClearColor() != renderer.DefaultClearColor {
		t.Errorf("clear color = %+v, want default", f.engine.Renderer().ClearColor())
	}
	if f.engine.Session() == uuid.Nil {
		t.Error("session id not set")
	}
}

func TestGraphicsEngine_SceneInitFailure(t *testing.T) {
	ctx, device, _, surf := gputest.NewContext(wgpu.TextureFormatBGRA8UnormSrgb)
	device.FailShader = gputest.ErrInjected

	_, err := NewGraphicsEngineWithContext(ctx, 800, 600, scene.NewDemoScene(1), config.Default().Rendering)
	if !common.IsKind(err, common.ErrShaderCompilation) {
		t.Fatalf("error = %v, want ShaderCompilation", err)
	}
	if !surf.Released {
		t.Error("context not released after failed construction")
	}
}

func TestGraphicsEngine_RenderFrame(t *testing.T) {
	f := newEngine(t)
	f.queue.Writes = nil

	if err := f.engine.Render(1.0/60, input.NewState()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if len(f.queue.Submitted) != 1 {
		t.Errorf("Submitted = %d, want 1", len(f.queue.Submitted))
	}
	if f.surface.Presents != 1 {
		t.Errorf("Presents = %d, want 1", f.surface.Presents)
	}
	if !f.surface.Acquired[0].Released {
		t.Error("frame texture not released")
	}

	// camera uniform plus both dirty model uniforms
	if len(f.queue.Writes) != 3 {
		t.Errorf("uniform writes = %d, want 3", len(f.queue.Writes))
	}
	pass := f.device.LastEncoder().Passes[0]
	draws := 0
	for _, op := range pass.Ops() {
		if op == "Draw" || op == "DrawIndexed" {
			draws++
		}
	}
	if draws != 2 {
		t.Errorf("draw calls = %d, want 2", draws)
	}

	m := f.engine.Metrics()
	if m.TotalFrames() != 1 || m.RenderObjectsCount() != 2 {
		t.Errorf("metrics frames=%d objects=%d, want 1 and 2", m.TotalFrames(), m.RenderObjectsCount())
	}

	// second frame: only the camera is rewritten
	f.queue.Writes = nil
	if err := f.engine.Render(1.0/60, input.NewState()); err != nil {
		t.Fatalf("second Render() error: %v", err)
	}
	if len(f.queue.Writes) != 1 {
		t.Errorf("uniform writes on clean frame = %d, want 1", len(f.queue.Writes))
	}
}

func TestGraphicsEngine_RenderAppliesInputBeforeUpload(t *testing.T) {
	f := newEngine(t)
	state := input.NewState()
	state.SetKey(common.KeyW, true)

	before := f.engine.Scene().Camera().Eye()
	f.queue.Writes = nil
	if err := f.engine.Render(0.5, state); err != nil {
		t.Fatal(err)
	}
	after := f.engine.Scene().Camera().Eye()
	if after.Z() >= before.Z() {
		t.Errorf("eye z = %v after W, want less than %v", after.Z(), before.Z())
	}

	var want camera.GPUCameraUniform
	want.Update(f.engine.Scene().Camera())
	last := f.queue.Writes[0].Data
	if string(last) != string(want.Marshal()) {
		t.Error("uploaded camera uniform does not reflect the updated camera")
	}
}

func TestGraphicsEngine_AcquireFailureSkipsFrame(t *testing.T) {
	f := newEngine(t)
	f.surface.FailAcquire = gputest.ErrInjected

	err := f.engine.Render(1.0/60, input.NewState())
	if !common.IsKind(err, common.ErrRender) {
		t.Fatalf("Render() error = %v, want RenderError", err)
	}
	if len(f.queue.Submitted) != 0 || f.surface.Presents != 0 {
		t.Error("failed frame was submitted or presented")
	}
	if f.engine.Metrics().TotalFrames() != 0 {
		t.Error("failed frame recorded in metrics")
	}

	f.surface.FailAcquire = nil
	if err := f.engine.Render(1.0/60, input.NewState()); err != nil {
		t.Errorf("Render() after recovery error: %v", err)
	}
}

func TestGraphicsEngine_EncoderFailureDiscardsFrame(t *testing.T) {
	f := newEngine(t)
	f.device.FailEncoder = gputest.ErrInjected

	if err := f.engine.Render(1.0/60, input.NewState()); !common.IsKind(err, common.ErrRender) {
		t.Fatalf("Render() error = %v, want RenderError", err)
	}
	if f.surface.Presents != 0 {
		t.Error("frame presented after encoder failure")
	}
	if !f.surface.Acquired[0].Released {
		t.Error("discarded frame texture not released")
	}
}

func TestGraphicsEngine_Resize(t *testing.T) {
	f := newEngine(t)
	configs := len(f.surface.Configs)

	f.engine.Resize(0, 0)
	if len(f.surface.Configs) != configs {
		t.Error("zero resize reconfigured the surface")
	}

	f.engine.Resize(1000, 500)
	if cfg := f.surface.LastConfig(); cfg.Width != 1000 || cfg.Height != 500 {
		t.Errorf("surface config = %+v, want 1000x500", cfg)
	}
	if got := f.engine.Scene().Camera().Aspect(); got != 2 {
		t.Errorf("camera aspect = %v, want 2", got)
	}
}

func TestGraphicsEngine_ApplyConfig(t *testing.T) {
	f := newEngine(t)

	bad := config.Default().Rendering
	bad.ClearColor[0] = 2
	if err := f.engine.ApplyConfig(bad); !common.IsKind(err, common.ErrConfig) {
		t.Fatalf("ApplyConfig(invalid) error = %v, want ConfigError", err)
	}
	if f.engine.Renderer().ClearColor() != renderer.DefaultClearColor {
		t.Error("invalid config changed the clear color")
	}

	good := config.Default().Rendering
	good.ClearColor = [4]float64{0, 0, 0, 1}
	good.Vsync = false
	if err := f.engine.ApplyConfig(good); err != nil {
		t.Fatalf("ApplyConfig() error: %v", err)
	}
	if got := f.engine.Renderer().ClearColor(); got != (wgpu.Color{A: 1}) {
		t.Errorf("clear color = %+v, want black", got)
	}
	if got := f.surface.LastConfig().PresentMode; got != wgpu.PresentModeImmediate {
		t.Errorf("present mode = %v, want Immediate", got)
	}
}

func TestGraphicsEngine_SceneSwitching(t *testing.T) {
	f := newEngine(t)
	first := f.engine.Scene()

	second := scene.NewDemoScene(1, scene.WithName("second"), scene.WithInitialObjects())
	handle, err := f.engine.AddScene(second)
	if err != nil {
		t.Fatalf("AddScene() error: %v", err)
	}
	if handle == uuid.Nil {
		t.Error("AddScene() returned nil handle")
	}
	if !second.Initialized() {
		t.Error("added scene not initialized")
	}
	if f.engine.Scene().Name() != "demo" {
		t.Error("AddScene changed the current scene")
	}

	if err := f.engine.SetScene("second"); err != nil {
		t.Fatalf("SetScene() error: %v", err)
	}
	if f.engine.Scene() != second {
		t.Error("current scene not switched")
	}
	if got := second.Camera().Aspect(); got != 800.0/600.0 {
		t.Errorf("switched scene aspect = %v, want surface aspect", got)
	}
	if err := f.engine.Render(1.0/60, input.NewState()); err != nil {
		t.Errorf("Render() on empty scene error: %v", err)
	}
	if f.engine.Metrics().RenderObjectsCount() != 0 {
		t.Error("empty scene reported drawn objects")
	}

	if err := f.engine.SetScene("missing"); !common.IsKind(err, common.ErrSceneNotFound) {
		t.Errorf("SetScene(missing) error = %v, want SceneNotFound", err)
	}
	if f.engine.Scene() != second {
		t.Error("failed SetScene changed the current scene")
	}

	rm := f.engine.ResourceManager()
	firstGroup, _ := first.CameraBindGroup()
	firstBuffer, _ := rm.GetBuffer(scene.CameraBufferId("demo"))
	var bound []any
	bound = append(bound, firstGroup, firstBuffer)
	for _, obj := range first.RenderObjects() {
		bound = append(bound, obj.ModelBindGroup, obj.ModelBuffer)
	}
	pipeline, _ := rm.GetPipeline(scene.BasicPipelineId)
	bound = append(bound, pipeline)

	// a scene with objects registers meshes, model uniforms and its own camera
	if _, err := f.engine.AddScene(scene.NewDemoScene(1, scene.WithName("third"))); err != nil {
		t.Fatalf("AddScene(third) error: %v", err)
	}
	if err := f.engine.SetScene("demo"); err != nil {
		t.Fatalf("SetScene(demo) error: %v", err)
	}
	writes := len(f.queue.WritesTo(firstBuffer))
	if err := f.engine.Render(1.0/60, input.NewState()); err != nil {
		t.Fatalf("Render() after switching back error: %v", err)
	}

	for _, handle := range bound {
		if wasReleased(f.device, handle) {
			t.Errorf("first scene handle %T released by adding other scenes", handle)
		}
	}
	if len(f.queue.WritesTo(firstBuffer)) != writes+1 {
		t.Error("first scene camera was not uploaded to its own buffer")
	}
	pass := f.device.LastEncoder().Passes[0]
	var slot0 []*wgpu.BindGroup
	for _, cmd := range pass.Commands {
		if cmd.Op == "SetBindGroup" && cmd.Index == 0 {
			slot0 = append(slot0, cmd.BindGroup)
		}
	}
	if len(slot0) == 0 {
		t.Fatal("no camera bind group set")
	}
	for _, group := range slot0 {
		if group != firstGroup {
			t.Error("slot 0 is not bound to the first scene's camera bind group")
		}
	}
	if f.engine.Metrics().RenderObjectsCount() != 2 {
		t.Errorf("drew %d objects, want the first scene's 2", f.engine.Metrics().RenderObjectsCount())
	}
}

func wasReleased(device *gputest.Device, handle any) bool {
	for _, r := range device.Released {
		if r == handle {
			return true
		}
	}
	return false
}

func TestGraphicsEngine_ReleaseOnce(t *testing.T) {
	ctx, device, _, surf := gputest.NewContext(wgpu.TextureFormatBGRA8UnormSrgb)
	e, err := NewGraphicsEngineWithContext(ctx, 800, 600, scene.NewDemoScene(1), config.Default().Rendering)
	if err != nil {
		t.Fatal(err)
	}
	e.Release()
	released := len(device.Released)
	e.Release()

	if !surf.Released {
		t.Error("surface not released")
	}
	if released == 0 || len(device.Released) != released {
		t.Errorf("device releases = %d then %d, want a nonzero count once", released, len(device.Released))
	}
}
