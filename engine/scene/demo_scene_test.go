package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
	"github.com/Carmen-Shannon/oxy-demo/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/naga"
)

type sceneFixture struct {
	rm     resource.ResourceManager
	device *gputest.Device
	queue  *gputest.Queue
}

func newFixture() sceneFixture {
	device := gputest.NewDevice()
	queue := gputest.NewQueue()
	return sceneFixture{
		rm:     resource.NewResourceManager(device, queue, resource.WithShaderValidation(false)),
		device: device,
		queue:  queue,
	}
}

func initializedScene(t *testing.T, f sceneFixture, opts ...DemoSceneBuilderOption) Scene {
	t.Helper()
	s := NewDemoScene(800.0/600.0, opts...)
	if err := s.Initialize(f.rm); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	return s
}

func TestBasicShaderSource_Compiles(t *testing.T) {
	source, err := BasicShaderSource()
	if err != nil {
		t.Fatalf("BasicShaderSource() error: %v", err)
	}
	if _, err := naga.Compile(source); err != nil {
		t.Fatalf("embedded shader does not compile: %v", err)
	}
}

func TestBasicShaderSource_Declarations(t *testing.T) {
	p := basicShaderPreProcessor()
	if _, err := p.Process(basicShaderSource); err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	decls := p.Declarations()
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}
	want := []shader.AnnotationArg{shader.AnnotationArgCamera, shader.AnnotationArgModel}
	for i, d := range decls {
		if *d.Group != i || *d.Binding != 0 || d.Args[2] != want[i] {
			t.Errorf("declaration %d = group %d binding %d struct %s", i, *d.Group, *d.Binding, d.Args[2])
		}
	}
}

func TestDemoScene_InitializeCreatesResources(t *testing.T) {
	f := newFixture()
	s := initializedScene(t, f)

	if !s.Initialized() {
		t.Fatal("Initialized() = false")
	}
	for _, id := range []resource.ResourceId{BasicShaderId} {
		if _, ok := f.rm.GetShader(id); !ok {
			t.Errorf("shader %s missing", id)
		}
	}
	if _, ok := f.rm.GetPipeline(BasicPipelineId); !ok {
		t.Error("basic_pipeline missing")
	}
	if _, ok := f.rm.GetBuffer(CameraBufferId("demo")); !ok {
		t.Error("demo_camera_buffer missing")
	}
	if _, ok := f.rm.GetBindGroup(CameraBindGroupId("demo")); !ok {
		t.Error("demo_camera_bind_group missing")
	}
	if _, ok := f.rm.GetBindGroupLayout(CameraBindGroupLayoutId); !ok {
		t.Error("camera_bind_group_layout missing")
	}
	if group, ok := s.CameraBindGroup(); !ok || group == nil {
		t.Error("CameraBindGroup() not set")
	}

	objects := s.RenderObjects()
	if len(objects) != 2 {
		t.Fatalf("len(RenderObjects()) = %d, want 2", len(objects))
	}
	if objects[0].MeshId != MeshId(resource.PrimitiveQuad) || objects[1].MeshId != MeshId(resource.PrimitiveTriangle) {
		t.Error("initial objects are not a quad then a triangle")
	}
	if MeshId(resource.PrimitiveQuad) != resource.NewResourceId("quad_mesh") {
		t.Error("quad mesh id is not quad_mesh")
	}
	if objects[0].PipelineId != BasicPipelineId || objects[0].ModelBindGroup == nil {
		t.Error("object not wired to the basic pipeline and a model bind group")
	}

	desc := f.device.RenderPipelines[0]
	if desc.Fragment.Targets[0].Format != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Errorf("pipeline format = %v", desc.Fragment.Targets[0].Format)
	}
	if len(f.device.PipelineLayouts[0].BindGroupLayouts) != 2 {
		t.Error("pipeline layout does not carry camera and model layouts")
	}
}

func TestDemoScene_SecondSceneKeepsFirstSceneResources(t *testing.T) {
	f := newFixture()
	first := initializedScene(t, f)
	firstGroup, _ := first.CameraBindGroup()
	firstBuffer, _ := f.rm.GetBuffer(CameraBufferId("demo"))
	cameraLayout, _ := f.rm.GetBindGroupLayout(CameraBindGroupLayoutId)
	modelLayout, _ := f.rm.GetBindGroupLayout(ModelBindGroupLayoutId)
	pipeline, _ := f.rm.GetPipeline(BasicPipelineId)
	shaderModule, _ := f.rm.GetShader(BasicShaderId)
	released := len(f.device.Released)

	second := initializedScene(t, f, WithName("second"))

	if got := len(f.device.Released) - released; got != 0 {
		t.Fatalf("initializing a second scene released %d handles", got)
	}
	if len(f.device.RenderPipelines) != 1 {
		t.Errorf("created %d pipelines, want the shared one only", len(f.device.RenderPipelines))
	}
	if got, _ := f.rm.GetBindGroupLayout(CameraBindGroupLayoutId); got != cameraLayout {
		t.Error("camera layout was replaced")
	}
	if got, _ := f.rm.GetBindGroupLayout(ModelBindGroupLayoutId); got != modelLayout {
		t.Error("model layout was replaced")
	}
	if got, _ := f.rm.GetPipeline(BasicPipelineId); got != pipeline {
		t.Error("pipeline was replaced")
	}
	if got, _ := f.rm.GetShader(BasicShaderId); got != shaderModule {
		t.Error("shader was replaced")
	}
	if got, _ := f.rm.GetBindGroup(CameraBindGroupId("demo")); got != firstGroup {
		t.Error("first camera bind group was replaced")
	}

	secondGroup, _ := second.CameraBindGroup()
	if secondGroup == firstGroup {
		t.Error("scenes share a camera bind group")
	}
	secondBuffer, _ := f.rm.GetBuffer(CameraBufferId("second"))
	if secondBuffer == nil || secondBuffer == firstBuffer {
		t.Error("scenes share a camera buffer")
	}

	before := len(f.queue.WritesTo(firstBuffer))
	if err := first.UpdateCameraUniform(f.rm); err != nil {
		t.Fatal(err)
	}
	if len(f.queue.WritesTo(firstBuffer)) != before+1 {
		t.Error("first scene camera upload did not target its own buffer")
	}
}

func TestDemoScene_LayoutIsVertexUniform(t *testing.T) {
	f := newFixture()
	initializedScene(t, f)

	desc := f.device.BindGroupLayouts[0]
	if desc.Label != "Camera Uniform Bind Group Layout" {
		t.Errorf("label = %q", desc.Label)
	}
	entry := desc.Entries[0]
	if entry.Binding != 0 || entry.Visibility != wgpu.ShaderStageVertex || entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Errorf("entry = %+v", entry)
	}
}

func TestDemoScene_InitializeIdempotent(t *testing.T) {
	f := newFixture()
	s := initializedScene(t, f)
	before := f.rm.Len()

	if err := s.Initialize(f.rm); err != nil {
		t.Fatal(err)
	}
	if after := f.rm.Len(); after != before {
		t.Errorf("second Initialize changed resources: %+v -> %+v", before, after)
	}
	if len(s.RenderObjects()) != 2 {
		t.Errorf("second Initialize added objects, have %d", len(s.RenderObjects()))
	}
}

func TestDemoScene_InitializeFailureIsRetryable(t *testing.T) {
	f := newFixture()
	f.device.FailPipeline = gputest.ErrInjected
	s := NewDemoScene(1)

	err := s.Initialize(f.rm)
	if !common.IsKind(err, common.ErrPipelineCreation) {
		t.Fatalf("Initialize() error = %v, want PipelineCreation", err)
	}
	if s.Initialized() {
		t.Fatal("scene initialized after a pipeline failure")
	}

	f.device.FailPipeline = nil
	if err := s.Initialize(f.rm); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !s.Initialized() {
		t.Error("retry did not initialize")
	}
}

func TestDemoScene_ShaderFailure(t *testing.T) {
	f := newFixture()
	f.device.FailShader = gputest.ErrInjected
	s := NewDemoScene(1)
	if err := s.Initialize(f.rm); !common.IsKind(err, common.ErrShaderCompilation) {
		t.Errorf("Initialize() error = %v, want ShaderCompilation", err)
	}
}

func TestDemoScene_CRUDBeforeInitialize(t *testing.T) {
	s := NewDemoScene(1)
	if _, err := s.AddObject(resource.PrimitiveCube, mgl32.Vec3{}); err == nil {
		t.Error("AddObject() before Initialize succeeded")
	}
	if s.MoveObject(1, mgl32.Vec3{}) || s.RemoveObject(1) || s.SetObjectVisible(1, false) {
		t.Error("CRUD before Initialize reported success")
	}
	if _, ok := s.CameraBindGroup(); ok {
		t.Error("camera bind group present before Initialize")
	}
}

func TestDemoScene_AddMoveRemove(t *testing.T) {
	f := newFixture()
	s := initializedScene(t, f, WithInitialObjects())

	a, err := s.AddObject(resource.PrimitiveCube, mgl32.Vec3{1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.AddObject(resource.PrimitiveCube, mgl32.Vec3{-1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if a == b || a == 0 {
		t.Fatalf("ids %d and %d", a, b)
	}
	if f.rm.Len().Meshes != 1 {
		t.Errorf("cubes do not share a mesh, %d meshes", f.rm.Len().Meshes)
	}

	if !s.MoveObject(a, mgl32.Vec3{0, 2, 0}) {
		t.Fatal("MoveObject() = false")
	}
	obj, _ := s.Object(a)
	if obj.Transform.Position != (mgl32.Vec3{0, 2, 0}) || !obj.Dirty() {
		t.Error("MoveObject did not update and dirty the object")
	}

	if !s.RemoveObject(a) {
		t.Fatal("RemoveObject() = false")
	}
	if s.RemoveObject(a) {
		t.Error("second RemoveObject() = true")
	}
	if s.RemoveObject(9999999) {
		t.Error("RemoveObject(unknown) = true")
	}
	if len(s.RenderObjects()) != 1 || s.RenderObjects()[0].Id != b {
		t.Error("remaining objects are wrong")
	}
	if _, ok := f.rm.GetMesh(MeshId(resource.PrimitiveCube)); !ok {
		t.Error("shared mesh released while still in use")
	}

	c, err := s.AddObject(resource.PrimitiveCube, mgl32.Vec3{})
	if err != nil || c == a || c == b {
		t.Errorf("id after removal = %d (err %v), want a fresh id", c, err)
	}
}

func TestDemoScene_SetObjectVisible(t *testing.T) {
	f := newFixture()
	s := initializedScene(t, f)
	id := s.RenderObjects()[0].Id

	if !s.SetObjectVisible(id, false) {
		t.Fatal("SetObjectVisible() = false")
	}
	if s.RenderObjects()[0].Visible {
		t.Error("object still visible")
	}
	if s.SetObjectVisible(0, true) {
		t.Error("SetObjectVisible(unknown) = true")
	}
}

func TestDemoScene_WMovesCameraFiveUnits(t *testing.T) {
	f := newFixture()
	s := initializedScene(t, f, WithMoveSpeed(5))
	state := input.NewState()
	state.SetKey(common.KeyW, true)

	s.Update(1.0, state)
	if !vecNear(s.Camera().Eye(), mgl32.Vec3{0, 0, -2}, 1e-5) {
		t.Errorf("eye = %v, want (0, 0, -2)", s.Camera().Eye())
	}
}

func TestDemoScene_UpdateCameraUniform(t *testing.T) {
	f := newFixture()
	s := initializedScene(t, f)
	buffer, _ := f.rm.GetBuffer(CameraBufferId("demo"))
	before := len(f.queue.WritesTo(buffer))

	s.Camera().MoveForward(1)
	if err := s.UpdateCameraUniform(f.rm); err != nil {
		t.Fatal(err)
	}
	writes := f.queue.WritesTo(buffer)
	if len(writes) != before+1 {
		t.Fatalf("got %d camera writes, want %d", len(writes), before+1)
	}
	if len(writes[len(writes)-1].Data) != 64 {
		t.Errorf("camera write is %d bytes, want 64", len(writes[len(writes)-1].Data))
	}
}

func TestDemoScene_UpdateCameraUniformMissingBuffer(t *testing.T) {
	f := newFixture()
	s := NewDemoScene(1)
	if err := s.UpdateCameraUniform(f.rm); !common.IsKind(err, common.ErrResourceNotFound) {
		t.Errorf("error = %v, want ResourceNotFound", err)
	}
}

func TestDemoScene_SyncObjectUniforms(t *testing.T) {
	f := newFixture()
	s := initializedScene(t, f)

	if err := s.SyncObjectUniforms(f.rm); err != nil {
		t.Fatal(err)
	}
	for _, obj := range s.RenderObjects() {
		if obj.Dirty() {
			t.Errorf("object %d still dirty after sync", obj.Id)
		}
	}

	writes := len(f.queue.Writes)
	if err := s.SyncObjectUniforms(f.rm); err != nil {
		t.Fatal(err)
	}
	if len(f.queue.Writes) != writes {
		t.Error("clean objects were written again")
	}

	obj := s.RenderObjects()[1]
	s.MoveObject(obj.Id, mgl32.Vec3{0, 0, -1})
	if err := s.SyncObjectUniforms(f.rm); err != nil {
		t.Fatal(err)
	}
	last := f.queue.WritesTo(obj.ModelBuffer)
	if len(last) == 0 {
		t.Fatal("moved object was not written")
	}
	want := NewModelUniform(obj.ModelMatrix()).Marshal()
	if string(last[len(last)-1].Data) != string(want) {
		t.Error("model uniform bytes do not match the new matrix")
	}
}

func TestDemoScene_Resize(t *testing.T) {
	s := NewDemoScene(1)
	s.Resize(800, 600)
	if got := s.Camera().Aspect(); got < 1.333 || got > 1.334 {
		t.Errorf("Aspect() = %v, want 800/600", got)
	}
	s.Resize(0, 600)
	if got := s.Camera().Aspect(); got < 1.333 || got > 1.334 {
		t.Errorf("zero-size resize changed aspect to %v", got)
	}
}

func TestDemoScene_SurfaceFormatOption(t *testing.T) {
	f := newFixture()
	s := NewDemoScene(1)
	s.SetSurfaceFormat(wgpu.TextureFormatRGBA8UnormSrgb)
	if err := s.Initialize(f.rm); err != nil {
		t.Fatal(err)
	}
	if got := f.device.RenderPipelines[0].Fragment.Targets[0].Format; got != wgpu.TextureFormatRGBA8UnormSrgb {
		t.Errorf("pipeline format = %v, want RGBA8UnormSrgb", got)
	}
}

func TestRenderObject_IdsIncrease(t *testing.T) {
	a := NewRenderObject(0, 0, NewTransform())
	b := NewRenderObject(0, 0, NewTransform())
	if b.Id <= a.Id || a.Id == 0 {
		t.Errorf("ids %d then %d, want strictly increasing from 1", a.Id, b.Id)
	}
	if !a.Visible || !a.Dirty() {
		t.Error("new object should be visible and dirty")
	}
}

func TestGPUModelUniform(t *testing.T) {
	u := NewModelUniform(mgl32.Translate3D(1, 2, 3))
	if u.Size() != 64 || len(u.Marshal()) != 64 {
		t.Errorf("Size() = %d, len(Marshal()) = %d, want 64", u.Size(), len(u.Marshal()))
	}
}
