package scene

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/camera"
	"github.com/Carmen-Shannon/oxy-demo/engine/input"
	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/Carmen-Shannon/oxy-demo/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/basic.wgsl
var basicShaderSource string

// Resource names shared by every DemoScene. The first scene to initialize creates them.
var (
	BasicShaderId           = resource.NewResourceId("basic_shader")
	BasicPipelineId         = resource.NewResourceId("basic_pipeline")
	CameraBindGroupLayoutId = resource.NewResourceId("camera_bind_group_layout")
	ModelBindGroupLayoutId  = resource.NewResourceId("model_bind_group_layout")
)

// CameraBufferId returns the id of a scene's camera uniform buffer, e.g. "demo_camera_buffer".
func CameraBufferId(sceneName string) resource.ResourceId {
	return resource.NewResourceId(sceneName + "_camera_buffer")
}

// CameraBindGroupId returns the id of a scene's camera bind group, e.g. "demo_camera_bind_group".
func CameraBindGroupId(sceneName string) resource.ResourceId {
	return resource.NewResourceId(sceneName + "_camera_bind_group")
}

func basicShaderPreProcessor() shader.PreProcessor {
	return shader.NewPreProcessor(
		shader.WithStruct(shader.AnnotationArgCamera, camera.GPUCameraUniformSource, "CameraUniform"),
		shader.WithStruct(shader.AnnotationArgModel, GPUModelUniformSource, "ModelUniform"),
	)
}

// BasicShaderSource returns the complete WGSL of the demo pipeline with its annotations expanded.
//
// Returns:
//   - string: the processed WGSL
//   - error: a ShaderCompilation error if the embedded annotations are invalid
func BasicShaderSource() (string, error) {
	return basicShaderPreProcessor().Process(basicShaderSource)
}

// MeshId returns the shared mesh id of a primitive kind, e.g. "quad_mesh".
func MeshId(kind resource.PrimitiveKind) resource.ResourceId {
	return resource.NewResourceId(kind.String() + "_mesh")
}

func modelBufferId(id ObjectId) resource.ResourceId {
	return resource.NewResourceId(fmt.Sprintf("model_buffer_%d", id))
}

func modelBindGroupId(id ObjectId) resource.ResourceId {
	return resource.NewResourceId(fmt.Sprintf("model_bind_group_%d", id))
}

type demoScene struct {
	name string

	camera            camera.Camera
	controller        camera.CameraController
	controllerOptions []camera.CameraControllerOption

	surfaceFormat  wgpu.TextureFormat
	initialObjects []InitialObject

	rm              resource.ResourceManager
	cameraUniform   *camera.GPUCameraUniform
	cameraBindGroup *wgpu.BindGroup
	modelLayout     *wgpu.BindGroupLayout

	objects     []*RenderObject
	initialized bool
}

var _ Scene = &demoScene{}

// NewDemoScene creates the demo scene: a first-person camera over a few colored primitives.
// By default it adds a quad at the origin and a triangle at (1.5, 0, 0) when initialized.
//
// Parameters:
//   - aspect: the initial camera aspect ratio
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new, uninitialized scene
func NewDemoScene(aspect float32, options ...DemoSceneBuilderOption) Scene {
	s := &demoScene{
		name:          "demo",
		surfaceFormat: wgpu.TextureFormatBGRA8UnormSrgb,
		initialObjects: []InitialObject{
			{Kind: resource.PrimitiveQuad, Position: mgl32.Vec3{0, 0, 0}},
			{Kind: resource.PrimitiveTriangle, Position: mgl32.Vec3{1.5, 0, 0}},
		},
		cameraUniform: camera.NewCameraUniform(),
	}
	for _, option := range options {
		option(s)
	}
	if s.camera == nil {
		s.camera = camera.NewCamera(aspect)
	}
	if s.controller == nil {
		s.controller = camera.NewCameraController(s.controllerOptions...)
	}
	return s
}

func (s *demoScene) Name() string {
	return s.name
}

func (s *demoScene) Initialized() bool {
	return s.initialized
}

func (s *demoScene) SetSurfaceFormat(format wgpu.TextureFormat) {
	if s.initialized {
		logger.Warn("scene %s: surface format change to %v ignored after initialization", s.name, format)
		return
	}
	s.surfaceFormat = format
}

func (s *demoScene) Initialize(rm resource.ResourceManager) error {
	if s.initialized {
		return nil
	}
	log := logger.With("scene", s.name)

	cameraLayout, modelLayout, err := s.ensureSharedResources(rm)
	if err != nil {
		log.Error("failed to create shared resources", "err", err)
		return err
	}

	s.cameraUniform.Update(s.camera)
	cameraBuffer, err := rm.CreateUniformBuffer(CameraBufferId(s.name), s.cameraUniform)
	if err != nil {
		log.Error("failed to create camera buffer", "err", err)
		return err
	}
	cameraBindGroup, err := rm.CreateBindGroup(CameraBindGroupId(s.name), cameraLayout, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
	})
	if err != nil {
		rm.RemoveBuffer(CameraBufferId(s.name))
		log.Error("failed to create camera bind group", "err", err)
		return err
	}

	s.rm = rm
	s.modelLayout = modelLayout
	s.cameraBindGroup = cameraBindGroup
	s.initialized = true

	for _, obj := range s.initialObjects {
		if _, err := s.AddObject(obj.Kind, obj.Position); err != nil {
			log.Error("failed to add initial object", "kind", obj.Kind, "err", err)
			s.clearObjects()
			s.initialized = false
			return err
		}
	}

	log.Info("scene initialized", "objects", len(s.objects), "format", s.surfaceFormat)
	return nil
}

// ensureSharedResources creates the shader, bind group layouts and pipeline on first use.
// Handles already registered by another scene are reused, never replaced.
//
// Parameters:
//   - rm: the resource manager owning the shared handles
//
// Returns:
//   - *wgpu.BindGroupLayout: the camera bind group layout (group 0)
//   - *wgpu.BindGroupLayout: the model bind group layout (group 1)
//   - error: a ShaderCompilation or PipelineCreation error on failure
func (s *demoScene) ensureSharedResources(rm resource.ResourceManager) (*wgpu.BindGroupLayout, *wgpu.BindGroupLayout, error) {
	if _, ok := rm.GetShader(BasicShaderId); !ok {
		source, err := BasicShaderSource()
		if err != nil {
			return nil, nil, err
		}
		if _, err := rm.CreateShader(BasicShaderId, source, "Basic Shader"); err != nil {
			return nil, nil, err
		}
	}

	cameraLayout, ok := rm.GetBindGroupLayout(CameraBindGroupLayoutId)
	if !ok {
		var err error
		if cameraLayout, err = rm.CreateBindGroupLayout(CameraBindGroupLayoutId, uniformLayout("Camera Uniform Bind Group Layout")); err != nil {
			return nil, nil, err
		}
	}
	modelLayout, ok := rm.GetBindGroupLayout(ModelBindGroupLayoutId)
	if !ok {
		var err error
		if modelLayout, err = rm.CreateBindGroupLayout(ModelBindGroupLayoutId, uniformLayout("Model Uniform Bind Group Layout")); err != nil {
			return nil, nil, err
		}
	}

	// the pipeline is built for the first scene's surface format; every scene of an engine shares it
	if _, ok := rm.GetPipeline(BasicPipelineId); !ok {
		if _, err := rm.CreatePipeline(BasicPipelineId, BasicShaderId, resource.ColorVertexLayout(), s.surfaceFormat,
			[]*wgpu.BindGroupLayout{cameraLayout, modelLayout}); err != nil {
			return nil, nil, err
		}
	}
	return cameraLayout, modelLayout, nil
}

// uniformLayout describes a single vertex-stage uniform buffer at binding 0.
func uniformLayout(label string) *wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	return &wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}

func (s *demoScene) Update(dt float32, state *input.State) {
	s.controller.Update(s.camera, dt, state)
}

func (s *demoScene) UpdateCameraUniform(rm resource.ResourceManager) error {
	id := CameraBufferId(s.name)
	buffer, ok := rm.GetBuffer(id)
	if !ok {
		return common.NewError(common.ErrResourceNotFound, "Buffer not found: %s", id)
	}
	s.cameraUniform.Update(s.camera)
	return rm.UpdateUniformBuffer(buffer, s.cameraUniform)
}

func (s *demoScene) SyncObjectUniforms(rm resource.ResourceManager) error {
	for _, obj := range s.objects {
		if !obj.dirty || obj.ModelBuffer == nil {
			continue
		}
		if err := rm.UpdateUniformBuffer(obj.ModelBuffer, NewModelUniform(obj.ModelMatrix())); err != nil {
			return fmt.Errorf("sync object %d: %w", obj.Id, err)
		}
		obj.dirty = false
	}
	return nil
}

func (s *demoScene) RenderObjects() []*RenderObject {
	return s.objects
}

func (s *demoScene) CameraBindGroup() (*wgpu.BindGroup, bool) {
	return s.cameraBindGroup, s.cameraBindGroup != nil
}

func (s *demoScene) Camera() camera.Camera {
	return s.camera
}

func (s *demoScene) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	s.camera.SetAspect(float32(width) / float32(height))
}

func (s *demoScene) AddObject(kind resource.PrimitiveKind, position mgl32.Vec3) (ObjectId, error) {
	if !s.initialized {
		return 0, common.NewError(common.ErrResourceNotFound, "scene %s is not initialized", s.name)
	}

	meshId := MeshId(kind)
	if _, ok := s.rm.GetMesh(meshId); !ok {
		if _, err := s.rm.CreatePrimitiveMesh(meshId, kind); err != nil {
			return 0, err
		}
	}

	obj := NewRenderObject(meshId, BasicPipelineId, NewTransform().WithPosition(position))
	buffer, err := s.rm.CreateUniformBuffer(modelBufferId(obj.Id), NewModelUniform(obj.ModelMatrix()))
	if err != nil {
		return 0, err
	}
	group, err := s.rm.CreateBindGroup(modelBindGroupId(obj.Id), s.modelLayout, []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: buffer, Offset: 0, Size: wgpu.WholeSize},
	})
	if err != nil {
		s.rm.RemoveBuffer(modelBufferId(obj.Id))
		return 0, err
	}
	obj.ModelBuffer = buffer
	obj.ModelBindGroup = group

	s.objects = append(s.objects, obj)
	logger.Debug("scene %s: added %s %d at %v", s.name, kind, obj.Id, position)
	return obj.Id, nil
}

func (s *demoScene) indexOf(id ObjectId) int {
	for i, obj := range s.objects {
		if obj.Id == id {
			return i
		}
	}
	return -1
}

func (s *demoScene) Object(id ObjectId) (*RenderObject, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.objects[i], true
	}
	return nil, false
}

func (s *demoScene) MoveObject(id ObjectId, position mgl32.Vec3) bool {
	obj, ok := s.Object(id)
	if !ok {
		return false
	}
	obj.Transform.SetPosition(position)
	obj.MarkDirty()
	return true
}

func (s *demoScene) RemoveObject(id ObjectId) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.releaseObject(s.objects[i])
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	return true
}

func (s *demoScene) SetObjectVisible(id ObjectId, visible bool) bool {
	obj, ok := s.Object(id)
	if !ok {
		return false
	}
	obj.Visible = visible
	return true
}

// releaseObject drops the per-object uniform resources. Shared meshes stay registered.
func (s *demoScene) releaseObject(obj *RenderObject) {
	if s.rm == nil {
		return
	}
	s.rm.RemoveBindGroup(modelBindGroupId(obj.Id))
	s.rm.RemoveBuffer(modelBufferId(obj.Id))
}

func (s *demoScene) clearObjects() {
	for _, obj := range s.objects {
		s.releaseObject(obj)
	}
	s.objects = nil
}
