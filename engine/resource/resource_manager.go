package resource

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-demo/common"
	"github.com/Carmen-Shannon/oxy-demo/engine/gpu"
	"github.com/Carmen-Shannon/oxy-demo/engine/logger"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

// Counts is a snapshot of how many resources of each kind are registered.
type Counts struct {
	Shaders          int
	Pipelines        int
	Buffers          int
	Meshes           int
	BindGroups       int
	BindGroupLayouts int
}

// Total returns the sum of every resource kind.
func (c Counts) Total() int {
	return c.Shaders + c.Pipelines + c.Buffers + c.Meshes + c.BindGroups + c.BindGroupLayouts
}

// resourceManager is the implementation of the ResourceManager interface.
type resourceManager struct {
	device gpu.Device
	queue  gpu.Queue

	validateShaders bool

	shaders          map[ResourceId]*wgpu.ShaderModule
	pipelines        map[ResourceId]*wgpu.RenderPipeline
	buffers          map[ResourceId]*wgpu.Buffer
	meshes           map[ResourceId]*Mesh
	bindGroups       map[ResourceId]*wgpu.BindGroup
	bindGroupLayouts map[ResourceId]*wgpu.BindGroupLayout
}

// ResourceManager owns every named GPU resource a scene creates.
// Each kind lives in its own table keyed by ResourceId; storing under an existing id replaces the
// previous handle and releases it.
type ResourceManager interface {
	// CreateShader validates WGSL source, compiles it into a shader module and stores it under id.
	//
	// Parameters:
	//   - id: the key to store the module under
	//   - source: WGSL source code
	//   - label: debug label for the module
	//
	// Returns:
	//   - *wgpu.ShaderModule: the created module
	//   - error: a ShaderCompilation error if the source is invalid or the device rejected it
	CreateShader(id ResourceId, source, label string) (*wgpu.ShaderModule, error)

	// CreatePipeline builds a render pipeline from a stored shader.
	// Defaults are vs_main/fs_main, alpha blending, back-face culling, CCW front faces, triangle lists,
	// one sample and no depth/stencil; opts override them.
	//
	// Parameters:
	//   - id: the key to store the pipeline under
	//   - shaderId: the id of a shader created with CreateShader
	//   - vertexLayout: the layout of vertex buffer slot 0
	//   - targetFormat: the color target format, normally the surface format
	//   - bindGroupLayouts: layouts for groups 0..n
	//   - opts: pipeline options
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created pipeline
	//   - error: ResourceNotFound if the shader is missing, PipelineCreation if the device failed
	CreatePipeline(id, shaderId ResourceId, vertexLayout wgpu.VertexBufferLayout, targetFormat wgpu.TextureFormat, bindGroupLayouts []*wgpu.BindGroupLayout, opts ...PipelineOption) (*wgpu.RenderPipeline, error)

	// CreateBindGroupLayout creates a bind group layout and stores it under id.
	//
	// Parameters:
	//   - id: the key to store the layout under
	//   - desc: the layout descriptor
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the created layout
	//   - error: a PipelineCreation error if the device failed
	CreateBindGroupLayout(id ResourceId, desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)

	// CreateBufferWithData allocates a buffer, uploads data into it and stores it under id.
	// CopyDst is always added to usage and the allocation is padded to a multiple of 4 bytes.
	//
	// Parameters:
	//   - id: the key to store the buffer under
	//   - data: initial contents
	//   - usage: buffer usage flags
	//   - label: debug label for the buffer
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: a BufferCreation error if allocation or upload failed
	CreateBufferWithData(id ResourceId, data []byte, usage wgpu.BufferUsage, label string) (*wgpu.Buffer, error)

	// CreateUniformBuffer creates a Uniform|CopyDst buffer initialized with value.
	//
	// Parameters:
	//   - id: the key to store the buffer under
	//   - value: the initial uniform contents
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: a BufferCreation error if allocation or upload failed
	CreateUniformBuffer(id ResourceId, value Uniform) (*wgpu.Buffer, error)

	// UpdateUniformBuffer overwrites buffer from offset 0 with value.
	//
	// Parameters:
	//   - buffer: a buffer with CopyDst usage
	//   - value: the new contents
	//
	// Returns:
	//   - error: a BufferCreation error if the write was rejected
	UpdateUniformBuffer(buffer *wgpu.Buffer, value Uniform) error

	// CreateBindGroup binds entries to layout and stores the group under id.
	//
	// Parameters:
	//   - id: the key to store the bind group under
	//   - layout: the layout the entries conform to
	//   - entries: the resources to bind
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: a PipelineCreation error if the device failed
	CreateBindGroup(id ResourceId, layout *wgpu.BindGroupLayout, entries []wgpu.BindGroupEntry) (*wgpu.BindGroup, error)

	// RegisterMesh stores mesh under id, and its buffers under MeshVertexId(id) and MeshIndexId(id).
	//
	// Parameters:
	//   - id: the mesh id
	//   - mesh: the mesh to store
	RegisterMesh(id ResourceId, mesh *Mesh)

	// CreateMesh uploads vertices and optional indices and registers the resulting mesh under id.
	//
	// Parameters:
	//   - id: the mesh id
	//   - vertices: vertex data
	//   - indices: uint16 indices, or nil for non-indexed drawing
	//
	// Returns:
	//   - *Mesh: the registered mesh
	//   - error: a BufferCreation error if either upload failed
	CreateMesh(id ResourceId, vertices []ColorVertex, indices []uint16) (*Mesh, error)

	// CreatePrimitiveMesh creates and registers one of the built-in primitives under id.
	//
	// Parameters:
	//   - id: the mesh id
	//   - kind: the primitive to build
	//
	// Returns:
	//   - *Mesh: the registered mesh
	//   - error: a BufferCreation error if the upload failed
	CreatePrimitiveMesh(id ResourceId, kind PrimitiveKind) (*Mesh, error)

	GetShader(id ResourceId) (*wgpu.ShaderModule, bool)
	GetPipeline(id ResourceId) (*wgpu.RenderPipeline, bool)
	GetBuffer(id ResourceId) (*wgpu.Buffer, bool)
	GetMesh(id ResourceId) (*Mesh, bool)
	GetBindGroup(id ResourceId) (*wgpu.BindGroup, bool)
	GetBindGroupLayout(id ResourceId) (*wgpu.BindGroupLayout, bool)

	// RemoveMesh drops the mesh and its buffers from the tables and releases the buffers.
	//
	// Parameters:
	//   - id: the mesh id
	//
	// Returns:
	//   - bool: true if a mesh was registered under id
	RemoveMesh(id ResourceId) bool

	// RemoveBindGroup drops a bind group from the table and releases it.
	//
	// Parameters:
	//   - id: the bind group id
	//
	// Returns:
	//   - bool: true if a bind group was registered under id
	RemoveBindGroup(id ResourceId) bool

	// RemoveBuffer drops a buffer from the table and releases it.
	//
	// Parameters:
	//   - id: the buffer id
	//
	// Returns:
	//   - bool: true if a buffer was registered under id
	RemoveBuffer(id ResourceId) bool

	// Len returns the number of registered resources per kind.
	Len() Counts

	// Names returns the display name of every registered id, across all tables.
	Names() map[ResourceId]string

	// Release frees every stored handle and empties the tables.
	Release()
}

var _ ResourceManager = &resourceManager{}

// NewResourceManager creates an empty ResourceManager bound to device and queue.
//
// Parameters:
//   - device: the device resources are created on
//   - queue: the queue used for buffer uploads
//   - opts: resource manager options
//
// Returns:
//   - ResourceManager: the new manager
func NewResourceManager(device gpu.Device, queue gpu.Queue, opts ...ResourceManagerBuilderOption) ResourceManager {
	rm := &resourceManager{
		device:           device,
		queue:            queue,
		validateShaders:  true,
		shaders:          make(map[ResourceId]*wgpu.ShaderModule),
		pipelines:        make(map[ResourceId]*wgpu.RenderPipeline),
		buffers:          make(map[ResourceId]*wgpu.Buffer),
		meshes:           make(map[ResourceId]*Mesh),
		bindGroups:       make(map[ResourceId]*wgpu.BindGroup),
		bindGroupLayouts: make(map[ResourceId]*wgpu.BindGroupLayout),
	}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

// store puts v into table under id, releasing any different handle it replaces.
func store[T comparable](rm *resourceManager, table map[ResourceId]T, id ResourceId, v T) {
	if prev, ok := table[id]; ok && prev != v {
		logger.Debug("replacing resource %s", id)
		rm.device.Release(prev)
	}
	table[id] = v
}

func (rm *resourceManager) CreateShader(id ResourceId, source, label string) (*wgpu.ShaderModule, error) {
	if rm.validateShaders {
		if _, err := naga.Compile(source); err != nil {
			return nil, common.WrapError(common.ErrShaderCompilation, err, "%s", label)
		}
	}

	module, err := rm.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, common.WrapError(common.ErrShaderCompilation, err, "%s", label)
	}

	store(rm, rm.shaders, id, module)
	return module, nil
}

func (rm *resourceManager) CreatePipeline(id, shaderId ResourceId, vertexLayout wgpu.VertexBufferLayout, targetFormat wgpu.TextureFormat, bindGroupLayouts []*wgpu.BindGroupLayout, opts ...PipelineOption) (*wgpu.RenderPipeline, error) {
	module, ok := rm.shaders[shaderId]
	if !ok {
		return nil, common.NewError(common.ErrResourceNotFound, "Shader not found: %s", shaderId)
	}

	settings := defaultPipelineSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	layout, err := rm.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            id.String() + " Layout",
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return nil, common.WrapError(common.ErrPipelineCreation, err, "layout for %s", id)
	}
	// The pipeline keeps its own reference to the layout.
	defer rm.device.Release(layout)

	target := wgpu.ColorTargetState{
		Format:    targetFormat,
		WriteMask: settings.writeMask,
	}
	if settings.blendEnabled {
		target.Blend = settings.blendState
	}

	pipeline, err := rm.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  id.String(),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: settings.vertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: settings.fragmentEntryPoint,
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  settings.topology,
			FrontFace: settings.frontFace,
			CullMode:  settings.cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: settings.sampleCount,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: nil,
	})
	if err != nil {
		return nil, common.WrapError(common.ErrPipelineCreation, err, "%s", id)
	}

	store(rm, rm.pipelines, id, pipeline)
	return pipeline, nil
}

func (rm *resourceManager) CreateBindGroupLayout(id ResourceId, desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	layout, err := rm.device.CreateBindGroupLayout(desc)
	if err != nil {
		return nil, common.WrapError(common.ErrPipelineCreation, err, "bind group layout %s", id)
	}
	store(rm, rm.bindGroupLayouts, id, layout)
	return layout, nil
}

// paddedSize rounds n up to the 4-byte granularity WriteBuffer requires.
func paddedSize(n int) int {
	return (n + 3) &^ 3
}

func (rm *resourceManager) CreateBufferWithData(id ResourceId, data []byte, usage wgpu.BufferUsage, label string) (*wgpu.Buffer, error) {
	buffer, err := rm.newBufferWithData(data, usage, label)
	if err != nil {
		return nil, err
	}
	store(rm, rm.buffers, id, buffer)
	return buffer, nil
}

// newBufferWithData allocates and uploads a buffer without storing it in any table.
func (rm *resourceManager) newBufferWithData(data []byte, usage wgpu.BufferUsage, label string) (*wgpu.Buffer, error) {
	if len(data) == 0 {
		return nil, common.NewError(common.ErrBufferCreation, "%s: no data", label)
	}

	size := paddedSize(len(data))
	if size != len(data) {
		padded := make([]byte, size)
		copy(padded, data)
		data = padded
	}

	buffer, err := rm.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(size),
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, common.WrapError(common.ErrBufferCreation, err, "%s", label)
	}

	if err := rm.queue.WriteBuffer(buffer, 0, data); err != nil {
		rm.device.Release(buffer)
		return nil, common.WrapError(common.ErrBufferCreation, err, "upload %s", label)
	}
	return buffer, nil
}

func (rm *resourceManager) CreateUniformBuffer(id ResourceId, value Uniform) (*wgpu.Buffer, error) {
	return rm.CreateBufferWithData(id, value.Marshal(), wgpu.BufferUsageUniform, id.String())
}

func (rm *resourceManager) UpdateUniformBuffer(buffer *wgpu.Buffer, value Uniform) error {
	if buffer == nil {
		return common.NewError(common.ErrBufferCreation, "update of nil uniform buffer")
	}
	if err := rm.queue.WriteBuffer(buffer, 0, value.Marshal()); err != nil {
		return common.WrapError(common.ErrBufferCreation, err, "uniform update")
	}
	return nil
}

func (rm *resourceManager) CreateBindGroup(id ResourceId, layout *wgpu.BindGroupLayout, entries []wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
	group, err := rm.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   id.String(),
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return nil, common.WrapError(common.ErrPipelineCreation, err, "bind group %s", id)
	}
	store(rm, rm.bindGroups, id, group)
	return group, nil
}

func (rm *resourceManager) RegisterMesh(id ResourceId, mesh *Mesh) {
	if mesh == nil {
		return
	}
	store(rm, rm.buffers, MeshVertexId(id), mesh.VertexBuffer())
	if mesh.IndexBuffer() != nil {
		store(rm, rm.buffers, MeshIndexId(id), mesh.IndexBuffer())
	} else if prev, ok := rm.buffers[MeshIndexId(id)]; ok {
		rm.device.Release(prev)
		delete(rm.buffers, MeshIndexId(id))
	}
	rm.meshes[id] = mesh
}

func (rm *resourceManager) CreateMesh(id ResourceId, vertices []ColorVertex, indices []uint16) (*Mesh, error) {
	// Both buffers are built before either is stored, so a failure leaves any existing mesh under id intact.
	vertexBuffer, err := rm.newBufferWithData(VertexBytes(vertices), wgpu.BufferUsageVertex, fmt.Sprintf("%s Vertex Buffer", id))
	if err != nil {
		return nil, err
	}

	var indexBuffer *wgpu.Buffer
	if len(indices) > 0 {
		indexBuffer, err = rm.newBufferWithData(IndexBytes(indices), wgpu.BufferUsageIndex, fmt.Sprintf("%s Index Buffer", id))
		if err != nil {
			rm.device.Release(vertexBuffer)
			return nil, err
		}
	}

	mesh := NewMesh(id.String(), vertexBuffer, uint32(len(vertices)), indexBuffer, uint32(len(indices)))
	rm.RegisterMesh(id, mesh)
	return mesh, nil
}

func (rm *resourceManager) CreatePrimitiveMesh(id ResourceId, kind PrimitiveKind) (*Mesh, error) {
	vertices, indices := kind.Geometry()
	if len(vertices) == 0 {
		return nil, common.NewError(common.ErrBufferCreation, "unknown primitive %s", kind)
	}
	return rm.CreateMesh(id, vertices, indices)
}

func (rm *resourceManager) GetShader(id ResourceId) (*wgpu.ShaderModule, bool) {
	v, ok := rm.shaders[id]
	return v, ok
}

func (rm *resourceManager) GetPipeline(id ResourceId) (*wgpu.RenderPipeline, bool) {
	v, ok := rm.pipelines[id]
	return v, ok
}

func (rm *resourceManager) GetBuffer(id ResourceId) (*wgpu.Buffer, bool) {
	v, ok := rm.buffers[id]
	return v, ok
}

func (rm *resourceManager) GetMesh(id ResourceId) (*Mesh, bool) {
	v, ok := rm.meshes[id]
	return v, ok
}

func (rm *resourceManager) GetBindGroup(id ResourceId) (*wgpu.BindGroup, bool) {
	v, ok := rm.bindGroups[id]
	return v, ok
}

func (rm *resourceManager) GetBindGroupLayout(id ResourceId) (*wgpu.BindGroupLayout, bool) {
	v, ok := rm.bindGroupLayouts[id]
	return v, ok
}

func (rm *resourceManager) RemoveMesh(id ResourceId) bool {
	if _, ok := rm.meshes[id]; !ok {
		return false
	}
	delete(rm.meshes, id)
	rm.RemoveBuffer(MeshVertexId(id))
	rm.RemoveBuffer(MeshIndexId(id))
	return true
}

func (rm *resourceManager) RemoveBindGroup(id ResourceId) bool {
	group, ok := rm.bindGroups[id]
	if !ok {
		return false
	}
	delete(rm.bindGroups, id)
	rm.device.Release(group)
	return true
}

func (rm *resourceManager) RemoveBuffer(id ResourceId) bool {
	buffer, ok := rm.buffers[id]
	if !ok {
		return false
	}
	delete(rm.buffers, id)
	rm.device.Release(buffer)
	return true
}

func (rm *resourceManager) Len() Counts {
	return Counts{
		Shaders:          len(rm.shaders),
		Pipelines:        len(rm.pipelines),
		Buffers:          len(rm.buffers),
		Meshes:           len(rm.meshes),
		BindGroups:       len(rm.bindGroups),
		BindGroupLayouts: len(rm.bindGroupLayouts),
	}
}

func (rm *resourceManager) Names() map[ResourceId]string {
	out := make(map[ResourceId]string, rm.Len().Total())
	add := func(id ResourceId) { out[id] = id.String() }
	for id := range rm.shaders {
		add(id)
	}
	for id := range rm.pipelines {
		add(id)
	}
	for id := range rm.buffers {
		add(id)
	}
	for id := range rm.meshes {
		add(id)
	}
	for id := range rm.bindGroups {
		add(id)
	}
	for id := range rm.bindGroupLayouts {
		add(id)
	}
	return out
}

func (rm *resourceManager) Release() {
	// Dependents first: bind groups and pipelines hold references to layouts, buffers and modules.
	for id, v := range rm.bindGroups {
		rm.device.Release(v)
		delete(rm.bindGroups, id)
	}
	for id, v := range rm.pipelines {
		rm.device.Release(v)
		delete(rm.pipelines, id)
	}
	for id, v := range rm.bindGroupLayouts {
		rm.device.Release(v)
		delete(rm.bindGroupLayouts, id)
	}
	for id, v := range rm.shaders {
		rm.device.Release(v)
		delete(rm.shaders, id)
	}
	for id, v := range rm.buffers {
		rm.device.Release(v)
		delete(rm.buffers, id)
	}
	clear(rm.meshes)
	logger.Debug("resource manager released")
}
