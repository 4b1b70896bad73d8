package scene

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-demo/engine/resource"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectId identifies a RenderObject for the lifetime of the process.
type ObjectId uint64

// objectCount hands out ObjectIds starting at 1. Ids are never reused.
var objectCount atomic.Uint64

func nextObjectId() ObjectId {
	return ObjectId(objectCount.Add(1))
}

// RenderObject is one drawable entry of a scene: which mesh to draw, with which pipeline, where.
// The mesh and pipeline are looked up in the ResourceManager by id at draw time.
type RenderObject struct {
	Id         ObjectId
	MeshId     resource.ResourceId
	PipelineId resource.ResourceId
	Transform  Transform
	Visible    bool

	// ModelBuffer and ModelBindGroup hold the per-object model matrix bound at group 1. Both may be nil.
	ModelBuffer    *wgpu.Buffer
	ModelBindGroup *wgpu.BindGroup

	dirty bool
}

// NewRenderObject creates a visible object with a fresh id.
// The object starts dirty so its model uniform is written on the next sync.
//
// Parameters:
//   - meshId: the mesh to draw
//   - pipelineId: the pipeline to draw it with
//   - transform: the initial world transform
//
// Returns:
//   - *RenderObject: the new object
func NewRenderObject(meshId, pipelineId resource.ResourceId, transform Transform) *RenderObject {
	return &RenderObject{
		Id:         nextObjectId(),
		MeshId:     meshId,
		PipelineId: pipelineId,
		Transform:  transform,
		Visible:    true,
		dirty:      true,
	}
}

// ModelMatrix returns the object's current model matrix.
func (o *RenderObject) ModelMatrix() mgl32.Mat4 {
	return o.Transform.Matrix()
}

// MarkDirty flags the model uniform for upload on the next sync.
func (o *RenderObject) MarkDirty() {
	o.dirty = true
}

// Dirty reports whether the model uniform is out of date.
func (o *RenderObject) Dirty() bool {
	return o.dirty
}
